package repo_test

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"team-attendance/backend/app/models"
	"team-attendance/backend/app/repo"
	"team-attendance/backend/app/testutil"
)

func setup(t *testing.T, name string) (*repo.UserRepository, *repo.EventRepository) {
	t.Helper()
	gdb := testutil.OpenInMemoryDB(t, name)
	if err := gdb.AutoMigrate(&models.User{}, &models.Event{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo.NewUserRepository(gdb), repo.NewEventRepository(gdb)
}

func mustCreateUser(t *testing.T, users *repo.UserRepository, idNumber, name string) *models.User {
	t.Helper()
	u := &models.User{IDNumber: idNumber, FullName: name, Role: models.RoleDeveloper, Color: models.DefaultColor}
	if err := users.Create(u); err != nil {
		t.Fatalf("create user %s: %v", idNumber, err)
	}
	return u
}

func TestDeleteCascadeRemovesOnlyOwnEvents(t *testing.T) {
	users, events := setup(t, "repo-cascade")
	dana := mustCreateUser(t, users, "111", "Dana")
	omer := mustCreateUser(t, users, "222", "Omer")

	for _, e := range []*models.Event{
		{UserID: dana.ID, EventDate: "2026-01-01", Type: "vacation"},
		{UserID: dana.ID, EventDate: "2026-01-02", Type: "sick"},
		{UserID: omer.ID, EventDate: "2026-01-03", Type: "vacation"},
	} {
		if err := events.Create(e); err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	if err := users.DeleteCascade(dana.ID); err != nil {
		t.Fatalf("cascade: %v", err)
	}

	if n, _ := events.CountByUser(dana.ID); n != 0 {
		t.Errorf("deleted user still owns %d events", n)
	}
	if n, _ := events.CountByUser(omer.ID); n != 1 {
		t.Errorf("other user's events = %d, want 1", n)
	}
	if _, err := users.FindByID(dana.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("deleted user lookup err = %v, want record not found", err)
	}
}

func TestDeleteCascadeMissingUser(t *testing.T) {
	users, _ := setup(t, "repo-cascade-missing")
	if err := users.DeleteCascade(42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want record not found", err)
	}
}

func TestUpdateRoleMissingUser(t *testing.T) {
	users, _ := setup(t, "repo-role-missing")
	if err := users.UpdateRole(42, models.RoleStaff); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want record not found", err)
	}
}

func TestOwnerIDNumber(t *testing.T) {
	users, events := setup(t, "repo-owner")
	dana := mustCreateUser(t, users, "111", "Dana")
	e := &models.Event{UserID: dana.ID, EventDate: "2026-01-01", Type: "vacation"}
	if err := events.Create(e); err != nil {
		t.Fatalf("create event: %v", err)
	}

	owner, err := events.OwnerIDNumber(e.ID)
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if owner != "111" {
		t.Errorf("owner = %q, want 111", owner)
	}

	if _, err := events.OwnerIDNumber(999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing event err = %v, want record not found", err)
	}
}
