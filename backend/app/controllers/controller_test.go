package controllers_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jwtutil "team-attendance/backend/app/jwt"
	"team-attendance/backend/app/models"
	"team-attendance/backend/app/testutil"
	"team-attendance/backend/initialize"
)

func newTestApp(t *testing.T, name string) *initialize.App {
	t.Helper()
	gdb := testutil.OpenInMemoryDB(t, name)
	app, err := initialize.BuildWithDB(testutil.TestConfig(), gdb)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *initialize.App, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

type authResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func signup(t *testing.T, app *initialize.App, idNumber, fullName string) authResult {
	t.Helper()
	w := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"id_number": idNumber, "full_name": fullName,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signup %s: status %d body %s", idNumber, w.Code, w.Body.String())
	}
	var res authResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	return res
}

// staffLogin signs in as the seeded staff account.
func staffLogin(t *testing.T, app *initialize.App) authResult {
	t.Helper()
	w := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"id_number": "000000000"})
	if w.Code != http.StatusOK {
		t.Fatalf("staff login: status %d body %s", w.Code, w.Body.String())
	}
	var res authResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return res
}

func createEvent(t *testing.T, app *initialize.App, token string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := doJSON(t, app, http.MethodPost, "/api/events", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("create event: status %d body %s", w.Code, w.Body.String())
	}
	var res map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode event response: %v", err)
	}
	return res
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body.Message
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, "health")
	w := doJSON(t, app, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestSignupDefaultsAndConflict(t *testing.T) {
	app := newTestApp(t, "signup")

	res := signup(t, app, "123", "Dana")
	if res.User.Role != models.RoleDeveloper {
		t.Errorf("role = %q, want developer", res.User.Role)
	}
	if res.User.Color != "#2563eb" {
		t.Errorf("color = %q, want #2563eb", res.User.Color)
	}
	if res.Token == "" {
		t.Error("signup returned no token")
	}

	// the same identification number never yields a duplicate row
	w := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{"id_number": "123", "full_name": "Dana"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("repeat signup status %d, want 400", w.Code)
	}
	if msg := message(t, w); msg != "User already exists" {
		t.Errorf("message = %q", msg)
	}

	staff := staffLogin(t, app)
	w = doJSON(t, app, http.MethodGet, "/api/users", staff.Token, nil)
	var users []models.User
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users) != 2 { // seed staff + Dana
		t.Errorf("user count = %d, want 2", len(users))
	}
}

func TestSignupMissingFields(t *testing.T) {
	app := newTestApp(t, "signup-missing")
	w := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{"id_number": "55"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestLogin(t *testing.T) {
	app := newTestApp(t, "login")

	w := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"id_number": "nope"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown user status %d, want 404", w.Code)
	}

	signup(t, app, "321", "Omer")
	w = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"id_number": "321"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d", w.Code)
	}
}

func TestAuthGate(t *testing.T) {
	app := newTestApp(t, "authgate")

	w := doJSON(t, app, http.MethodGet, "/api/events", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status %d, want 401", w.Code)
	}

	w = doJSON(t, app, http.MethodGet, "/api/events", "not-a-token", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("bad token status %d, want 403", w.Code)
	}

	// an expired token is rejected on every protected route
	expired := &jwtutil.Signer{Secret: []byte(app.Cfg.JWT.Secret), Issuer: app.Cfg.JWT.Issuer, ExpMin: -1}
	u := &models.User{ID: 1, IDNumber: "000000000", FullName: "Admin User", Role: models.RoleStaff, Color: "#2563eb"}
	tok, err := expired.Sign(u)
	if err != nil {
		t.Fatalf("sign expired: %v", err)
	}
	for _, route := range []string{"/api/events", "/api/events/mine", "/api/users"} {
		w = doJSON(t, app, http.MethodGet, route, tok, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("%s with expired token: status %d, want 403", route, w.Code)
		}
	}
}

func TestTeamAndOwnEvents(t *testing.T) {
	app := newTestApp(t, "events-list")
	dana := signup(t, app, "111", "Dana")
	omer := signup(t, app, "222", "Omer")

	createEvent(t, app, dana.Token, map[string]interface{}{"event_date": "2026-08-10", "type": "vacation"})
	createEvent(t, app, omer.Token, map[string]interface{}{"event_date": "2026-08-11", "type": "sick"})
	createEvent(t, app, omer.Token, map[string]interface{}{"event_date": "2026-08-20", "type": "vacation"})

	w := doJSON(t, app, http.MethodGet, "/api/events", dana.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("team list status %d", w.Code)
	}
	var team []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &team); err != nil {
		t.Fatalf("decode team: %v", err)
	}
	if len(team) != 3 {
		t.Fatalf("team events = %d, want 3", len(team))
	}
	if team[0]["full_name"] == "" || team[0]["color"] == "" {
		t.Errorf("team rows missing owner join: %+v", team[0])
	}

	w = doJSON(t, app, http.MethodGet, "/api/events/mine", omer.Token, nil)
	var mine []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &mine); err != nil {
		t.Fatalf("decode mine: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("own events = %d, want 2", len(mine))
	}
	if mine[0]["event_date"] != "2026-08-20" || mine[1]["event_date"] != "2026-08-11" {
		t.Errorf("own events not newest-first: %v, %v", mine[0]["event_date"], mine[1]["event_date"])
	}
}

func TestCreateEventOnBehalf(t *testing.T) {
	app := newTestApp(t, "events-behalf")
	signup(t, app, "111", "Dana")
	omer := signup(t, app, "222", "Omer")
	staff := staffLogin(t, app)

	// only staff may record for someone else
	w := doJSON(t, app, http.MethodPost, "/api/events", omer.Token, map[string]interface{}{
		"event_date": "2026-09-01", "type": "vacation", "id_number_target": "111",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-staff on-behalf status %d, want 403", w.Code)
	}

	created := createEvent(t, app, staff.Token, map[string]interface{}{
		"event_date": "2026-09-01", "type": "vacation", "id_number_target": "111",
	})
	if created["id_number"] != "111" || created["full_name"] != "Dana" {
		t.Errorf("created event owner = %v/%v, want Dana", created["id_number"], created["full_name"])
	}

	w = doJSON(t, app, http.MethodPost, "/api/events", staff.Token, map[string]interface{}{
		"event_date": "2026-09-01", "type": "vacation", "id_number_target": "does-not-exist",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown target status %d, want 404", w.Code)
	}
}

func TestUpdateDeleteOwnership(t *testing.T) {
	app := newTestApp(t, "events-owner")
	dana := signup(t, app, "111", "Dana")
	omer := signup(t, app, "222", "Omer")
	staff := staffLogin(t, app)

	created := createEvent(t, app, dana.Token, map[string]interface{}{"event_date": "2026-09-02", "type": "sick"})
	id := int(created["id"].(float64))
	update := map[string]interface{}{"event_date": "2026-09-03", "type": "vacation", "notes": "changed"}

	w := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/events/%d", id), omer.Token, update)
	if w.Code != http.StatusForbidden {
		t.Fatalf("other user update status %d, want 403", w.Code)
	}

	w = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/events/%d", id), dana.Token, update)
	if w.Code != http.StatusOK {
		t.Fatalf("owner update status %d body %s", w.Code, w.Body.String())
	}
	var updated map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated["event_date"] != "2026-09-03" || updated["type"] != "vacation" {
		t.Errorf("update not applied: %+v", updated)
	}

	w = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/events/%d", id), omer.Token, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("other user delete status %d, want 403", w.Code)
	}

	// staff may delete anyone's event
	w = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/events/%d", id), staff.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("staff delete status %d", w.Code)
	}

	w = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/events/%d", id), staff.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete absent event status %d, want 404", w.Code)
	}
}

func TestOwnColorReissuesToken(t *testing.T) {
	app := newTestApp(t, "own-color")
	dana := signup(t, app, "111", "Dana")

	w := doJSON(t, app, http.MethodPut, "/api/users/me/color", dana.Token, map[string]string{"color": "#ff0000"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var res authResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.User.Color != "#ff0000" {
		t.Errorf("user color = %q", res.User.Color)
	}
	claims, err := app.Signer.Parse(res.Token)
	if err != nil {
		t.Fatalf("parse reissued token: %v", err)
	}
	if claims.Color != "#ff0000" {
		t.Errorf("reissued token color = %q, want #ff0000", claims.Color)
	}

	w = doJSON(t, app, http.MethodPut, "/api/users/me/color", dana.Token, map[string]string{"color": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty color status %d, want 400", w.Code)
	}
}

func TestStaffOnlyRoutes(t *testing.T) {
	app := newTestApp(t, "staff-only")
	dana := signup(t, app, "111", "Dana")

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodPut, "/api/users/1/role"},
		{http.MethodPut, "/api/users/1/color"},
		{http.MethodDelete, "/api/users/1"},
		{http.MethodGet, "/api/events/export"},
	} {
		w := doJSON(t, app, tc.method, tc.path, dana.Token, map[string]string{})
		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s as developer: status %d, want 403", tc.method, tc.path, w.Code)
		}
	}
}

func TestRoleUpdateRestricted(t *testing.T) {
	app := newTestApp(t, "role-update")
	dana := signup(t, app, "111", "Dana")
	staff := staffLogin(t, app)
	path := fmt.Sprintf("/api/users/%d/role", dana.User.ID)

	w := doJSON(t, app, http.MethodPut, path, staff.Token, map[string]string{"role": "superuser"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid role status %d, want 400", w.Code)
	}
	// the stored role is untouched by the rejected update
	relog := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"id_number": "111"})
	var res authResult
	_ = json.Unmarshal(relog.Body.Bytes(), &res)
	if res.User.Role != models.RoleDeveloper {
		t.Errorf("role after rejected update = %q, want developer", res.User.Role)
	}

	w = doJSON(t, app, http.MethodPut, path, staff.Token, map[string]string{"role": "staff"})
	if w.Code != http.StatusOK {
		t.Fatalf("valid role status %d body %s", w.Code, w.Body.String())
	}
	var updated models.User
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Role != models.RoleStaff {
		t.Errorf("updated role = %q, want staff", updated.Role)
	}

	w = doJSON(t, app, http.MethodPut, "/api/users/9999/role", staff.Token, map[string]string{"role": "staff"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown user status %d, want 404", w.Code)
	}
}

func TestDeleteUserCascade(t *testing.T) {
	app := newTestApp(t, "delete-user")
	dana := signup(t, app, "111", "Dana")
	omer := signup(t, app, "222", "Omer")
	staff := staffLogin(t, app)

	createEvent(t, app, dana.Token, map[string]interface{}{"event_date": "2026-09-10", "type": "vacation"})
	createEvent(t, app, dana.Token, map[string]interface{}{"event_date": "2026-09-11", "type": "sick"})
	createEvent(t, app, omer.Token, map[string]interface{}{"event_date": "2026-09-12", "type": "vacation"})

	// staff cannot delete their own account
	w := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", staff.User.ID), staff.Token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("self delete status %d, want 400", w.Code)
	}

	w = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", dana.User.ID), staff.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status %d body %s", w.Code, w.Body.String())
	}

	// exactly Dana's events are gone, Omer's remain
	list := doJSON(t, app, http.MethodGet, "/api/events", omer.Token, nil)
	var team []map[string]interface{}
	_ = json.Unmarshal(list.Body.Bytes(), &team)
	if len(team) != 1 {
		t.Fatalf("events after cascade = %d, want 1", len(team))
	}
	if team[0]["id_number"] != "222" {
		t.Errorf("surviving event owner = %v, want 222", team[0]["id_number"])
	}

	w = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", dana.User.ID), staff.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete absent user status %d, want 404", w.Code)
	}
}

func TestCSVExportRoundTrip(t *testing.T) {
	app := newTestApp(t, "csv-export")
	dana := signup(t, app, "111", "Dana")
	staff := staffLogin(t, app)

	notes := `said "back on Monday"`
	createEvent(t, app, dana.Token, map[string]interface{}{
		"event_date": "2026-09-01", "start_time": "09:00", "end_time": "12:00", "type": "vacation", "notes": notes,
	})
	createEvent(t, app, dana.Token, map[string]interface{}{"event_date": "2026-08-15", "type": "sick"})

	w := doJSON(t, app, http.MethodGet, "/api/events/export", staff.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export status %d body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "team-calendar-") {
		t.Errorf("content disposition = %q", cd)
	}

	body := w.Body.String()
	if !strings.Contains(body, "\r\n") {
		t.Error("export is not CRLF terminated")
	}
	if !strings.HasPrefix(body, `"event_id","id_number","full_name","event_date","start_time","end_time","type","notes"`) {
		t.Errorf("unexpected header line: %q", strings.SplitN(body, "\r\n", 2)[0])
	}

	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if len(records) != 3 { // header + 2 events
		t.Fatalf("csv rows = %d, want 3", len(records))
	}
	// ordered by date then name; the doubled quotes parse back to the original
	if records[1][3] != "2026-08-15" || records[2][3] != "2026-09-01" {
		t.Errorf("rows not date ordered: %v / %v", records[1][3], records[2][3])
	}
	if records[2][7] != notes {
		t.Errorf("notes round trip = %q, want %q", records[2][7], notes)
	}
	if records[1][4] != "" {
		t.Errorf("absent start_time = %q, want empty", records[1][4])
	}
}
