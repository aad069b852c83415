package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrSessionExpired is returned when the server rejects the stored token; the
// root model reacts by dropping the session and returning to the login view.
var ErrSessionExpired = errors.New("session expired, sign in again")

type User struct {
	ID       uint   `json:"id"`
	IDNumber string `json:"id_number"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Color    string `json:"color"`
}

type Event struct {
	ID        uint    `json:"id"`
	EventDate string  `json:"event_date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Type      string  `json:"type"`
	Notes     *string `json:"notes"`
	IDNumber  string  `json:"id_number"`
	FullName  string  `json:"full_name"`
}

type authResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Session holds the server base URL and, after login, the token and user the
// API handed back.
type Session struct {
	BaseURL string
	Token   string
	User    *User
	HTTP    *http.Client
}

func NewSession(baseURL string) *Session {
	return &Session{BaseURL: baseURL, HTTP: &http.Client{Timeout: 15 * time.Second}}
}

func (s *Session) Staff() bool { return s.User != nil && s.User.Role == "staff" }

func (s *Session) Login(idNumber string) error {
	return s.auth("/api/auth/login", map[string]string{"id_number": idNumber})
}

func (s *Session) Signup(idNumber, fullName string) error {
	return s.auth("/api/auth/signup", map[string]string{"id_number": idNumber, "full_name": fullName})
}

func (s *Session) auth(path string, body map[string]string) error {
	var resp authResponse
	if err := s.do(http.MethodPost, path, body, &resp); err != nil {
		return err
	}
	s.Token = resp.Token
	s.User = &resp.User
	return nil
}

func (s *Session) TeamEvents() ([]Event, error) {
	var events []Event
	err := s.do(http.MethodGet, "/api/events", nil, &events)
	return events, err
}

func (s *Session) MyEvents() ([]Event, error) {
	var events []Event
	err := s.do(http.MethodGet, "/api/events/mine", nil, &events)
	return events, err
}

func (s *Session) CreateEvent(req map[string]interface{}) error {
	return s.do(http.MethodPost, "/api/events", req, nil)
}

func (s *Session) Users() ([]User, error) {
	var users []User
	err := s.do(http.MethodGet, "/api/users", nil, &users)
	return users, err
}

func (s *Session) UpdateRole(id uint, role string) error {
	return s.do(http.MethodPut, fmt.Sprintf("/api/users/%d/role", id), map[string]string{"role": role}, nil)
}

func (s *Session) DeleteUser(id uint) error {
	return s.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}

// ExportCSV downloads the staff CSV export and returns the raw body.
func (s *Session) ExportCSV() ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/api/events/export", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, s.apiError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (s *Session) do(method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.BaseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return s.apiError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *Session) apiError(resp *http.Response) error {
	// an authenticated call bounced on auth means the token went stale
	if s.Token != "" && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		s.Token = ""
		s.User = nil
		return ErrSessionExpired
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return errors.New(body.Message)
	}
	return fmt.Errorf("server returned %s", resp.Status)
}
