// Package dashboard implements the admin dashboard: an API client bound to an
// explicit session and a list state machine that fetches the user collection
// once and derives every view locally.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// Session carries the credential for API calls. It is handed to the client
// explicitly; nothing is read from ambient state.
type Session struct {
	BaseURL string
	Token   string
}

// User is the dashboard's wire representation of an account.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	Role      int       `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserInput is the payload for the admin create form.
type CreateUserInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 int    `json:"role"`
	Gender               string `json:"gender,omitempty"`
}

// UpdateUserInput is the payload for the edit modal. Password fields are
// omitted when left blank.
type UpdateUserInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Role                 int    `json:"role"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

// APIError is a failure envelope decoded from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
}

type envelope struct {
	Message string          `json:"message"`
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// Client issues authenticated calls against the admin API.
type Client struct {
	http    *http.Client
	session Session
}

// NewClient binds a client to a session.
func NewClient(httpClient *http.Client, session Session) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, session: session}
}

// Login authenticates against /v1/login and returns a ready session.
func Login(ctx context.Context, httpClient *http.Client, baseURL, email, password string) (Session, User, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	unauth := NewClient(httpClient, Session{BaseURL: baseURL})

	var data struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := unauth.call(ctx, http.MethodPost, "/v1/login", body, &data); err != nil {
		return Session{}, User{}, err
	}
	return Session{BaseURL: baseURL, Token: data.Token}, data.User, nil
}

// FetchUsers retrieves the full collection behind the given role filter.
func (c *Client) FetchUsers(ctx context.Context, filter domain.RoleFilter) ([]User, error) {
	var path, key string
	switch filter {
	case domain.FilterUsers:
		path, key = "/admin/users", "users"
	case domain.FilterAdmins:
		path, key = "/admin/admins", "admins"
	default:
		path, key = "/admin/adminsAndUsers", "users"
	}

	var data map[string]json.RawMessage
	if err := c.call(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}

	var users []User
	if raw, ok := data[key]; ok {
		if err := json.Unmarshal(raw, &users); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
	}
	return users, nil
}

// Count retrieves the server-side count behind the given role filter.
func (c *Client) Count(ctx context.Context, filter domain.RoleFilter) (int64, error) {
	var path, key string
	switch filter {
	case domain.FilterUsers:
		path, key = "/admin/totalUsers", "totalUsers"
	case domain.FilterAdmins:
		path, key = "/admin/totalAdmins", "totalAdmins"
	default:
		path, key = "/admin/totalAdminsAndUsers", "totalAdminsAndUsers"
	}

	var data map[string]int64
	if err := c.call(ctx, http.MethodGet, path, nil, &data); err != nil {
		return 0, err
	}
	return data[key], nil
}

// CreateUser submits the admin create form.
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (User, error) {
	var data struct {
		User User `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, "/admin/user", input, &data); err != nil {
		return User{}, err
	}
	return data.User, nil
}

// UpdateUser submits the edit form for a record.
func (c *Client) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (User, error) {
	var data struct {
		User User `json:"user"`
	}
	if err := c.call(ctx, http.MethodPut, "/admin/user/"+strconv.FormatInt(id, 10), input, &data); err != nil {
		return User{}, err
	}
	return data.User, nil
}

// DeleteUser removes a record and returns its last known state.
func (c *Client) DeleteUser(ctx context.Context, id int64) (User, error) {
	var data struct {
		User User `json:"user"`
	}
	if err := c.call(ctx, http.MethodDelete, "/admin/user/"+strconv.FormatInt(id, 10), nil, &data); err != nil {
		return User{}, err
	}
	return data.User, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.session.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || env.Error != "" {
		message := env.Message
		if message == "" {
			message = "request failed"
		}
		return &APIError{Status: resp.StatusCode, Code: env.Error, Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
