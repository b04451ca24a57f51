// Package auth implements the login and registration flow
// of the web frontend against the REST authentication API.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// GenericLoginMessage is shown for failed logins
	// without an error detail from the API.
	GenericLoginMessage = "Login failed. Please check your credentials and try again."

	// GenericRegisterMessage is shown for failed registrations
	// without an error detail from the API.
	GenericRegisterMessage = "Registration failed. Please try again."

	// InvalidFormMessage is shown for forms with field errors.
	InvalidFormMessage = "Please correct the highlighted fields."
)

// Demo credentials that log in without calling the API
// if Client.DemoMode is enabled.
const (
	DemoEmail    = "demo@verisms.com"
	DemoPassword = "demo-password"
)

// FormError is a user facing error of a form submission.
type FormError struct {
	// Message is shown for the whole form
	Message string
	// Fields has messages for individual fields
	Fields FieldErrors
	// Err is the underlying error if any
	Err error
}

func (e *FormError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *FormError) Unwrap() error { return e.Err }

// Client submits login and registration forms
// to the authentication API and keeps the resulting
// session in its TokenStore.
//
// Every call issues a single request without retries.
// Concurrent calls are not de-duplicated.
type Client struct {
	// BaseURL of the API, the endpoints are
	// BaseURL+"/auth/login" and BaseURL+"/auth/register"
	BaseURL    string
	HTTPClient *http.Client
	Store      TokenStore
	// DemoMode enables the login with DemoEmail and DemoPassword
	// without calling the API. Never enable it outside of demos.
	DemoMode bool
	Logger   *slog.Logger
}

// NewClient returns a Client for baseURL
// with a 10 second HTTP timeout and DemoMode disabled.
func NewClient(baseURL string, store TokenStore) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Store:      store,
		Logger:     slog.Default(),
	}
}

type apiErrorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// Login validates the form, posts the credentials to the API,
// and saves the returned session in the Store.
//
// All failures are returned as *FormError:
// the API's error detail if the response has one,
// else GenericLoginMessage, for network errors too.
func (c *Client) Login(ctx context.Context, form LoginForm) (*Session, error) {
	if fields := form.Validate(); fields != nil {
		return nil, &FormError{Message: InvalidFormMessage, Fields: fields}
	}

	if c.DemoMode && strings.EqualFold(strings.TrimSpace(form.Email), DemoEmail) && form.Password == DemoPassword {
		c.logger().Warn("Demo login without authentication API", slog.String("email", DemoEmail))
		session := &Session{
			AccessToken: "demo-" + uuid.NewString(),
			User:        &User{ID: "demo", Email: DemoEmail, Name: "Demo User"},
		}
		if err := c.save(session, GenericLoginMessage); err != nil {
			return nil, err
		}
		return session, nil
	}

	session, err := c.post(ctx, "/auth/login", form, GenericLoginMessage)
	if err != nil {
		c.logger().Info("Login failed", slog.String("email", form.Email), slog.Any("err", err))
		return nil, err
	}
	if err = c.save(session, GenericLoginMessage); err != nil {
		return nil, err
	}
	return session, nil
}

// Register validates the form, posts it to the API,
// and saves the returned session in the Store.
// Errors are handled like in Login with GenericRegisterMessage.
func (c *Client) Register(ctx context.Context, form RegisterForm) (*Session, error) {
	if fields := form.Validate(); fields != nil {
		return nil, &FormError{Message: InvalidFormMessage, Fields: fields}
	}
	session, err := c.post(ctx, "/auth/register", form, GenericRegisterMessage)
	if err != nil {
		c.logger().Info("Registration failed", slog.String("email", form.Email), slog.Any("err", err))
		return nil, err
	}
	if err = c.save(session, GenericRegisterMessage); err != nil {
		return nil, err
	}
	return session, nil
}

// Session returns the stored session or ErrNoSession.
func (c *Client) Session() (*Session, error) {
	return c.Store.Load()
}

// Logout removes the stored session.
func (c *Client) Logout() error {
	return c.Store.Clear()
}

func (c *Client) post(ctx context.Context, path string, payload any, genericMessage string) (*Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &FormError{Message: genericMessage, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &FormError{Message: genericMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &FormError{Message: genericMessage, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &FormError{Message: genericMessage, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := fmt.Errorf("%s %s: %s", req.Method, path, resp.Status)
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil {
			switch {
			case apiErr.Detail != "":
				return nil, &FormError{Message: apiErr.Detail, Err: statusErr}
			case apiErr.Message != "":
				return nil, &FormError{Message: apiErr.Message, Err: statusErr}
			}
		}
		return nil, &FormError{Message: genericMessage, Err: statusErr}
	}

	var session Session
	if err = json.Unmarshal(respBody, &session); err != nil {
		return nil, &FormError{Message: genericMessage, Err: err}
	}
	if session.AccessToken == "" {
		return nil, &FormError{Message: genericMessage, Err: errors.New("response without access_token")}
	}
	return &session, nil
}

func (c *Client) save(session *Session, genericMessage string) error {
	if c.Store == nil {
		return nil
	}
	if err := c.Store.Save(session); err != nil {
		return &FormError{Message: genericMessage, Err: err}
	}
	return nil
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
