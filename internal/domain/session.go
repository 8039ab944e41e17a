package domain

import (
	"regexp"
	"sort"
	"strings"
)

// RoleAdmin is the role that lands on the administration view.
const RoleAdmin = "admin"

// Landing views chosen after login.
const (
	LandingAdmin = "admin"
	LandingUser  = "user"
	LandingLogin = "login"
)

// User is the profile returned by the remote API alongside a token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session is the credential pair held for the lifetime of a login.
// The token is opaque; it is never parsed or checked for expiry.
type Session struct {
	Token string
	User  User
}

// Valid reports whether the session can authorize requests.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// LandingView returns the view a user lands on after login.
func LandingView(s *Session) string {
	switch {
	case !s.Valid():
		return LandingLogin
	case s.User.IsAdmin():
		return LandingAdmin
	default:
		return LandingUser
	}
}

// Credentials is the login form payload.
type Credentials struct {
	Email    string
	Password string
}

// Validate checks both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return NewValidationError("email", "Email is required")
	}

	if c.Password == "" {
		return NewValidationError("password", "Password is required")
	}

	return nil
}

// Registration is the sign-up form payload.
type Registration struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate runs every registration check and reports all failing fields at once.
func (r Registration) Validate() error {
	fields := map[string][]string{}

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = []string{"Name is required"}
	}

	switch {
	case strings.TrimSpace(r.Email) == "":
		fields["email"] = []string{"Email is required"}
	case !emailShape.MatchString(r.Email):
		fields["email"] = []string{"Email is invalid"}
	}

	switch {
	case r.Password == "":
		fields["password"] = []string{"Password is required"}
	case len(r.Password) < MinPasswordLength:
		fields["password"] = []string{"Password must be at least 8 characters long"}
	}

	if r.Password != r.PasswordConfirmation {
		fields["password_confirmation"] = []string{"Passwords do not match"}
	}

	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, fields[k]...)
	}

	return NewValidationErrors("registration form is invalid", messages, fields)
}
