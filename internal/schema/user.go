package schema

import (
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
)

// User is an account holder.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CreateUser carries the client-supplied fields of a new User.
type CreateUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// UpdateUser is a partial CreateUser.
type UpdateUser struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
}

func (u User) Validate() foundation.ValidationResult {
	return recordFields(u.ID, u.CreatedAt, u.UpdatedAt).
		Combine(CreateUser{Email: u.Email, Username: u.Username}.Validate())
}

func (c CreateUser) Validate() foundation.ValidationResult {
	return emailField("email", c.Email).
		Combine(minLength("username", c.Username, 3))
}

func (p UpdateUser) Validate() foundation.ValidationResult {
	res := foundation.Valid()
	if p.Email != nil {
		res = res.Combine(emailField("email", *p.Email))
	}
	if p.Username != nil {
		res = res.Combine(minLength("username", *p.Username, 3))
	}
	return res
}

// ApplyTo copies the present fields onto u and bumps its update time.
func (User) keys() (required, nonNull []string) {
	return recordKeys("email", "username"), nil
}

func (CreateUser) keys() (required, nonNull []string) {
	return []string{"email", "username"}, nil
}

func (UpdateUser) keys() (required, nonNull []string) {
	return nil, []string{"email", "username"}
}

func (p UpdateUser) ApplyTo(u *User, now time.Time) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	u.UpdatedAt = FormatTimestamp(now)
}

// NewUser validates c and stamps a new User.
func NewUser(c CreateUser, now time.Time) foundation.Outcome[User] {
	ts := FormatTimestamp(now)
	return foundation.ValidateInto("user", User{
		ID:        NewID(),
		Email:     c.Email,
		Username:  c.Username,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, c.Validate())
}

// ParseUser decodes and validates a JSON User.
func ParseUser(data []byte) foundation.Outcome[User] {
	return parse[User]("user", data)
}
