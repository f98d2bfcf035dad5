package schema

import (
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
)

// Persona is a user-owned prompt profile used to suggest tags.
type Persona struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SystemPrompt string `json:"systemPrompt"`
	UserID       string `json:"userId"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

type CreatePersona struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"systemPrompt"`
	UserID       string `json:"userId"`
}

type UpdatePersona struct {
	Name         *string `json:"name,omitempty"`
	SystemPrompt *string `json:"systemPrompt,omitempty"`
	UserID       *string `json:"userId,omitempty"`
}

func (p Persona) Validate() foundation.ValidationResult {
	return recordFields(p.ID, p.CreatedAt, p.UpdatedAt).
		Combine(CreatePersona{Name: p.Name, SystemPrompt: p.SystemPrompt, UserID: p.UserID}.Validate())
}

func (c CreatePersona) Validate() foundation.ValidationResult {
	return minLength("name", c.Name, 1).
		Combine(minLength("systemPrompt", c.SystemPrompt, 1)).
		Combine(uuidField("userId", c.UserID))
}

func (u UpdatePersona) Validate() foundation.ValidationResult {
	res := foundation.Valid()
	if u.Name != nil {
		res = res.Combine(minLength("name", *u.Name, 1))
	}
	if u.SystemPrompt != nil {
		res = res.Combine(minLength("systemPrompt", *u.SystemPrompt, 1))
	}
	if u.UserID != nil {
		res = res.Combine(uuidField("userId", *u.UserID))
	}
	return res
}

func (Persona) keys() (required, nonNull []string) {
	return recordKeys("name", "systemPrompt", "userId"), nil
}

func (CreatePersona) keys() (required, nonNull []string) {
	return []string{"name", "systemPrompt", "userId"}, nil
}

func (UpdatePersona) keys() (required, nonNull []string) {
	return nil, []string{"name", "systemPrompt", "userId"}
}

func (u UpdatePersona) ApplyTo(p *Persona, now time.Time) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.SystemPrompt != nil {
		p.SystemPrompt = *u.SystemPrompt
	}
	if u.UserID != nil {
		p.UserID = *u.UserID
	}
	p.UpdatedAt = FormatTimestamp(now)
}

func NewPersona(c CreatePersona, now time.Time) foundation.Outcome[Persona] {
	ts := FormatTimestamp(now)
	return foundation.ValidateInto("persona", Persona{
		ID:           NewID(),
		Name:         c.Name,
		SystemPrompt: c.SystemPrompt,
		UserID:       c.UserID,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}, c.Validate())
}

func ParsePersona(data []byte) foundation.Outcome[Persona] {
	return parse[Persona]("persona", data)
}
