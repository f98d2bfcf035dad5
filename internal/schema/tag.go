package schema

import (
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
)

// Tag is a global label. Names are stored normalized (see NormalizeTagName).
type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CreateTag struct {
	Name string `json:"name"`
}

type UpdateTag struct {
	Name *string `json:"name,omitempty"`
}

func (t Tag) Validate() foundation.ValidationResult {
	return recordFields(t.ID, t.CreatedAt, t.UpdatedAt).
		Combine(CreateTag{Name: t.Name}.Validate())
}

func (c CreateTag) Validate() foundation.ValidationResult {
	return minLength("name", c.Name, 1)
}

func (p UpdateTag) Validate() foundation.ValidationResult {
	if p.Name != nil {
		return minLength("name", *p.Name, 1)
	}
	return foundation.Valid()
}

func (Tag) keys() (required, nonNull []string) {
	return recordKeys("name"), nil
}

func (CreateTag) keys() (required, nonNull []string) {
	return []string{"name"}, nil
}

func (UpdateTag) keys() (required, nonNull []string) {
	return nil, []string{"name"}
}

func (p UpdateTag) ApplyTo(t *Tag, now time.Time) {
	if p.Name != nil {
		t.Name = NormalizeTagName(*p.Name)
	}
	t.UpdatedAt = FormatTimestamp(now)
}

// NewTag normalizes the name before validating, so "  Go " becomes "go"
// and a whitespace-only name is rejected.
func NewTag(c CreateTag, now time.Time) foundation.Outcome[Tag] {
	c.Name = NormalizeTagName(c.Name)
	ts := FormatTimestamp(now)
	return foundation.ValidateInto("tag", Tag{
		ID:        NewID(),
		Name:      c.Name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, c.Validate())
}

func ParseTag(data []byte) foundation.Outcome[Tag] {
	return parse[Tag]("tag", data)
}
