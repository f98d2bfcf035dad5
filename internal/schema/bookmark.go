package schema

import (
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
)

// Bookmark represents a unique URL in the system.
type Bookmark struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CreateBookmark struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type UpdateBookmark struct {
	URL   *string `json:"url,omitempty"`
	Title *string `json:"title,omitempty"`
}

func (b Bookmark) Validate() foundation.ValidationResult {
	return recordFields(b.ID, b.CreatedAt, b.UpdatedAt).
		Combine(CreateBookmark{URL: b.URL, Title: b.Title}.Validate())
}

// Validate checks the url. Any title string, including an empty one, is accepted.
func (c CreateBookmark) Validate() foundation.ValidationResult {
	return urlField("url", c.URL)
}

func (p UpdateBookmark) Validate() foundation.ValidationResult {
	if p.URL != nil {
		return urlField("url", *p.URL)
	}
	return foundation.Valid()
}

func (Bookmark) keys() (required, nonNull []string) {
	return recordKeys("url", "title"), nil
}

func (CreateBookmark) keys() (required, nonNull []string) {
	return []string{"url", "title"}, nil
}

func (UpdateBookmark) keys() (required, nonNull []string) {
	return nil, []string{"url", "title"}
}

func (p UpdateBookmark) ApplyTo(b *Bookmark, now time.Time) {
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	b.UpdatedAt = FormatTimestamp(now)
}

func NewBookmark(c CreateBookmark, now time.Time) foundation.Outcome[Bookmark] {
	ts := FormatTimestamp(now)
	return foundation.ValidateInto("bookmark", Bookmark{
		ID:        NewID(),
		URL:       c.URL,
		Title:     c.Title,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, c.Validate())
}

func ParseBookmark(data []byte) foundation.Outcome[Bookmark] {
	return parse[Bookmark]("bookmark", data)
}
