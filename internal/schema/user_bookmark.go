package schema

import (
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
)

// UserBookmark is a user's relationship with a Bookmark.
// Notes are always private; IsPublic controls whether others can see that
// the user saved the URL. PersonaID names the persona that suggested tags.
type UserBookmark struct {
	ID         string                    `json:"id"`
	UserID     string                    `json:"userId"`
	BookmarkID string                    `json:"bookmarkId"`
	Notes      foundation.Option[string] `json:"notes"`
	IsPublic   bool                      `json:"isPublic"`
	PersonaID  foundation.Option[string] `json:"personaId"`
	CreatedAt  string                    `json:"createdAt"`
	UpdatedAt  string                    `json:"updatedAt"`
}

// CreateUserBookmark omits id and timestamps. Missing notes and personaId
// decode as null and a missing isPublic as false.
type CreateUserBookmark struct {
	UserID     string                    `json:"userId"`
	BookmarkID string                    `json:"bookmarkId"`
	Notes      foundation.Option[string] `json:"notes"`
	IsPublic   bool                      `json:"isPublic"`
	PersonaID  foundation.Option[string] `json:"personaId"`
}

// UpdateUserBookmark tells an absent field apart from an explicit null.
type UpdateUserBookmark struct {
	UserID     *string                          `json:"userId,omitempty"`
	BookmarkID *string                          `json:"bookmarkId,omitempty"`
	Notes      Patch[foundation.Option[string]] `json:"notes,omitzero"`
	IsPublic   *bool                            `json:"isPublic,omitempty"`
	PersonaID  Patch[foundation.Option[string]] `json:"personaId,omitzero"`
}

func (b UserBookmark) create() CreateUserBookmark {
	return CreateUserBookmark{
		UserID:     b.UserID,
		BookmarkID: b.BookmarkID,
		Notes:      b.Notes,
		IsPublic:   b.IsPublic,
		PersonaID:  b.PersonaID,
	}
}

func (b UserBookmark) Validate() foundation.ValidationResult {
	return recordFields(b.ID, b.CreatedAt, b.UpdatedAt).Combine(b.create().Validate())
}

func (c CreateUserBookmark) Validate() foundation.ValidationResult {
	return uuidField("userId", c.UserID).
		Combine(uuidField("bookmarkId", c.BookmarkID)).
		Combine(optionalUUIDField("personaId", c.PersonaID))
}

func (u UpdateUserBookmark) Validate() foundation.ValidationResult {
	res := foundation.Valid()
	if u.UserID != nil {
		res = res.Combine(uuidField("userId", *u.UserID))
	}
	if u.BookmarkID != nil {
		res = res.Combine(uuidField("bookmarkId", *u.BookmarkID))
	}
	if persona, ok := u.PersonaID.Get(); ok {
		res = res.Combine(optionalUUIDField("personaId", persona))
	}
	return res
}

func (UserBookmark) keys() (required, nonNull []string) {
	return recordKeys("userId", "bookmarkId"), []string{"isPublic"}
}

func (CreateUserBookmark) keys() (required, nonNull []string) {
	return []string{"userId", "bookmarkId"}, []string{"isPublic"}
}

func (UpdateUserBookmark) keys() (required, nonNull []string) {
	return nil, []string{"userId", "bookmarkId", "isPublic"}
}

func (u UpdateUserBookmark) ApplyTo(b *UserBookmark, now time.Time) {
	if u.UserID != nil {
		b.UserID = *u.UserID
	}
	if u.BookmarkID != nil {
		b.BookmarkID = *u.BookmarkID
	}
	if notes, ok := u.Notes.Get(); ok {
		b.Notes = notes
	}
	if u.IsPublic != nil {
		b.IsPublic = *u.IsPublic
	}
	if persona, ok := u.PersonaID.Get(); ok {
		b.PersonaID = persona
	}
	b.UpdatedAt = FormatTimestamp(now)
}

func NewUserBookmark(c CreateUserBookmark, now time.Time) foundation.Outcome[UserBookmark] {
	ts := FormatTimestamp(now)
	return foundation.ValidateInto("user-bookmark", UserBookmark{
		ID:         NewID(),
		UserID:     c.UserID,
		BookmarkID: c.BookmarkID,
		Notes:      c.Notes,
		IsPublic:   c.IsPublic,
		PersonaID:  c.PersonaID,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}, c.Validate())
}

func ParseUserBookmark(data []byte) foundation.Outcome[UserBookmark] {
	return parse[UserBookmark]("user-bookmark", data)
}
