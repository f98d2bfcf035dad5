package schema

import (
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
)

// UserBookmarkTag is a tag applied by a user to one of their bookmarks.
type UserBookmarkTag struct {
	ID             string `json:"id"`
	UserBookmarkID string `json:"userBookmarkId"`
	TagID          string `json:"tagId"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type CreateUserBookmarkTag struct {
	UserBookmarkID string `json:"userBookmarkId"`
	TagID          string `json:"tagId"`
}

type UpdateUserBookmarkTag struct {
	UserBookmarkID *string `json:"userBookmarkId,omitempty"`
	TagID          *string `json:"tagId,omitempty"`
}

func (t UserBookmarkTag) Validate() foundation.ValidationResult {
	return recordFields(t.ID, t.CreatedAt, t.UpdatedAt).
		Combine(CreateUserBookmarkTag{UserBookmarkID: t.UserBookmarkID, TagID: t.TagID}.Validate())
}

func (c CreateUserBookmarkTag) Validate() foundation.ValidationResult {
	return uuidField("userBookmarkId", c.UserBookmarkID).
		Combine(uuidField("tagId", c.TagID))
}

func (u UpdateUserBookmarkTag) Validate() foundation.ValidationResult {
	res := foundation.Valid()
	if u.UserBookmarkID != nil {
		res = res.Combine(uuidField("userBookmarkId", *u.UserBookmarkID))
	}
	if u.TagID != nil {
		res = res.Combine(uuidField("tagId", *u.TagID))
	}
	return res
}

func (UserBookmarkTag) keys() (required, nonNull []string) {
	return recordKeys("userBookmarkId", "tagId"), nil
}

func (CreateUserBookmarkTag) keys() (required, nonNull []string) {
	return []string{"userBookmarkId", "tagId"}, nil
}

func (UpdateUserBookmarkTag) keys() (required, nonNull []string) {
	return nil, []string{"userBookmarkId", "tagId"}
}

func (u UpdateUserBookmarkTag) ApplyTo(t *UserBookmarkTag, now time.Time) {
	if u.UserBookmarkID != nil {
		t.UserBookmarkID = *u.UserBookmarkID
	}
	if u.TagID != nil {
		t.TagID = *u.TagID
	}
	t.UpdatedAt = FormatTimestamp(now)
}

func NewUserBookmarkTag(c CreateUserBookmarkTag, now time.Time) foundation.Outcome[UserBookmarkTag] {
	ts := FormatTimestamp(now)
	return foundation.ValidateInto("user-bookmark-tag", UserBookmarkTag{
		ID:             NewID(),
		UserBookmarkID: c.UserBookmarkID,
		TagID:          c.TagID,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}, c.Validate())
}

func ParseUserBookmarkTag(data []byte) foundation.Outcome[UserBookmarkTag] {
	return parse[UserBookmarkTag]("user-bookmark-tag", data)
}
