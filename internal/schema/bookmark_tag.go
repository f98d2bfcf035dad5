package schema

import (
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
)

// BookmarkTag tracks how many users applied a tag to a bookmark.
// LastAppliedAt feeds trending and recent-activity views.
type BookmarkTag struct {
	ID            string `json:"id"`
	BookmarkID    string `json:"bookmarkId"`
	TagID         string `json:"tagId"`
	Count         int    `json:"count"`
	LastAppliedAt string `json:"lastAppliedAt"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type CreateBookmarkTag struct {
	BookmarkID    string `json:"bookmarkId"`
	TagID         string `json:"tagId"`
	Count         int    `json:"count"`
	LastAppliedAt string `json:"lastAppliedAt"`
}

type UpdateBookmarkTag struct {
	BookmarkID    *string `json:"bookmarkId,omitempty"`
	TagID         *string `json:"tagId,omitempty"`
	Count         *int    `json:"count,omitempty"`
	LastAppliedAt *string `json:"lastAppliedAt,omitempty"`
}

func (t BookmarkTag) Validate() foundation.ValidationResult {
	return recordFields(t.ID, t.CreatedAt, t.UpdatedAt).Combine(CreateBookmarkTag{
		BookmarkID:    t.BookmarkID,
		TagID:         t.TagID,
		Count:         t.Count,
		LastAppliedAt: t.LastAppliedAt,
	}.Validate())
}

func (c CreateBookmarkTag) Validate() foundation.ValidationResult {
	return uuidField("bookmarkId", c.BookmarkID).
		Combine(uuidField("tagId", c.TagID)).
		Combine(foundation.IntPositive("count")(c.Count)).
		Combine(datetimeField("lastAppliedAt", c.LastAppliedAt))
}

func (u UpdateBookmarkTag) Validate() foundation.ValidationResult {
	res := foundation.Valid()
	if u.BookmarkID != nil {
		res = res.Combine(uuidField("bookmarkId", *u.BookmarkID))
	}
	if u.TagID != nil {
		res = res.Combine(uuidField("tagId", *u.TagID))
	}
	if u.Count != nil {
		res = res.Combine(foundation.IntPositive("count")(*u.Count))
	}
	if u.LastAppliedAt != nil {
		res = res.Combine(datetimeField("lastAppliedAt", *u.LastAppliedAt))
	}
	return res
}

func (BookmarkTag) keys() (required, nonNull []string) {
	return recordKeys("bookmarkId", "tagId", "count", "lastAppliedAt"), nil
}

func (CreateBookmarkTag) keys() (required, nonNull []string) {
	return []string{"bookmarkId", "tagId", "count", "lastAppliedAt"}, nil
}

func (UpdateBookmarkTag) keys() (required, nonNull []string) {
	return nil, []string{"bookmarkId", "tagId", "count", "lastAppliedAt"}
}

func (u UpdateBookmarkTag) ApplyTo(t *BookmarkTag, now time.Time) {
	if u.BookmarkID != nil {
		t.BookmarkID = *u.BookmarkID
	}
	if u.TagID != nil {
		t.TagID = *u.TagID
	}
	if u.Count != nil {
		t.Count = *u.Count
	}
	if u.LastAppliedAt != nil {
		t.LastAppliedAt = *u.LastAppliedAt
	}
	t.UpdatedAt = FormatTimestamp(now)
}

// Applied records one more application of the tag at now.
func (t *BookmarkTag) Applied(now time.Time) {
	ts := FormatTimestamp(now)
	t.Count++
	t.LastAppliedAt = ts
	t.UpdatedAt = ts
}

func NewBookmarkTag(c CreateBookmarkTag, now time.Time) foundation.Outcome[BookmarkTag] {
	ts := FormatTimestamp(now)
	return foundation.ValidateInto("bookmark-tag", BookmarkTag{
		ID:            NewID(),
		BookmarkID:    c.BookmarkID,
		TagID:         c.TagID,
		Count:         c.Count,
		LastAppliedAt: c.LastAppliedAt,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}, c.Validate())
}

func ParseBookmarkTag(data []byte) foundation.Outcome[BookmarkTag] {
	return parse[BookmarkTag]("bookmark-tag", data)
}
