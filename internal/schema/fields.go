package schema

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
)

// ISOLayout is the millisecond-precision UTC layout used for every timestamp.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t as an ISO-8601 UTC string with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseTimestamp parses an ISO-8601 UTC timestamp. Offsets other than Z are rejected.
func ParseTimestamp(s string) (time.Time, error) {
	if !strings.HasSuffix(s, "Z") {
		return time.Time{}, fmt.Errorf("timestamp %q must be UTC (Z suffix)", s)
	}
	return time.Parse(time.RFC3339Nano, s)
}

// NewID returns a fresh random UUID string.
func NewID() string {
	return uuid.NewString()
}

var tagCaser = cases.Lower(language.Und)

// NormalizeTagName trims surrounding whitespace and lower-cases name.
func NormalizeTagName(name string) string {
	return tagCaser.String(strings.TrimSpace(name))
}

func uuidField(field, value string) foundation.ValidationResult {
	if len(value) != 36 || uuid.Validate(value) != nil {
		return foundation.Invalid(foundation.FieldError{
			Field: field, Code: "invalid_string", Message: "invalid uuid", Value: value,
		})
	}
	return foundation.Valid()
}

func optionalUUIDField(field string, value foundation.Option[string]) foundation.ValidationResult {
	if v, ok := value.Get(); ok {
		return uuidField(field, v)
	}
	return foundation.Valid()
}

func datetimeField(field, value string) foundation.ValidationResult {
	if _, err := ParseTimestamp(value); err != nil {
		return foundation.Invalid(foundation.FieldError{
			Field: field, Code: "invalid_string", Message: "invalid datetime", Value: value,
		})
	}
	return foundation.Valid()
}

func emailField(field, value string) foundation.ValidationResult {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" || !emailShape(value) {
		return foundation.Invalid(foundation.FieldError{
			Field: field, Code: "invalid_string", Message: "invalid email", Value: value,
		})
	}
	return foundation.Valid()
}

// emailShape rejects dot misuse in the local part and requires a dotted
// domain whose labels are non-empty and whose top-level label is at least
// two ASCII letters.
func emailShape(addr string) bool {
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 {
		return false
	}
	local := addr[:at]
	if local[0] == '.' || strings.Contains(local, "..") {
		return false
	}
	labels := strings.Split(addr[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || label[0] == '-' {
			return false
		}
	}
	tld := labels[len(labels)-1]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func urlField(field, value string) foundation.ValidationResult {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return foundation.Invalid(foundation.FieldError{
			Field: field, Code: "invalid_string", Message: "invalid url", Value: value,
		})
	}
	return foundation.Valid()
}

func minLength(field, value string, n int) foundation.ValidationResult {
	return foundation.StringMinLength(field, n)(value)
}

// recordFields validates the id and timestamps every stored record carries.
func recordFields(id, createdAt, updatedAt string) foundation.ValidationResult {
	return uuidField("id", id).
		Combine(datetimeField("createdAt", createdAt)).
		Combine(datetimeField("updatedAt", updatedAt))
}

// Patch is an update field that distinguishes "absent" from an explicit value,
// including an explicit null for nullable fields.
type Patch[T any] struct {
	set   bool
	value T
}

// Set returns a Patch carrying v.
func Set[T any](v T) Patch[T] {
	return Patch[T]{set: true, value: v}
}

// Get returns the patched value and whether the field was present.
func (p Patch[T]) Get() (T, bool) {
	return p.value, p.set
}

// IsZero reports an absent field, so omitzero drops it when encoding.
func (p Patch[T]) IsZero() bool {
	return !p.set
}

func (p Patch[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.set, p.value = true, v
	return nil
}

// recordKeys returns keys plus the id and timestamps of a stored record.
func recordKeys(keys ...string) []string {
	return append([]string{"id", "createdAt", "updatedAt"}, keys...)
}
