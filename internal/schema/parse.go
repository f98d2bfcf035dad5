package schema

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
	"github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
)

type validatable interface {
	Validate() foundation.ValidationResult
}

// keyed is implemented by shapes whose JSON keys carry presence rules.
// required keys must be present and non-null; nonNull keys may be absent
// but never null.
type keyed interface {
	keys() (required, nonNull []string)
}

// parse decodes data into T and validates it.
func parse[T validatable](entity string, data []byte) foundation.Outcome[T] {
	return foundation.FlatMap(decode[T](entity, data), func(v T) foundation.Outcome[T] {
		return foundation.ValidateInto(entity, v, checkPresence(v, data, v.Validate()))
	})
}

// checkPresence adds presence failures for v's keys to res. A field that
// fails presence drops its other errors, since its decoded value is a zero.
func checkPresence(v any, data []byte, res foundation.ValidationResult) foundation.ValidationResult {
	k, ok := v.(keyed)
	if !ok {
		return res
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return res
	}
	required, nonNull := k.keys()
	missing := make(map[string]bool)
	var errs []foundation.FieldError
	for _, key := range required {
		if val, ok := raw[key]; !ok || isNull(val) {
			missing[key] = true
			errs = append(errs, foundation.NewValidationError(key, "required", "Required"))
		}
	}
	for _, key := range nonNull {
		if val, ok := raw[key]; ok && isNull(val) {
			missing[key] = true
			errs = append(errs, foundation.NewValidationError(key, "invalid_type", "expected value, received null"))
		}
	}
	if len(errs) == 0 {
		return res
	}
	for _, fe := range res.Errors {
		if !missing[fe.Field] {
			errs = append(errs, fe)
		}
	}
	return foundation.Invalid(errs...)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decode[T any](entity string, data []byte) foundation.Outcome[T] {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		return foundation.Err[T](decodeError(entity, err))
	}
	if dec.More() {
		return foundation.Err[T](decodeError(entity, stderrors.New("unexpected data after JSON value")))
	}
	return foundation.Ok(v)
}

func decodeError(entity string, err error) error {
	fe := foundation.FieldError{Code: "invalid_json", Message: err.Error()}
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		fe = foundation.FieldError{
			Field:   typeErr.Field,
			Code:    "invalid_type",
			Message: fmt.Sprintf("expected %s, received %s", typeErr.Type, typeErr.Value),
		}
	}
	return foundation.Invalid(fe).ToError(entity)
}

// Variant selects which shape of an entity to parse.
type Variant string

const (
	VariantRecord Variant = "record"
	VariantCreate Variant = "create"
	VariantUpdate Variant = "update"
)

type parser func([]byte) foundation.Outcome[any]

func erased[T validatable](entity string) parser {
	return func(data []byte) foundation.Outcome[any] {
		return foundation.Map(parse[T](entity, data), func(v T) any { return v })
	}
}

func kind[R, C, U validatable](entity string) map[Variant]parser {
	return map[Variant]parser{
		VariantRecord: erased[R](entity),
		VariantCreate: erased[C](entity),
		VariantUpdate: erased[U](entity),
	}
}

var registry = map[string]map[Variant]parser{
	"user":              kind[User, CreateUser, UpdateUser]("user"),
	"bookmark":          kind[Bookmark, CreateBookmark, UpdateBookmark]("bookmark"),
	"tag":               kind[Tag, CreateTag, UpdateTag]("tag"),
	"persona":           kind[Persona, CreatePersona, UpdatePersona]("persona"),
	"user-bookmark":     kind[UserBookmark, CreateUserBookmark, UpdateUserBookmark]("user-bookmark"),
	"user-bookmark-tag": kind[UserBookmarkTag, CreateUserBookmarkTag, UpdateUserBookmarkTag]("user-bookmark-tag"),
	"bookmark-tag":      kind[BookmarkTag, CreateBookmarkTag, UpdateBookmarkTag]("bookmark-tag"),
}

// Kinds lists the entity names accepted by Parse.
func Kinds() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse decodes and validates data as the given entity kind and variant.
func Parse(kindName string, variant Variant, data []byte) foundation.Outcome[any] {
	variants, ok := registry[kindName]
	if !ok {
		return foundation.Err[any](errors.NotFoundError("schema "+kindName).
			WithContext("known", Kinds()).
			Build())
	}
	p, ok := variants[variant]
	if !ok {
		return foundation.Err[any](errors.ValidationError(fmt.Sprintf("unknown variant %q", variant)).Build())
	}
	return p(data)
}
