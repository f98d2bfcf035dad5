package foundation

import (
	stderrors "errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupError struct {
	Code    string
	Message string
}

func TestSuccess(t *testing.T) {
	r := Success[string, error]("success")

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())

	v, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, "success", v)

	_, isErr := r.Err()
	assert.False(t, isErr)
}

func TestFailure(t *testing.T) {
	t.Run("string payload", func(t *testing.T) {
		r := Failure[int]("error message")

		assert.True(t, r.IsFailure())
		assert.False(t, r.IsSuccess())
		e, ok := r.Err()
		require.True(t, ok)
		assert.Equal(t, "error message", e)

		_, hasValue := r.Value()
		assert.False(t, hasValue)
	})

	t.Run("structured payload", func(t *testing.T) {
		want := lookupError{Code: "NOT_FOUND", Message: "Resource not found"}
		r := Failure[string](want)

		e, ok := r.Err()
		require.True(t, ok)
		assert.Equal(t, want, e)
	})

	t.Run("default error type", func(t *testing.T) {
		cause := stderrors.New("boom")
		r := Err[int](cause)

		e, ok := r.Err()
		require.True(t, ok)
		assert.ErrorIs(t, e, cause)
	})
}

func TestDangerouslyUnwrap(t *testing.T) {
	t.Run("returns the value", func(t *testing.T) {
		payload := &lookupError{Code: "X"}
		r := Ok(payload)
		assert.Same(t, payload, r.DangerouslyUnwrap())
	})

	t.Run("panics on failure", func(t *testing.T) {
		r := Failure[string]("error")

		defer func() {
			rec := recover()
			require.NotNil(t, rec, "expected DangerouslyUnwrap to panic")
			err, ok := rec.(error)
			require.True(t, ok)
			assert.ErrorIs(t, err, ErrUnwrapFailure)
			assert.Contains(t, err.Error(), "attempted to unwrap an error result")

			var unwrapErr *UnwrapError
			require.ErrorAs(t, err, &unwrapErr)
			assert.Equal(t, "error", unwrapErr.Payload)
		}()

		_ = r.DangerouslyUnwrap()
		t.Fatal("DangerouslyUnwrap returned on a failure")
	})
}

func TestUnwrapOr(t *testing.T) {
	assert.Equal(t, "value", Ok("value").UnwrapOr("default"))
	assert.Equal(t, "default", Failure[string]("error").UnwrapOr("default"))
}

func TestMap(t *testing.T) {
	double := func(x int) int { return x * 2 }

	t.Run("transforms success", func(t *testing.T) {
		mapped := Map(Success[int, string](5), double)
		assert.Equal(t, 10, mapped.DangerouslyUnwrap())
	})

	t.Run("passes failure through without calling fn", func(t *testing.T) {
		calls := 0
		mapped := Map(Failure[int]("bad"), func(x int) int {
			calls++
			return x * 2
		})

		require.True(t, mapped.IsFailure())
		e, _ := mapped.Err()
		assert.Equal(t, "bad", e)
		assert.Zero(t, calls)
	})

	t.Run("changes the value type", func(t *testing.T) {
		mapped := Map(Ok("5"), func(s string) int {
			n, _ := strconv.Atoi(s)
			return n
		})
		assert.Equal(t, 5, mapped.DangerouslyUnwrap())
	})

	t.Run("composes", func(t *testing.T) {
		inc := func(x int) int { return x + 1 }
		toString := func(x int) string { return strconv.Itoa(x) }

		for _, r := range []Result[int, string]{Success[int, string](7), Failure[int]("nope")} {
			chained := Map(Map(r, inc), toString)
			fused := Map(r, func(x int) string { return toString(inc(x)) })
			assert.Equal(t, fused, chained)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		r := Success[int, string](3)
		_ = Map(r, double)
		assert.Equal(t, 3, r.DangerouslyUnwrap())
	})
}

func TestFlatMapAndMapErr(t *testing.T) {
	half := func(x int) Result[int, string] {
		if x%2 != 0 {
			return Failure[int]("odd")
		}
		return Success[int, string](x / 2)
	}

	assert.Equal(t, 4, FlatMap(Success[int, string](8), half).DangerouslyUnwrap())

	odd := FlatMap(Success[int, string](3), half)
	e, _ := odd.Err()
	assert.Equal(t, "odd", e)

	wrapped := MapErr(odd, func(s string) error { return stderrors.New("wrapped: " + s) })
	werr, ok := wrapped.Err()
	require.True(t, ok)
	assert.EqualError(t, werr, "wrapped: odd")

	untouched := MapErr(Success[int, string](1), func(s string) error { return stderrors.New(s) })
	assert.Equal(t, 1, untouched.DangerouslyUnwrap())
}

func TestMatch(t *testing.T) {
	describe := func(r Result[int, string]) string {
		return Match(r,
			func(v int) string { return "ok:" + strconv.Itoa(v) },
			func(e string) string { return "err:" + e })
	}
	assert.Equal(t, "ok:1", describe(Success[int, string](1)))
	assert.Equal(t, "err:x", describe(Failure[int]("x")))
}

func TestTuples(t *testing.T) {
	v, err := ToTuple(Ok(3))
	assert.Equal(t, 3, v)
	assert.NoError(t, err)

	cause := stderrors.New("fail")
	v, err = ToTuple(Err[int](cause))
	assert.Zero(t, v)
	assert.ErrorIs(t, err, cause)

	v, err = ToTuple(Err[int](nil))
	assert.Zero(t, v)
	assert.ErrorIs(t, err, ErrUnwrapFailure, "a nil failure must not read as success")

	assert.True(t, FromTuple(strconv.Atoi("12")).IsSuccess())
	assert.True(t, FromTuple(strconv.Atoi("x")).IsFailure())
}

func TestString(t *testing.T) {
	assert.Equal(t, "Success(5)", Success[int, string](5).String())
	assert.Equal(t, "Failure(bad)", Failure[int]("bad").String())
}

// parseAge mirrors a typical call site turning untrusted input into a Result.
func parseAge(input any) Result[int, string] {
	s, ok := input.(string)
	if !ok {
		return Failure[int]("Input must be a string")
	}
	age, err := strconv.Atoi(s)
	if err != nil {
		return Failure[int]("Input must be a valid number")
	}
	if age < 0 || age > 150 {
		return Failure[int]("Age must be between 0 and 150")
	}
	return Success[int, string](age)
}

func TestParseAgeScenario(t *testing.T) {
	valid := parseAge("25")
	require.True(t, valid.IsSuccess())
	assert.Equal(t, 25, valid.DangerouslyUnwrap())

	for _, input := range []any{"invalid", nil, "200"} {
		r := parseAge(input)
		assert.True(t, r.IsFailure(), "input %v", input)
		msg, _ := r.Err()
		assert.NotEmpty(t, msg)
		assert.Equal(t, 0, r.UnwrapOr(0))
	}
}
