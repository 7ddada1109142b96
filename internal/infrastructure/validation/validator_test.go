package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/ports"
)

func validTask() ports.CreateTaskRequest {
	return ports.CreateTaskRequest{
		Title:       "Buy milk",
		Description: "two litres",
		Tag:         "Low",
		Deadline:    "2026-10-20",
		Section:     "todo",
	}
}

func TestValidate_TitleBoundary(t *testing.T) {
	t.Parallel()

	v := New()
	cases := []struct {
		length int
		ok     bool
	}{
		{2, false},
		{3, true},
		{50, true},
		{51, false},
	}

	for _, tc := range cases {
		req := validTask()
		req.Title = strings.Repeat("a", tc.length)

		err := v.Validate(&req)
		if tc.ok {
			assert.NoError(t, err, "length %d", tc.length)
			continue
		}

		var verr *Error
		require.True(t, errors.As(err, &verr), "length %d", tc.length)
		assert.Equal(t, "title", verr.Field)
	}
}

func TestValidate_FirstViolationWins(t *testing.T) {
	t.Parallel()

	req := validTask()
	req.Title = "ab"
	req.Tag = "Urgent"

	err := New().Validate(&req)
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Field)
	assert.Equal(t, "min", verr.Rule)
	assert.Equal(t, "title must contain at least 3 character(s)", verr.Message)
}

func TestValidate_EnumMessage(t *testing.T) {
	t.Parallel()

	req := validTask()
	req.Section = "backlog"

	err := New().Validate(&req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'todo' | 'inProgress' | 'underReview' | 'finished'")
	assert.Contains(t, err.Error(), "backlog")
}

func TestValidate_Deadline(t *testing.T) {
	t.Parallel()

	v := New()
	for _, d := range []string{"2026-10-20", "2026-10-20T08:30:00Z", "2026-10-20T08:30:00.123+02:00", "2026-10-20T08:30"} {
		req := validTask()
		req.Deadline = d
		assert.NoError(t, v.Validate(&req), d)
	}

	req := validTask()
	req.Deadline = "next tuesday"
	assert.Error(t, v.Validate(&req))
}

func TestValidate_Signup(t *testing.T) {
	t.Parallel()

	v := New()

	ok := ports.SignupRequest{Name: "Alice", Email: "alice@x.com", Password: "Abcd12!@"}
	require.NoError(t, v.Validate(&ok))

	shortName := ok
	shortName.Name = "A"
	assert.Error(t, v.Validate(&shortName))

	badEmail := ok
	badEmail.Email = "alice"
	err := v.Validate(&badEmail)
	require.Error(t, err)
	assert.Equal(t, "Invalid email", err.Error())

	longEmail := ok
	longEmail.Email = strings.Repeat("a", 45) + "@x.com"
	assert.Error(t, v.Validate(&longEmail))
}

func TestIsValidPassword(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"Abcd12!@":                 true,
		"aB1!zz":                   true,
		"aB1!z":                    false, // too short
		"aB1!" + "zzzzzzzzzzzzzzz": false, // 19 chars
		"abcd12!@":                 false, // no upper
		"ABCD12!@":                 false, // no lower
		"Abcdef!@":                 false, // no digit
		"Abcd1234":                 false, // no symbol
		"Abcd12 !":                 true,
		"Abcd12!é":                 true,
		"Abcd12 é":                 false, // space is not a listed symbol
	}

	for pw, want := range cases {
		assert.Equal(t, want, IsValidPassword(pw), pw)
	}
}

func TestValidate_ObjectID(t *testing.T) {
	t.Parallel()

	v := New()

	assert.NoError(t, v.Validate(&ports.TaskIDParam{ID: "64b7f0c2a1b2c3d4e5f60718"}))

	err := v.Validate(&ports.TaskIDParam{ID: "123"})
	require.Error(t, err)
	assert.Equal(t, "id must contain exactly 24 character(s)", err.Error())

	err = v.Validate(&ports.TaskIDParam{ID: "zzzzzzzzzzzzzzzzzzzzzzzz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hex id")
}

func TestValidate_SetDoneRequiresFlag(t *testing.T) {
	t.Parallel()

	err := New().Validate(&ports.SetTaskDoneRequest{ID: "64b7f0c2a1b2c3d4e5f60718"})
	require.Error(t, err)
	assert.Equal(t, "done is required", err.Error())
}
