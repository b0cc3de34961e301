package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	ve := &ValidationError{Entity: "venue"}
	ve.Add("name", "is required")

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, KindNone},
		{"validation", fmt.Errorf("wrapped: %w", ve), KindValidation},
		{"referential", &ReferentialError{Entity: "venue", ID: 3, Reason: "does not exist"}, KindReferential},
		{"not found", NotFound("artist", 9), KindNotFound},
		{"storage", &StorageError{Op: "insert venue", Err: errors.New("conn reset")}, KindStorage},
		{"unknown", errors.New("mystery"), KindStorage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Kind(tc.err))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	ve := &ValidationError{Entity: "artist"}
	assert.Nil(t, ve.OrNil())

	ve.Add("name", "is required")
	ve.Add("genres", "must contain at least 1 item")

	err := ve.OrNil()
	assert.EqualError(t, err, "invalid artist: name: is required; genres: must contain at least 1 item")
	assert.True(t, IsValidation(err))
}

func TestStorageWrapping(t *testing.T) {
	assert.Nil(t, Storage("op", nil))

	nf := NotFound("venue", 1)
	assert.Same(t, nf, Storage("op", nf), "typed failures pass through")

	raw := errors.New("disk full")
	wrapped := Storage("insert venue", raw)
	assert.True(t, IsStorage(wrapped))
	assert.ErrorIs(t, wrapped, raw)
	assert.Equal(t, "storage: insert venue: disk full", wrapped.Error())

	assert.Same(t, wrapped, Storage("again", wrapped))
}

func TestReferentialMessage(t *testing.T) {
	assert.EqualError(t, &ReferentialError{Entity: "venue", ID: 3, Reason: "does not exist"}, "venue 3: does not exist")
	assert.EqualError(t, &ReferentialError{Entity: "show", Reason: "venue 1 or artist 2 no longer exists"}, "show: venue 1 or artist 2 no longer exists")
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("venue", 42)
	assert.EqualError(t, err, "venue 42: not found")
	assert.True(t, IsNotFound(err))
}
