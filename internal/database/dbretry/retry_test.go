package dbretry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pintwise/pintwise/internal/database/dbretry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("not found")

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	assert.False(t, dbretry.IsRetryableError(nil))
	assert.False(t, dbretry.IsRetryableError(context.Canceled))
	assert.False(t, dbretry.IsRetryableError(errNotFound))
	assert.True(t, dbretry.IsRetryableError(errors.New("write tcp: broken pipe")))
	assert.True(t, dbretry.IsRetryableError(errors.New("dial tcp 127.0.0.1:5432: connection refused")))
}

func TestNoResultReturnsPermanentErrorUnchanged(t *testing.T) {
	t.Parallel()

	calls := 0
	err := dbretry.NoResult(t.Context(), func(context.Context) error {
		calls++
		return errNotFound
	})

	require.ErrorIs(t, err, errNotFound)
	assert.Equal(t, errNotFound, err)
	assert.Equal(t, 1, calls)
}

func TestOperationRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := dbretry.Operation(t.Context(), func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("read: connection reset by peer")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}
