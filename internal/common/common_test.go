package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageError(t *testing.T) {
	base := errors.New("disk full")

	err := StorageError("set balance", base)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "set balance")

	// Wrapping twice must not repeat the sentinel.
	twice := StorageError("record income", err)
	assert.ErrorIs(t, twice, ErrStorageFailure)
	assert.Equal(t, 1, bytes.Count([]byte(twice.Error()), []byte(ErrStorageFailure.Error())))

	assert.NoError(t, StorageError("noop", nil))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ErrInvalidAmount))
	assert.True(t, IsValidation(NewUserError("bad", ErrCategoryRequired)))
	assert.False(t, IsValidation(ErrCategoryNotFound))
	assert.False(t, IsValidation(StorageError("x", errors.New("io"))))
}

func TestUserError(t *testing.T) {
	err := NewUserError("Enter a valid amount", ErrInvalidAmount)
	assert.Equal(t, "Enter a valid amount: invalid amount", err.Error())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	var ue *UserError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Enter a valid amount", ue.UserMessage)
}

func TestBackoff(t *testing.T) {
	ctx := context.Background()
	backoff := Backoff{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := backoff.Do(ctx, func() error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := backoff.Do(ctx, func() error {
			calls++
			return errors.New("connection refused")
		})
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		err := backoff.Do(ctx, func() error {
			calls++
			return Permanent(errBadURL)
		})
		assert.Equal(t, errBadURL, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := Backoff{Attempts: 3, Delay: time.Hour}.Do(cancelled, func() error {
			return errors.New("connection refused")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

var errBadURL = errors.New("bad url")

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	LogError(StorageError("get balance", errors.New("disk full")), "Request failed", Fields{"path": "/api/balance"})

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"msg":"Request failed"`)
	assert.Contains(t, out, `"path":"/api/balance"`)
	assert.Contains(t, out, "disk full")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	logger.Info("recorded expense", "category", "food")
	assert.Contains(t, buf.String(), `"category":"food"`)

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
