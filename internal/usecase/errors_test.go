package usecase

import (
	"errors"
	"fmt"
	"testing"

	"movie-booking/internal/data/repository"

	"github.com/stretchr/testify/assert"
)

func TestStorageErrorClassification(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{fmt.Errorf("insert: %w", repository.ErrDuplicate), KindConflict},
		{fmt.Errorf("insert: %w", repository.ErrForeignKey), KindReference},
		{fmt.Errorf("insert: %w", repository.ErrConstraint), KindValidation},
		{fmt.Errorf("update: %w", repository.ErrStatusChanged), KindConflict},
		{errors.New("connection reset"), KindInternal},
		{errors.Join(notFoundError("gone"), errors.New("rollback failed")), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, storageError("op", tt.err).Kind)
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := internalError("load", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
