package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "gowarehouse/internal/errors"
)

func TestAppErrors_CarryKindAndCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     error
		category string
	}{
		{"duplicate", apperror.NewConflictError(apperror.ErrDuplicateCode, "MWH.001"), apperror.ErrDuplicateCode, apperror.CategoryConflict},
		{"occ", apperror.NewConflictError(apperror.ErrConcurrentModification, "MWH.001"), apperror.ErrConcurrentModification, apperror.CategoryConflict},
		{"not found", apperror.NewNotFoundError(apperror.ErrWarehouseNotFound, "MWH.404"), apperror.ErrWarehouseNotFound, apperror.CategoryNotFound},
		{"capacity", apperror.NewValidationError(apperror.ErrCapacityExceedsLocation, "101 > 100"), apperror.ErrCapacityExceedsLocation, apperror.CategoryValidation},
		{"archived", apperror.NewValidationError(apperror.ErrArchivedImmutable, "MWH.002"), apperror.ErrArchivedImmutable, apperror.CategoryValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.kind))
			assert.Equal(t, tt.category, apperror.CategoryOf(tt.err))
			assert.Equal(t, tt.kind, apperror.KindOf(tt.err))

			wrapped := fmt.Errorf("camada externa: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.kind))
			assert.Equal(t, tt.category, apperror.CategoryOf(wrapped))
		})
	}
}

func TestValidationErrorWithoutKind(t *testing.T) {
	err := apperror.NewValidationError(nil, "payload inválido")

	assert.Nil(t, apperror.KindOf(err))
	assert.Equal(t, apperror.CategoryValidation, apperror.CategoryOf(err))
	assert.Contains(t, err.Error(), "payload inválido")
}

func TestInternalErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperror.NewDBError("Falha ao buscar armazém", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, apperror.CategoryInternal, apperror.CategoryOf(err))
	assert.Contains(t, err.Error(), "connection refused")

	assert.Equal(t, apperror.CategoryInternal, apperror.CategoryOf(errors.New("plain")))
}
