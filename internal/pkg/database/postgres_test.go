package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"gowarehouse/internal/pkg/database"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "warehouses_business_unit_code_key"}

	assert.True(t, database.IsUniqueViolation(dup, ""))
	assert.True(t, database.IsUniqueViolation(dup, "warehouses_business_unit_code_key"))
	assert.True(t, database.IsUniqueViolation(fmt.Errorf("insert: %w", dup), ""))

	assert.False(t, database.IsUniqueViolation(dup, "outra_constraint"))
	assert.False(t, database.IsUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, database.IsUniqueViolation(errors.New("timeout"), ""))
	assert.False(t, database.IsUniqueViolation(nil, ""))
}

func TestDefaultPoolConfig(t *testing.T) {
	cfg := database.DefaultPoolConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Positive(t, cfg.ConnMaxLifetime)
}
