package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "name", "must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "director_id", "must be an integer value")
	v.Check(false, "director_id", "must be positive")
	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"director_id": "must be an integer value"}, v.Errors)
}

func TestPermittedValue(t *testing.T) {
	assert.True(t, PermittedValue("pgx", "pgx", "postgres"))
	assert.False(t, PermittedValue("mysql", "pgx", "postgres"))
	assert.False(t, PermittedValue(3))
}
