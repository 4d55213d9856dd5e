package mysql

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuePlaceholders(t *testing.T) {
	assert.Equal(t, "(?)", valuePlaceholders(1, 1))
	assert.Equal(t, "(?,?,?)", valuePlaceholders(1, 3))
	assert.Equal(t, "(?,?),(?,?)", valuePlaceholders(2, 2))
}

func TestLastNonZero_RejectsUnknownColumn(t *testing.T) {
	// Parameter names are interpolated as SQL identifiers, so anything outside
	// the whitelist must fail before a query is built.
	s := NewWithDB(nil, nil)

	for _, param := range []string{
		"timestamp",
		"water_discharge; DROP TABLE EWS_retrieved_db_data",
		"",
	} {
		_, err := s.LastNonZero(context.Background(), "ST020", param)
		require.Error(t, err, param)
		assert.Contains(t, err.Error(), "not seedable")
	}
}

func TestNullableFloat(t *testing.T) {
	assert.Nil(t, nullableFloat(sql.NullFloat64{}))

	v := nullableFloat(sql.NullFloat64{Float64: 1.25, Valid: true})
	require.NotNil(t, v)
	assert.Equal(t, 1.25, *v)

	zero := nullableFloat(sql.NullFloat64{Float64: 0, Valid: true})
	require.NotNil(t, zero)
	assert.Equal(t, 0.0, *zero)
}
