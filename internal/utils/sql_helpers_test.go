package utils

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullStringToPointer(t *testing.T) {
	assert.Nil(t, NullStringToPointer(sql.NullString{}))

	p := NullStringToPointer(sql.NullString{String: "url", Valid: true})
	require.NotNil(t, p)
	assert.Equal(t, "url", *p)
}

func TestPointerToNullString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, PointerToNullString(nil))

	s := "url"
	assert.Equal(t, sql.NullString{String: s, Valid: true}, PointerToNullString(&s))
}
