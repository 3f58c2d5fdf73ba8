package utils

import (
	"database/sql"
)

// NullStringToPointer converts sql.NullString to *string.
func NullStringToPointer(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

// PointerToNullString converts *string to sql.NullString.
func PointerToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
