package models

import (
	"database/sql"
	"encoding/json"
)

// NullableString supports setting a null value for a string datatype from a database
type NullableString struct {
	sql.NullString
}

// MarshalJSON will return the jsonified expression of NullableString
func (r NullableString) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String)
}

// ToNullableString wraps a plain string as a valid NullableString.
func ToNullableString(s string) NullableString {
	return NullableString{sql.NullString{String: s, Valid: true}}
}
