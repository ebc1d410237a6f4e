package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a foreign key in a request body. The admin forms send it as json
// number or as numeric string, both are accepted.
type ID uint64

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil || s == "" {
		*id = 0

		return err
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("id %q is not a number: %w", s, err)
	}

	*id = ID(v)

	return nil
}

// Amount is a price in a request body, accepted as json number or numeric string.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil || s == "" {
		*a = 0

		return err
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("amount %q is not a number: %w", s, err)
	}

	*a = Amount(v)

	return nil
}

// unquote returns the trimmed text of a json number, string or null.
func unquote(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err //nolint:wrapcheck
		}

		return strings.TrimSpace(s), nil
	}

	return string(b), nil
}
