package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
)

// ValidationError maps request fields to human readable problems. It is
// written to clients as-is, one list of messages per field.
type ValidationError map[string][]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Add records msg against field.
func (v ValidationError) Add(field, msg string) {
	v[field] = append(v[field], msg)
}

// OrNil returns nil when nothing was recorded.
func (v ValidationError) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

const msgRequired = "This field is required."
