package util

import "github.com/google/uuid"

// NewID mints a random UUID for new rows.
func NewID() string {
	return uuid.NewString()
}
