// internal/util/ids.go
// Generator ID untuk request log

package util

import (
	"strings"

	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}

// ValidID true jika s berbentuk UUID; header X-Request-ID dari luar hanya dipakai bila valid.
func ValidID(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
