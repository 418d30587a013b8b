// internal/util/ids.go
// Request id generator

package util

import (
	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}
