package pkg

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateGameID - time-ordered unique game id.
func GenerateGameID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}

	return id.String(), nil
}
