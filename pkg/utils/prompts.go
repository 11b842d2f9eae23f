package utils

import (
	"fmt"
	"os"
)

// LoadPrompt reads a prompt or persona file from an exact path
// No fallback searching is performed
func LoadPrompt(filePath string) ([]byte, error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return content, nil
}
