package util

import (
	"fmt"
	"os"
	"strings"
)

// LoadPromptFile reads a prompt template from disk. An empty path returns "" and no error.
func LoadPromptFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt %s: %w", path, err)
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "", fmt.Errorf("prompt %s is empty", path)
	}
	return s, nil
}
