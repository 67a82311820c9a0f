package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputPathValidator checks where the exported PDF may be written.
type OutputPathValidator struct {
	// AllowHomeExpansion determines if tilde expansion is permitted
	AllowHomeExpansion bool
	// RequireExtension forces a file extension, compared case-insensitively
	RequireExtension string
	// MaxPathLength is the maximum allowed path length
	MaxPathLength int
}

func NewOutputPathValidator() *OutputPathValidator {
	return &OutputPathValidator{
		AllowHomeExpansion: true,
		RequireExtension:   ".pdf",
		MaxPathLength:      4096,
	}
}

// ValidateAndSanitize returns a cleaned absolute path for the output file.
// The target may not exist yet; if it does it must not be a directory.
func (v *OutputPathValidator) ValidateAndSanitize(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if len(path) > v.MaxPathLength {
		return "", fmt.Errorf("path too long (max %d characters)", v.MaxPathLength)
	}
	if err := validateCharacters(path); err != nil {
		return "", err
	}

	if strings.HasPrefix(path, "~") {
		if !v.AllowHomeExpansion || !strings.HasPrefix(path, "~/") {
			return "", fmt.Errorf("tilde expansion not allowed or invalid tilde usage")
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot make path absolute: %w", err)
	}

	if v.RequireExtension != "" && !strings.EqualFold(filepath.Ext(absPath), v.RequireExtension) {
		return "", fmt.Errorf("output file must end in %s", v.RequireExtension)
	}

	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", absPath)
	}

	return absPath, nil
}

func validateCharacters(path string) error {
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null bytes")
	}
	for _, char := range path {
		if char < 32 && char != '\t' {
			return fmt.Errorf("path contains control characters")
		}
	}
	return nil
}
