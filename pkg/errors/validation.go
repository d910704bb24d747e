package errors

import (
	"strings"
	"unicode"
)

// ValidateDimensions rejects non-positive grid sizes.
func ValidateDimensions(width, height int) error {
	if width <= 0 {
		return New(ErrCodeInvalidArgument, "width must be positive, got %d", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidArgument, "height must be positive, got %d", height)
	}
	return nil
}

// ValidateDensity rejects a negative seed count. Zero is a valid request;
// it only fails later when a phase needs at least one region.
func ValidateDensity(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidArgument, "density must not be negative, got %d", n)
	}
	return nil
}

// ValidateBand checks a cluster distance band. Both bounds are exclusive, so
// a band with max <= min+1 can never admit a pair and is rejected.
func ValidateBand(minDist, maxDist int) error {
	if minDist < 0 {
		return New(ErrCodeInvalidArgument, "cluster min distance must not be negative, got %d", minDist)
	}
	if maxDist <= minDist+1 {
		return New(ErrCodeInvalidArgument, "cluster band (%d, %d) is empty", minDist, maxDist)
	}
	return nil
}

// ValidateOutputName validates a base name for generated files. It must be a
// plain file name: no separators, no traversal, no control characters.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	const maxNameLength = 255
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "output name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "output name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "output name cannot contain path traversal sequences (..)")
	}

	return nil
}
