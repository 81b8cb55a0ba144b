package entity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// NewID returns the opaque identifier used by every record.
func NewID() string {
	return uuid.New().String()
}

// NewSlug builds a shareable URL slug: "Protection Quiz!" -> "protection-quiz-3fa2c1".
// fallback is used as the base when name has no usable characters.
func NewSlug(name, fallback string) string {
	base := slugSeparators.ReplaceAllString(strings.ToLower(name), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = fallback
	}

	return base + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
