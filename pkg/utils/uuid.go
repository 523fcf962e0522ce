package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugInvalid = regexp.MustCompile("[^a-z0-9-]")
	slugHyphens = regexp.MustCompile("-+")
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// Slugify turns a business name into a URL-safe slug, used as the
// tenant's unique handle: "Salon Ayu & Spa" -> "salon-ayu-spa"
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FormatDocumentNumber renders a sequence value as a zero-padded document
// number, e.g. FormatDocumentNumber("INV-", 42) -> "INV-000042".
func FormatDocumentNumber(prefix string, sequence int64) string {
	return fmt.Sprintf("%s%06d", prefix, sequence)
}
