// Package textutil holds the small text normalization helpers shared by the
// tool handlers: HTML stripping for product descriptions, rune-safe
// truncation, phone number normalization, and numeric ID extraction from
// vendor global identifiers.
package textutil

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)
var spacePattern = regexp.MustCompile(`\s+`)
var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

// StripHTML removes markup from a vendor-supplied rich-text field, unescapes
// entities and collapses runs of whitespace.
func StripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Truncate shortens s to at most n runes, appending "..." when anything was
// cut off.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// NormalizePhone brings a phone number into an E.164-like shape. A bare
// 10-digit local number gets the +1 country code; anything else keeps its
// digits and gains a leading + if it did not have one.
func NormalizePhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return ""
	}
	hadPlus := strings.HasPrefix(trimmed, "+")
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, trimmed)
	if digits == "" {
		return trimmed
	}
	if !hadPlus && len(digits) == 10 {
		return "+1" + digits
	}
	return "+" + digits
}

// ExtractNumericID strips a gid://shopify/<resource>/ prefix and checks the
// remainder is purely numeric. It accepts bare numeric IDs unchanged.
func ExtractNumericID(id, resource string) (string, error) {
	trimmed := strings.TrimSpace(id)
	prefix := "gid://shopify/" + resource + "/"
	if strings.HasPrefix(trimmed, prefix) {
		trimmed = strings.TrimPrefix(trimmed, prefix)
		// Query-style suffixes (?key=...) are not part of the numeric ID.
		if idx := strings.IndexByte(trimmed, '?'); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}
	if !digitsPattern.MatchString(trimmed) {
		return "", fmt.Errorf("invalid %s id %q", resource, id)
	}
	return trimmed, nil
}

// GlobalID builds the gid form the vendor GraphQL API expects.
func GlobalID(resource, numericID string) string {
	return "gid://shopify/" + resource + "/" + numericID
}
