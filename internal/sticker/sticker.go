// Package sticker builds and parses asset sticker codes of the form
// LOCATION/CATEGORY/NNNN.
package sticker

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Width is the minimum number of digits in a sticker sequence number.
const Width = 4

var ErrInvalidSticker = errors.New("invalid sticker")

var shortCodeRegex = regexp.MustCompile(`^[A-Z0-9]{2,5}$`)

// ValidShortCode reports whether code can be used as a location or category
// sticker short code.
func ValidShortCode(code string) bool {
	return shortCodeRegex.MatchString(code)
}

// Prefix joins a location and category short code.
func Prefix(locationCode, categoryCode string) string {
	return strings.ToUpper(locationCode) + "/" + strings.ToUpper(categoryCode)
}

// Format renders the n-th sticker of a prefix.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s/%0*d", prefix, Width, n)
}

// Parse splits a sticker into its prefix and sequence number.
func Parse(s string) (string, int64, error) {
	idx := strings.LastIndex(s, "/")
	if idx <= 0 || idx == len(s)-1 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidSticker, s)
	}

	prefix, digits := s[:idx], s[idx+1:]
	parts := strings.Split(prefix, "/")
	if len(parts) != 2 || !ValidShortCode(parts[0]) || !ValidShortCode(parts[1]) {
		return "", 0, fmt.Errorf("%w: bad prefix %q", ErrInvalidSticker, prefix)
	}

	if len(digits) < Width {
		return "", 0, fmt.Errorf("%w: sequence %q too short", ErrInvalidSticker, digits)
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("%w: bad sequence %q", ErrInvalidSticker, digits)
	}

	return prefix, n, nil
}
