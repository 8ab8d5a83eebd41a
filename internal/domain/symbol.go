package domain

import (
	"errors"
	"strings"
)

var ErrEmptySymbol = errors.New("empty symbol")

// NormalizeSymbol uppercases a user-supplied ticker.
// Listing validation happens against the exchange universe, not here.
func NormalizeSymbol(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", ErrEmptySymbol
	}
	return s, nil
}
