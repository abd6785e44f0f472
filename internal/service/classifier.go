package service

import (
	"strings"

	"zap-feed-service/internal/core/domain"
)

// WalletClassifier maps wallet names to their semantic role. Matching is
// exact after lower-casing: either the whole name or the role token after the
// final " - " separator must equal a configured vocabulary entry. Substring
// matching caused false positives (a wallet literally named
// "NotAnAllowanceWallet" was treated as an allowance wallet), so exactness is
// a correctness requirement here, not a style choice.
type WalletClassifier struct {
	source      map[string]struct{}
	destination map[string]struct{}
}

// NewWalletClassifier builds a classifier from the configured role vocabularies.
func NewWalletClassifier(sourceNames, destinationNames []string) *WalletClassifier {
	c := &WalletClassifier{
		source:      make(map[string]struct{}, len(sourceNames)),
		destination: make(map[string]struct{}, len(destinationNames)),
	}
	for _, n := range sourceNames {
		c.source[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	for _, n := range destinationNames {
		c.destination[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	return c
}

// Classify returns the wallet's role. The destination vocabulary is checked
// first and the first match wins, so a corrupt name present in both
// vocabularies can never be treated as source.
func (c *WalletClassifier) Classify(walletName string) domain.WalletRole {
	tokens := roleTokens(walletName)
	for _, tok := range tokens {
		if _, ok := c.destination[tok]; ok {
			return domain.RoleDestination
		}
	}
	for _, tok := range tokens {
		if _, ok := c.source[tok]; ok {
			return domain.RoleSource
		}
	}
	return domain.RoleNone
}

// roleTokens returns the strings a wallet name may match by: the whole name,
// plus the role suffix when the name follows the upstream "<owner> - <role>"
// convention.
func roleTokens(name string) []string {
	n := strings.ToLower(strings.TrimSpace(name))
	tokens := []string{n}
	if i := strings.LastIndex(n, " - "); i >= 0 {
		tokens = append(tokens, strings.TrimSpace(n[i+3:]))
	}
	return tokens
}
