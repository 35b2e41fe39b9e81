// Package refno generates human-facing reference numbers for ledger records.
package refno

import (
	"strings"

	"github.com/google/uuid"
)

const (
	PrefixMember      = "MEM"
	PrefixAccount     = "SAV"
	PrefixLoan        = "LN"
	PrefixShare       = "SHR"
	PrefixTransaction = "TXN"
)

// New returns prefix followed by n upper-case hex characters of a random UUID.
// n is capped at 32.
func New(prefix string, n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if n > len(hex) {
		n = len(hex)
	}
	return prefix + hex[:n]
}
