// Package reference defines the account-scoped reference numbering used by
// clients and invoices: a prefix, a dash and a zero-padded 6-digit sequence,
// e.g. F-000067 or C-000001.
package reference

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	// KindInvoice prefixes invoice references (F for "facture").
	KindInvoice = "F"
	// KindClient prefixes client references.
	KindClient = "C"

	padWidth = 6
)

// Generate formats the reference following lastNumber. The first reference
// for an account is sequence 1, never 0.
func Generate(prefix string, lastNumber int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, padWidth, lastNumber+1)
}

// Parse extracts the sequence number from a reference. References that do
// not carry a digit run after the prefix parse as 0.
func Parse(prefix, ref string) int64 {
	re, ok := parsers[prefix]
	if !ok {
		re = regexp.MustCompile(regexp.QuoteMeta(prefix) + `-(\d+)`)
	}
	match := re.FindStringSubmatch(ref)
	if match == nil {
		return 0
	}
	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

var parsers = map[string]*regexp.Regexp{
	KindInvoice: regexp.MustCompile(KindInvoice + `-(\d+)`),
	KindClient:  regexp.MustCompile(KindClient + `-(\d+)`),
}
