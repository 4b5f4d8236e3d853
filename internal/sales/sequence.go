package sales

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const invoicePrefix = "INV"

// NextNumber computes the next invoice number for today, format
// INV-YYMMDD-NNN with a 3-digit sequence that resets daily. Existing numbers
// with today's date prefix are scanned for the highest parseable suffix;
// malformed suffixes are skipped rather than treated as zero, so corrupt
// numbers can neither fail the operation nor mask the real maximum.
func NextNumber(existing []string, today time.Time) string {
	prefix := fmt.Sprintf("%s-%s-", invoicePrefix, today.Format("060102"))
	max := 0
	for _, number := range existing {
		suffix, ok := strings.CutPrefix(number, prefix)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(suffix)
		if err != nil || seq <= 0 {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}
