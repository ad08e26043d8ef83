package runner

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"time"
)

// DefaultBatchSize is the number of CUSIPs reconciled per batch when no
// explicit size is given. Batches are independent units of work, so the
// size only trades memory per worker against scheduling overhead.
const DefaultBatchSize = 100

// Partition splits the CUSIP universe into batches of at most size
// identifiers, preserving input order.
func Partition(cusips []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}

	batches := make([][]string, 0, (len(cusips)+size-1)/size)
	for lo := 0; lo < len(cusips); lo += size {
		hi := lo + size
		if hi > len(cusips) {
			hi = len(cusips)
		}
		batches = append(batches, cusips[lo:hi:hi])
	}
	return batches
}

// batchKey derives the idempotency key for one batch: a digest over the
// sorted identifier set and the date window. The same CUSIPs and window
// always map to the same key, regardless of input order.
func batchKey(cusips []string, start, end time.Time) string {
	sorted := make([]string, len(cusips))
	copy(sorted, cusips)
	sort.Strings(sorted)

	h := sha256.New()
	for _, c := range sorted {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	h.Write([]byte(start.Format(dateLayout)))
	h.Write([]byte{0})
	h.Write([]byte(end.Format(dateLayout)))
	return hex.EncodeToString(h.Sum(nil))
}
