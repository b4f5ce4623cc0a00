package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// referencePrefix brands merchant references so they are recognizable in
// the gateway's dashboard.
const referencePrefix = "IMPACT360"

// NewMerchantReference returns a merchant reference unique per call:
// branded prefix, millisecond timestamp, and a random suffix wide enough
// that collisions within the same millisecond are not a concern. The
// gateway ties order state to this value, so it must never repeat.
func NewMerchantReference() string {
	var suffix [6]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// nanosecond time rather than returning an error from a generator.
		return fmt.Sprintf("%s_%d_%d", referencePrefix, time.Now().UnixMilli(), time.Now().UnixNano())
	}
	return fmt.Sprintf("%s_%d_%s", referencePrefix, time.Now().UnixMilli(), hex.EncodeToString(suffix[:]))
}
