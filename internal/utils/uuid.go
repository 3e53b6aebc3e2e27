package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// GenerateUUID returns a random 128-bit job identifier in canonical UUID
// form. The version and variant bits are set so the IDs read as v4 UUIDs in
// log searches, though nothing here depends on RFC 4122 semantics.
func GenerateUUID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// Out of randomness; a nanosecond timestamp still keeps job IDs
		// distinguishable in logs
		return "t-" + strconv.FormatInt(time.Now().UnixNano(), 16)
	}

	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	s := hex.EncodeToString(b)
	return s[:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:]
}
