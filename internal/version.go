package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Version is the current ai1900 release
const Version = "0.3.0"

// GenerateTurnID creates an ID for a chat turn based on timestamp and input text
// Format: epochMillis_md5(text)[:8]
func GenerateTurnID(text string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(text))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}
