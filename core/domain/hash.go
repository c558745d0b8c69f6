package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHashPrefixLen bounds how much source text feeds a content hash, so
// repeated extractions of the same message body stay cheap and stable.
const ContentHashPrefixLen = 2000

// ContentHash digests a bounded prefix of src into a hex sha256. Used to
// detect repeat itinerary extraction independent of provider message id.
func ContentHash(src string) string {
	if len(src) > ContentHashPrefixLen {
		src = src[:ContentHashPrefixLen]
	}
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}
