package cache

import (
	"encoding/hex"
	"hash/fnv"
	"strconv"
)

// Key generates a hash identifying an embedding by everything that
// determines its value: the model, the dimensionality, and the text.
// Returns a 16-character hex string.
// Two texts share a cache entry only when all three match.
func Key(model string, dimensions int, text string) string {
	h := fnv.New64a()

	h.Write([]byte(model))
	h.Write([]byte(strconv.Itoa(dimensions)))
	h.Write([]byte(text))

	return hex.EncodeToString(h.Sum(nil))
}
