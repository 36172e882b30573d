package memoize

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/zeebo/xxh3"
)

// KeyOf derives a canonical string key from a full argument list. Two lists
// produce the same key iff their contents are deeply equal, so slices, maps,
// and structs work as arguments even though they are not comparable
// themselves. Encoding fails for values gob cannot represent (functions,
// channels, nil interfaces). Maps encode in iteration order, so a map with
// more than one entry may key differently across calls; prefer slices or
// structs for composite arguments.
func KeyOf(args ...any) (string, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	for i, arg := range args {
		if err := enc.Encode(arg); err != nil {
			return "", fmt.Errorf("encode argument %d: %w", i, err)
		}
	}
	return buf.String(), nil
}

// Hash64 compacts a canonical key into a 64-bit digest for hash-sharded
// stores. Collisions map distinct keys to the same digest, so use it for
// sharding and fingerprints, not as the cache key itself.
func Hash64(key string) uint64 {
	return xxh3.HashString(key)
}
