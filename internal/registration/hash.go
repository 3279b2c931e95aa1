package registration

import (
	"fmt"
	"hash/fnv"
)

// hashID derives a stable participant id from a string key using FNV-1a.
// The same key always yields the same id, which keeps mapping idempotent
// and reproducible across runs.
func hashID(key string) string {
	h := fnv.New32a()
	h.Write([]byte(key))
	return fmt.Sprintf("reg-%08x", h.Sum32())
}
