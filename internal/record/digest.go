package record

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainRecord is the domain prefix for record digests.
// The version suffix leaves room for a future canonical form.
const DomainRecord = "flightreg/record/v1"

// Digest returns the content address of a record:
// hex(SHA256(DomainRecord + 0x00 + canonical JSON)).
func Digest(v Value) (string, error) {
	data, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainRecord, data), nil
}

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
