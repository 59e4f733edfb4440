// Package cryptox holds the client's hashing helpers.
package cryptox

import (
	"encoding/hex"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// deviceDomain separates device digests from any other blake2b use.
const deviceDomain = "fraudsentry/device/v1"

// DeviceDigest turns raw hardware fingerprints into an opaque, fixed-length
// identifier so the API never sees the underlying serials. The result does
// not depend on the order of fingerprints; blanks are ignored. It returns ""
// when no usable fingerprint is given.
func DeviceDigest(fingerprints ...string) string {
	clean := make([]string, 0, len(fingerprints))
	for _, f := range fingerprints {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			clean = append(clean, f)
		}
	}
	if len(clean) == 0 {
		return ""
	}
	sort.Strings(clean)

	sum := blake2b.Sum256([]byte(deviceDomain + "\x00" + strings.Join(clean, "\x00")))
	return hex.EncodeToString(sum[:])
}
