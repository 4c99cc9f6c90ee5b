// Package id generates identifiers for request tracing.
package id

import (
	"crypto/rand"
	"time"
)

// crockfordBase32 omits I, L, O and U.
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ULIDLength is the length of an encoded ULID.
const ULIDLength = 26

// NewULID returns a ULID: a 48-bit millisecond timestamp followed by 80 random
// bits, encoded as 26 Crockford Base32 characters. ULIDs sort by creation time
// at millisecond granularity.
func NewULID() string {
	var entropy [10]byte
	_, _ = rand.Read(entropy[:]) // never fails; see crypto/rand.Read
	return encodeULID(time.Now(), entropy)
}

func encodeULID(t time.Time, entropy [10]byte) string {
	var raw [16]byte
	ms := uint64(t.UnixMilli())
	for i := range 6 {
		raw[i] = byte(ms >> (40 - 8*i))
	}
	copy(raw[6:], entropy[:])

	// 26 five-bit groups cover 130 bits; the first two are zero padding.
	var out [ULIDLength]byte
	for i := range out {
		var v byte
		for j := range 5 {
			v <<= 1
			if bit := i*5 + j - 2; bit >= 0 {
				v |= (raw[bit/8] >> (7 - bit%8)) & 1
			}
		}
		out[i] = crockfordBase32[v]
	}
	return string(out[:])
}
