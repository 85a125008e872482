package common

import "crypto/rand"

// GenerateRandByteArray returns n random bytes. It panics if the system
// random source fails, which crypto/rand documents as unrecoverable.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites b with zeros. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
