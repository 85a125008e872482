// Package cryptox hashes and verifies account passwords with argon2id.
//
// Hashes use the PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// with unpadded standard base64 for salt and key.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mochamagic/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	hashPrefix = "$argon2id$"

	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

var ErrMalformedHash = errors.New("malformed password hash")

// generateSalt is a test seam.
var generateSalt = func() []byte { return common.GenerateRandByteArray(saltLen) }

// HashPassword derives an argon2id key from password with a fresh random salt
// and returns it encoded as a PHC string.
func HashPassword(password []byte) string {
	salt := generateSalt()
	key := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		hashPrefix, argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

// IsHashed reports whether stored looks like a value produced by HashPassword.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, hashPrefix)
}

// CheckPassword verifies password against stored. Values that are not argon2id
// hashes are legacy plaintext records and are compared in constant time.
func CheckPassword(stored string, password []byte) bool {
	if !IsHashed(stored) {
		return subtle.ConstantTimeCompare([]byte(stored), password) == 1
	}

	p, salt, key, err := decodeHash(stored)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey(password, salt, p.time, p.memory, p.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

type params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func decodeHash(encoded string) (params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return params{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params{}, nil, nil, ErrMalformedHash
	}

	var p params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return params{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params{}, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params{}, nil, nil, ErrMalformedHash
	}
	return p, salt, key, nil
}
