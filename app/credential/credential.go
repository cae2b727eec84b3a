package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength = 16
	keyLength  = 32
	timeCost   = 1
	memoryKiB  = 64 * 1024
	threads    = 4
)

var ErrEmptyPassword = errors.New("password is empty")

// Hash derives a salted argon2id hash of password. Both values are base64
// encoded for storage.
func Hash(password string) (hash string, salt string, err error) {
	if password == "" {
		return "", "", ErrEmptyPassword
	}

	rawSalt := make([]byte, saltLength)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), rawSalt, timeCost, memoryKiB, threads, keyLength)
	return base64.StdEncoding.EncodeToString(key), base64.StdEncoding.EncodeToString(rawSalt), nil
}

// Verify recomputes the hash for password and compares it in constant time.
func Verify(password, hash, salt string) (bool, error) {
	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	rawHash, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}

	key := argon2.IDKey([]byte(password), rawSalt, timeCost, memoryKiB, threads, uint32(len(rawHash)))
	return subtle.ConstantTimeCompare(rawHash, key) == 1, nil
}
