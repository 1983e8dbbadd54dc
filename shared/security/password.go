// Package security provides password hashing helpers.
package security

import "github.com/matthewhartstonge/argon2"

var config = argon2.DefaultConfig()

// HashPassword hashes a plaintext password with argon2id and returns the
// encoded hash string.
func HashPassword(password string) (string, error) {
	encoded, err := config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword checks a plaintext password against an encoded argon2 hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
