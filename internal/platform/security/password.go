package security

import "github.com/alexedwards/argon2id"

// HashPassword is the single place a credential gets hashed. Callers must
// never write a plaintext password anywhere permanent.
func HashPassword(pw string) (string, error) {
	return argon2id.CreateHash(pw, argon2id.DefaultParams)
}

func CheckPassword(hash, pw string) (bool, error) {
	return argon2id.ComparePasswordAndHash(pw, hash)
}
