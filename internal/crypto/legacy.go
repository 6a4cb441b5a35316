package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// Verify-only schemes. Nothing in the panel writes them any more, but rows
// created by earlier deployments still carry them until the owner's next
// successful login.
const (
	pbkdf2PHCPrefix      = "$pbkdf2-sha256$"
	werkzeugPBKDF2Prefix = "pbkdf2:"
	werkzeugScryptPrefix = "scrypt:"

	maxPBKDF2Iterations = 10_000_000
	maxScryptN          = 1 << 20
	maxScryptMemory     = 256 << 20 // bytes
	werkzeugScryptKey   = 64
)

// verifyPBKDF2PHC checks $pbkdf2-sha256$i=<iterations>$<salt>$<key> with
// unpadded standard base64 salt and key.
func verifyPBKDF2PHC(plaintext, verifier string) bool {
	parts := strings.Split(verifier, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != "pbkdf2-sha256" {
		return false
	}

	iterations, ok := parseBoundedInt(strings.TrimPrefix(parts[2], "i="), maxPBKDF2Iterations)
	if !ok || !strings.HasPrefix(parts[2], "i=") {
		return false
	}

	salt, err := b64.DecodeString(parts[3])
	if err != nil {
		return false
	}
	key, err := b64.DecodeString(parts[4])
	if err != nil || len(key) == 0 || len(key) > maxKeyLength {
		return false
	}

	derived := pbkdf2.Key([]byte(plaintext), salt, iterations, len(key), sha256.New)
	return subtle.ConstantTimeCompare(derived, key) == 1
}

// verifyWerkzeugPBKDF2 checks pbkdf2:<digest>:<iterations>$<salt>$<hex key>.
// The salt is used as its literal bytes and the key length equals the digest
// size.
func verifyWerkzeugPBKDF2(plaintext, verifier string) bool {
	method, salt, key, ok := splitWerkzeug(verifier)
	if !ok {
		return false
	}

	args := strings.Split(method, ":")
	if len(args) != 3 {
		return false
	}

	var newHash func() hash.Hash
	switch args[1] {
	case "sha256":
		newHash = sha256.New
	case "sha512":
		newHash = sha512.New
	default:
		return false
	}

	iterations, ok := parseBoundedInt(args[2], maxPBKDF2Iterations)
	if !ok || len(key) != newHash().Size() {
		return false
	}

	derived := pbkdf2.Key([]byte(plaintext), []byte(salt), iterations, len(key), newHash)
	return subtle.ConstantTimeCompare(derived, key) == 1
}

// verifyWerkzeugScrypt checks scrypt:<n>:<r>:<p>$<salt>$<hex key> with a
// 64-byte key.
func verifyWerkzeugScrypt(plaintext, verifier string) bool {
	method, salt, key, ok := splitWerkzeug(verifier)
	if !ok || len(key) != werkzeugScryptKey {
		return false
	}

	args := strings.Split(method, ":")
	if len(args) != 4 {
		return false
	}
	n, okN := parseBoundedInt(args[1], maxScryptN)
	r, okR := parseBoundedInt(args[2], 64)
	p, okP := parseBoundedInt(args[3], 64)
	if !okN || !okR || !okP || n < 2 || n&(n-1) != 0 || 128*n*r > maxScryptMemory {
		return false
	}

	derived, err := scrypt.Key([]byte(plaintext), []byte(salt), n, r, p, len(key))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(derived, key) == 1
}

func splitWerkzeug(verifier string) (method, salt string, key []byte, ok bool) {
	parts := strings.Split(verifier, "$")
	if len(parts) != 3 || parts[1] == "" {
		return "", "", nil, false
	}
	key, err := hex.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return "", "", nil, false
	}
	return parts[0], parts[1], key, true
}

func isBcrypt(verifier string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(verifier, prefix) {
			return true
		}
	}
	return false
}

func verifyBcrypt(plaintext, verifier string) bool {
	// bcrypt only looks at the first 72 bytes and rejects anything longer
	if len(plaintext) > 72 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(verifier), []byte(plaintext)) == nil
}

func parseBoundedInt(s string, upper int) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 || v > upper {
		return 0, false
	}
	return v, true
}
