package crypto

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2idPrefix = "$argon2id$"

	maxArgon2Memory     = 1 << 22 // 4 GiB in KiB
	maxArgon2Iterations = 64
	maxKeyLength        = 128
)

var b64 = base64.RawStdEncoding

func deriveArgon2id(p Argon2Params, password, salt []byte) []byte {
	return argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}

// encodeArgon2id renders the PHC string
// $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<key>.
func encodeArgon2id(p Argon2Params, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key))
}

func parseArgon2id(verifier string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(verifier, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, ErrUnsupportedVerifier
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: version %q", ErrUnsupportedVerifier, parts[2])
	}

	var memory, iterations, parallelism uint64
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if parallelism == 0 || parallelism > 255 || memory > maxArgon2Memory || iterations > maxArgon2Iterations {
		return p, nil, nil, ErrInvalidParams
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, fmt.Errorf("%w: salt", ErrUnsupportedVerifier)
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: key", ErrUnsupportedVerifier)
	}

	p = Argon2Params{
		Memory:      uint32(memory),
		Iterations:  uint32(iterations),
		Parallelism: uint8(parallelism),
		KeyLength:   uint32(len(key)),
	}
	if err = p.validate(); err != nil {
		return p, nil, nil, err
	}

	return p, salt, key, nil
}

func verifyArgon2id(plaintext, verifier string) bool {
	p, salt, key, err := parseArgon2id(verifier)
	if err != nil {
		return false
	}
	derived := deriveArgon2id(p, []byte(plaintext), salt)
	return subtle.ConstantTimeCompare(derived, key) == 1
}
