package codesign

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/appsworld/macho-codesign/types"
)

// HashType identifies the digest algorithm used for a code directory's hash
// slots, per the wire tag stored in CodeDirectory.HashType.
type HashType uint8

const (
	HashNone            HashType = 0
	HashSHA1            HashType = 1
	HashSHA256          HashType = 2
	HashSHA256Truncated HashType = 3
	HashSHA384          HashType = 4
)

var hashTypeNames = []types.IntName{
	{uint32(HashNone), "none"},
	{uint32(HashSHA1), "sha1"},
	{uint32(HashSHA256), "sha256"},
	{uint32(HashSHA256Truncated), "sha256-truncated"},
	{uint32(HashSHA384), "sha384"},
}

func (h HashType) String() string {
	return types.StringName(uint32(h), hashTypeNames, false)
}

// IsUnknown reports whether h is none of the recognised tags HashNone
// through HashSHA384. HashNone is recognised and reports false.
func (h HashType) IsUnknown() bool {
	switch h {
	case HashNone, HashSHA1, HashSHA256, HashSHA256Truncated, HashSHA384:
		return false
	default:
		return true
	}
}

// Size returns the digest size in bytes for h, matching hash_size as
// recorded on the wire. HashSHA256Truncated reports 20 even though Digest
// does not compute it; HashNone and unrecognised tags report 0.
func (h HashType) Size() int {
	switch h {
	case HashSHA1:
		return sha1.Size
	case HashSHA256:
		return sha256.Size
	case HashSHA256Truncated:
		return 20
	case HashSHA384:
		return sha512.Size384
	default:
		return 0
	}
}

// Digest computes the digest of data under h. HashSHA256Truncated returns
// NotImplemented: the format permits the tag but few producers emit it and
// this package has no verified test vector for the truncation behaviour.
// HashNone and unrecognised tags return UnsupportedHash.
func (h HashType) Digest(data []byte) ([]byte, error) {
	switch h {
	case HashSHA1:
		sum := sha1.Sum(data)
		return sum[:], nil
	case HashSHA256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	case HashSHA384:
		sum := sha512.Sum384(data)
		return sum[:], nil
	case HashSHA256Truncated:
		return nil, errKind(NotImplemented, "sha256-truncated digest not implemented")
	default:
		return nil, errKind(UnsupportedHash, "hash type %s has no digest implementation", h)
	}
}
