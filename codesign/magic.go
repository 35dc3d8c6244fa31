package codesign

import "github.com/appsworld/macho-codesign/types"

// Magic is the 8-byte blob header's leading tag, identifying the blob's
// physical encoding. Closed enum over the known constants plus Unknown.
type Magic uint32

const (
	MagicRequirement          Magic = 0xfade0c00
	MagicRequirements         Magic = 0xfade0c01
	MagicCodeDirectory        Magic = 0xfade0c02
	MagicEmbeddedSignature    Magic = 0xfade0cc0
	MagicEmbeddedSignatureOld Magic = 0xfade0b02
	MagicEmbeddedEntitlements Magic = 0xfade7171
	MagicDetachedSignature    Magic = 0xfade0cc1
	MagicBlobWrapper          Magic = 0xfade0b01
)

var knownMagics = [...]Magic{
	MagicRequirement,
	MagicRequirements,
	MagicCodeDirectory,
	MagicEmbeddedSignature,
	MagicEmbeddedSignatureOld,
	MagicEmbeddedEntitlements,
	MagicDetachedSignature,
	MagicBlobWrapper,
}

var magicNames = []types.IntName{
	{uint32(MagicRequirement), "Requirement"},
	{uint32(MagicRequirements), "Requirements"},
	{uint32(MagicCodeDirectory), "CodeDirectory"},
	{uint32(MagicEmbeddedSignature), "EmbeddedSignature"},
	{uint32(MagicEmbeddedSignatureOld), "EmbeddedSignatureOld"},
	{uint32(MagicEmbeddedEntitlements), "EmbeddedEntitlements"},
	{uint32(MagicDetachedSignature), "DetachedSignature"},
	{uint32(MagicBlobWrapper), "BlobWrapper"},
}

// MagicFromU32 decodes a wire magic constant, preserving unrecognised values
// verbatim (Magic(v) round-trips through uint32(Magic(v)) == v regardless).
func MagicFromU32(v uint32) Magic {
	return Magic(v)
}

// ToU32 is the identity inverse of MagicFromU32.
func (m Magic) ToU32() uint32 {
	return uint32(m)
}

// IsUnknown reports whether m has no named variant.
func (m Magic) IsUnknown() bool {
	for _, k := range knownMagics {
		if k == m {
			return false
		}
	}
	return true
}

func (m Magic) String() string {
	return types.StringName(uint32(m), magicNames, false)
}
