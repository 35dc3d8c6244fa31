package codesign

import "fmt"

// PayloadKind tags which field of a BlobPayload is populated.
type PayloadKind int

const (
	PayloadRequirement PayloadKind = iota
	PayloadRequirements
	PayloadCodeDirectory
	PayloadEmbeddedSignature
	PayloadEmbeddedSignatureOld
	PayloadEmbeddedEntitlements
	PayloadDetachedSignature
	PayloadBlobWrapper
	PayloadOther
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadRequirement:
		return "Requirement"
	case PayloadRequirements:
		return "Requirements"
	case PayloadCodeDirectory:
		return "CodeDirectory"
	case PayloadEmbeddedSignature:
		return "EmbeddedSignature"
	case PayloadEmbeddedSignatureOld:
		return "EmbeddedSignatureOld"
	case PayloadEmbeddedEntitlements:
		return "EmbeddedEntitlements"
	case PayloadDetachedSignature:
		return "DetachedSignature"
	case PayloadBlobWrapper:
		return "BlobWrapper"
	case PayloadOther:
		return "Other"
	default:
		return fmt.Sprintf("PayloadKind(%d)", int(k))
	}
}

// BlobPayload is the dispatched, typed form of a BlobEntry's payload bytes.
type BlobPayload struct {
	Kind PayloadKind

	Requirement  *Requirement
	Requirements *Requirements
	Directory    *CodeDirectory
	SuperBlob    *SuperBlob

	// Raw carries the blob's body (header stripped) for payload kinds this
	// package stores opaquely: entitlements plist text, a detached
	// signature's nested super-blob bytes, or a CMS/blob-wrapper body.
	Raw []byte

	// Other carries the full, magic-tagged bytes for an unrecognised magic.
	OtherMagic  Magic
	OtherLength uint32
	Other       []byte
}

// DispatchBlob routes a payload slice (header-inclusive) by its leading
// magic to the matching specific parser. The payload is truncated to its
// own advertised length before being handed to the sub-parser — this bounds
// every downstream decoder to exactly the bytes the blob claims to own,
// regardless of how much trailing data the caller's slice contains.
func DispatchBlob(payload []byte) (*BlobPayload, error) {
	magic, length, _, err := readBlobHeader(payload)
	if err != nil {
		return nil, err
	}
	framed, err := sliceAt(payload, 0, int64(length))
	if err != nil {
		return nil, err
	}
	if len(framed) < blobHeaderSize {
		return nil, errAt(Read, 0, "blob advertises length %d, shorter than its own header", length)
	}

	switch magic {
	case MagicRequirement:
		req, err := DecodeRequirementBlob(framed)
		if err != nil {
			return nil, err
		}
		return &BlobPayload{Kind: PayloadRequirement, Requirement: req}, nil
	case MagicRequirements:
		reqs, err := DecodeRequirements(framed)
		if err != nil {
			return nil, err
		}
		return &BlobPayload{Kind: PayloadRequirements, Requirements: reqs}, nil
	case MagicCodeDirectory:
		cd, err := DecodeCodeDirectory(framed)
		if err != nil {
			return nil, err
		}
		return &BlobPayload{Kind: PayloadCodeDirectory, Directory: cd}, nil
	case MagicEmbeddedSignature:
		sb, err := DecodeSuperBlob(framed)
		if err != nil {
			return nil, err
		}
		return &BlobPayload{Kind: PayloadEmbeddedSignature, SuperBlob: sb}, nil
	case MagicEmbeddedEntitlements:
		return &BlobPayload{Kind: PayloadEmbeddedEntitlements, Raw: framed[blobHeaderSize:]}, nil
	case MagicEmbeddedSignatureOld:
		return &BlobPayload{Kind: PayloadEmbeddedSignatureOld, Raw: framed[blobHeaderSize:]}, nil
	case MagicDetachedSignature:
		return &BlobPayload{Kind: PayloadDetachedSignature, Raw: framed[blobHeaderSize:]}, nil
	case MagicBlobWrapper:
		return &BlobPayload{Kind: PayloadBlobWrapper, Raw: framed[blobHeaderSize:]}, nil
	default:
		return &BlobPayload{
			Kind:        PayloadOther,
			OtherMagic:  magic,
			OtherLength: length,
			Other:       framed,
		}, nil
	}
}
