package codesign

import "github.com/appsworld/macho-codesign/types"

// Version thresholds gating the optional trailing fields of CodeDirectory,
// in the order they appear on the wire.
const (
	cdSupportsScatter     uint32 = 0x20100
	cdSupportsTeamID      uint32 = 0x20200
	cdSupportsCodeLimit64 uint32 = 0x20300
	cdSupportsExecSeg     uint32 = 0x20400
	cdSupportsRuntime     uint32 = 0x20500
	cdSupportsLinkage     uint32 = 0x20600
)

// CodeDirectory is the version-gated decode of a CodeDirectory blob. Fields
// below the version-threshold comment are nil/zero unless Version is at
// least that threshold; see the cdSupports* constants for exact cutoffs.
type CodeDirectory struct {
	Version       uint32
	Flags         uint32
	HashOffset    uint32
	IdentOffset   uint32
	NSpecialSlots uint32
	NCodeSlots    uint32
	CodeLimit     uint32
	HashSize      uint8
	HashType      HashType
	Platform      uint8
	PageSize      uint32 // materialised as 1 << wire exponent
	Spare2        uint32

	// >= 0x20100
	ScatterOffset *uint32
	// >= 0x20200
	TeamOffset *uint32
	// >= 0x20300
	Spare3      *uint32
	CodeLimit64 *uint64
	// >= 0x20400
	ExecSegBase  *uint64
	ExecSegLimit *uint64
	ExecSegFlags *uint64
	// >= 0x20500
	Runtime          *uint32
	PreEncryptOffset *uint32
	// >= 0x20600
	LinkageHashType  *uint8
	LinkageTruncated *uint8
	Spare4           *uint16
	LinkageOffset    *uint32
	LinkageSize      *uint32

	// Derived.
	Ident         string
	CodeHashes    [][]byte
	SpecialHashes map[Slot][]byte
}

// DecodeCodeDirectory decodes a CodeDirectory blob from its full,
// header-inclusive framed bytes (as produced by DispatchBlob/DecodeSuperBlob).
func DecodeCodeDirectory(data []byte) (*CodeDirectory, error) {
	body, err := readAndValidateBlobHeader(data, MagicCodeDirectory)
	if err != nil {
		return nil, err
	}
	r := newReader(body)

	cd := &CodeDirectory{}
	if cd.Version, err = r.u32(); err != nil {
		return nil, err
	}
	if cd.Flags, err = r.u32(); err != nil {
		return nil, err
	}
	if cd.HashOffset, err = r.u32(); err != nil {
		return nil, err
	}
	if cd.IdentOffset, err = r.u32(); err != nil {
		return nil, err
	}
	if cd.NSpecialSlots, err = r.u32(); err != nil {
		return nil, err
	}
	if cd.NCodeSlots, err = r.u32(); err != nil {
		return nil, err
	}
	if cd.CodeLimit, err = r.u32(); err != nil {
		return nil, err
	}
	if cd.HashSize, err = r.u8(); err != nil {
		return nil, err
	}
	rawHashType, err := r.u8()
	if err != nil {
		return nil, err
	}
	cd.HashType = HashType(rawHashType)
	if cd.Platform, err = r.u8(); err != nil {
		return nil, err
	}
	pageExp, err := r.u8()
	if err != nil {
		return nil, err
	}
	cd.PageSize = 1 << pageExp
	if cd.Spare2, err = r.u32(); err != nil {
		return nil, err
	}

	if cd.Version >= cdSupportsScatter {
		v, err := r.u32()
		if err != nil {
			return nil, err
		}
		cd.ScatterOffset = &v
	}
	if cd.Version >= cdSupportsTeamID {
		v, err := r.u32()
		if err != nil {
			return nil, err
		}
		cd.TeamOffset = &v
	}
	if cd.Version >= cdSupportsCodeLimit64 {
		s3, err := r.u32()
		if err != nil {
			return nil, err
		}
		cd.Spare3 = &s3
		cl64, err := r.u64()
		if err != nil {
			return nil, err
		}
		cd.CodeLimit64 = &cl64
	}
	if cd.Version >= cdSupportsExecSeg {
		base, err := r.u64()
		if err != nil {
			return nil, err
		}
		cd.ExecSegBase = &base
		limit, err := r.u64()
		if err != nil {
			return nil, err
		}
		cd.ExecSegLimit = &limit
		flags, err := r.u64()
		if err != nil {
			return nil, err
		}
		cd.ExecSegFlags = &flags
	}
	if cd.Version >= cdSupportsRuntime {
		rt, err := r.u32()
		if err != nil {
			return nil, err
		}
		cd.Runtime = &rt
		pre, err := r.u32()
		if err != nil {
			return nil, err
		}
		cd.PreEncryptOffset = &pre
	}
	if cd.Version >= cdSupportsLinkage {
		lht, err := r.u8()
		if err != nil {
			return nil, err
		}
		cd.LinkageHashType = &lht
		lt, err := r.u8()
		if err != nil {
			return nil, err
		}
		cd.LinkageTruncated = &lt
		sp4, err := r.u16()
		if err != nil {
			return nil, err
		}
		cd.Spare4 = &sp4
		loff, err := r.u32()
		if err != nil {
			return nil, err
		}
		cd.LinkageOffset = &loff
		lsize, err := r.u32()
		if err != nil {
			return nil, err
		}
		cd.LinkageSize = &lsize
	}

	// hash_offset and ident_offset are counted from the start of the blob
	// (the magic/length header included), not from the start of body.
	ident, err := cString(data, int64(cd.IdentOffset))
	if err != nil {
		return nil, err
	}
	cd.Ident = ident

	hashSize := uint64(cd.HashSize)
	hashOffset := uint64(cd.HashOffset)

	codeHashesLen, err := checkedMul(uint64(cd.NCodeSlots), hashSize)
	if err != nil {
		return nil, err
	}
	codeHashesEnd, err := checkedAdd(hashOffset, codeHashesLen)
	if err != nil {
		return nil, err
	}
	codeHashesRegion, err := sliceAt(data, int64(hashOffset), int64(codeHashesEnd))
	if err != nil {
		return nil, err
	}
	cd.CodeHashes = make([][]byte, cd.NCodeSlots)
	for i := uint32(0); i < cd.NCodeSlots; i++ {
		cd.CodeHashes[i] = codeHashesRegion[uint64(i)*hashSize : uint64(i+1)*hashSize]
	}

	specialLen, err := checkedMul(uint64(cd.NSpecialSlots), hashSize)
	if err != nil {
		return nil, err
	}
	specialStart, err := checkedSub(hashOffset, specialLen)
	if err != nil {
		return nil, err
	}
	specialRegion, err := sliceAt(data, int64(specialStart), int64(hashOffset))
	if err != nil {
		return nil, err
	}
	cd.SpecialHashes = make(map[Slot][]byte, cd.NSpecialSlots)
	for i := uint32(0); i < cd.NSpecialSlots; i++ {
		h := specialRegion[uint64(i)*hashSize : uint64(i+1)*hashSize]
		cd.SpecialHashes[SlotFromU32(i)] = h
	}

	return cd, nil
}

// RuntimeVersion returns the minimum hardened-runtime OS version recorded
// in Runtime (version >= 0x20500), packed the same way as other Mach-O
// 0xMMMMmmpp version fields. The second return value is false below that
// threshold, where Runtime is absent.
func (cd *CodeDirectory) RuntimeVersion() (types.Version, bool) {
	if cd.Runtime == nil {
		return 0, false
	}
	return types.Version(*cd.Runtime), true
}
