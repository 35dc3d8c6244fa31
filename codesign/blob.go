package codesign

import "sort"

// blobHeaderSize is the length of the common {magic, length} prefix every
// blob begins with.
const blobHeaderSize = 8

// readBlobHeader parses the common {magic, length} prefix from data, which
// must have length >= blobHeaderSize. It returns the decoded magic, the
// advertised (header-inclusive) length, and the slice following the header.
func readBlobHeader(data []byte) (Magic, uint32, []byte, error) {
	if len(data) < blobHeaderSize {
		return 0, 0, nil, errAt(Read, 0, "blob header needs %d bytes, got %d", blobHeaderSize, len(data))
	}
	r := newReader(data)
	magic, err := r.u32()
	if err != nil {
		return 0, 0, nil, err
	}
	length, err := r.u32()
	if err != nil {
		return 0, 0, nil, err
	}
	return MagicFromU32(magic), length, data[blobHeaderSize:], nil
}

// readAndValidateBlobHeader is readBlobHeader plus a magic check.
func readAndValidateBlobHeader(data []byte, expected Magic) ([]byte, error) {
	magic, _, rest, err := readBlobHeader(data)
	if err != nil {
		return nil, err
	}
	if magic != expected {
		return nil, errAt(BadMagic, 0, "expected magic %s, got %s", expected, magic)
	}
	return rest, nil
}

// BlobIndexEntry is one fixed 8-byte record from a super-blob's index table.
type BlobIndexEntry struct {
	SlotType Slot
	Offset   uint32
}

// BlobEntry is a lazily-typed blob referenced from a super-blob's index:
// its position, decoded slot, absolute offset, decoded magic, the framed
// length read from the blob's own header, and the payload slice
// [offset, offset+length), header included.
type BlobEntry struct {
	Index   int
	Slot    Slot
	Offset  uint32
	Magic   Magic
	Length  uint32
	Payload []byte
}

// SuperBlob is the decoded embedded-signature container: a magic/length/
// count header followed by an index table, with each index entry resolved
// to a framed BlobEntry. SuperBlob borrows its Payload bytes from the
// buffer passed to DecodeSuperBlob.
type SuperBlob struct {
	Magic   Magic
	Length  uint32
	Count   uint32
	Entries []BlobEntry
	Payload []byte
}

// DecodeSuperBlob decodes the embedded-signature super-blob starting at the
// head of data: an 8-byte header (magic must be EmbeddedSignature),
// followed by count BlobIndexEntry records, followed by the blobs they
// reference. End-offsets are computed by sorting a copy of the index by
// offset, so unordered indices still slice correctly; BlobEntry.Index
// preserves the entry's original position in the index table.
func DecodeSuperBlob(data []byte) (*SuperBlob, error) {
	r := newReader(data)

	magicRaw, err := r.u32()
	if err != nil {
		return nil, err
	}
	magic := MagicFromU32(magicRaw)
	if magic != MagicEmbeddedSignature {
		return nil, errAt(BadMagic, 0, "expected embedded-signature magic, got %s", magic)
	}
	length, err := r.u32()
	if err != nil {
		return nil, err
	}
	if int64(length) > int64(len(data)) {
		return nil, errAt(BadOffset, 8, "super-blob length %d exceeds buffer length %d", length, len(data))
	}
	// Bound every subsequent read and slice to the super-blob's own
	// advertised length, not the caller's possibly-larger buffer: a
	// crafted super-blob must not be able to address bytes past its own
	// declared extent (spec invariant: Length <= len(data) and every
	// BlobEntry stays within it).
	data = data[:length]
	r.data = data

	count, err := r.u32()
	if err != nil {
		return nil, err
	}

	type indexed struct {
		BlobIndexEntry
		origIndex int
	}
	indices := make([]indexed, 0, count)
	for i := uint32(0); i < count; i++ {
		slotRaw, err := r.u32()
		if err != nil {
			return nil, err
		}
		off, err := r.u32()
		if err != nil {
			return nil, err
		}
		indices = append(indices, indexed{
			BlobIndexEntry: BlobIndexEntry{SlotType: SlotFromU32(slotRaw), Offset: off},
			origIndex:      int(i),
		})
	}

	sorted := make([]indexed, len(indices))
	copy(sorted, indices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	end := make(map[int]int64, len(sorted))
	for i, ix := range sorted {
		var e int64
		if i+1 < len(sorted) {
			e = int64(sorted[i+1].Offset)
		} else {
			e = int64(len(data))
		}
		end[ix.origIndex] = e
	}

	entries := make([]BlobEntry, 0, len(indices))
	for _, ix := range indices {
		start := int64(ix.Offset)
		framed, err := sliceAt(data, start, end[ix.origIndex])
		if err != nil {
			return nil, err
		}
		blobMagic, blobLength, _, err := readBlobHeader(framed)
		if err != nil {
			return nil, err
		}
		// The header length is trusted for the payload, but the index-derived
		// span bounds it: a blob may not claim bytes past the next entry.
		if start+int64(blobLength) > end[ix.origIndex] {
			return nil, errAt(BadOffset, start, "blob length %d exceeds its index-derived span [%d,%d)", blobLength, start, end[ix.origIndex])
		}
		payload, err := sliceAt(data, start, start+int64(blobLength))
		if err != nil {
			return nil, err
		}
		entries = append(entries, BlobEntry{
			Index:   ix.origIndex,
			Slot:    ix.SlotType,
			Offset:  ix.Offset,
			Magic:   blobMagic,
			Length:  blobLength,
			Payload: payload,
		})
	}

	return &SuperBlob{
		Magic:   magic,
		Length:  length,
		Count:   count,
		Entries: entries,
		Payload: data,
	}, nil
}
