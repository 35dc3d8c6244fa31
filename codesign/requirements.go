package codesign

// RequirementsEntry is one entry of a Requirements container: the type tag
// from the container's own index (semantics relative to the nested blob's
// magic are not cross-validated, only preserved) and the dispatched payload
// of the nested Requirement blob at that entry's offset.
type RequirementsEntry struct {
	Type    uint32
	Offset  uint32
	Payload *BlobPayload
}

// Requirements is the decoded form of a Requirements container blob: a
// typed-offset table of nested Requirement blobs.
type Requirements struct {
	Entries []RequirementsEntry
}

// DecodeRequirements decodes a Requirements container blob from its full,
// header-inclusive framed bytes.
func DecodeRequirements(data []byte) (*Requirements, error) {
	body, err := readAndValidateBlobHeader(data, MagicRequirements)
	if err != nil {
		return nil, err
	}
	r := newReader(body)
	count, err := r.u32()
	if err != nil {
		return nil, err
	}

	type pair struct{ typ, offset uint32 }
	pairs := make([]pair, 0, count)
	for i := uint32(0); i < count; i++ {
		typ, err := r.u32()
		if err != nil {
			return nil, err
		}
		off, err := r.u32()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{typ, off})
	}

	entries := make([]RequirementsEntry, 0, count)
	for i, p := range pairs {
		end := int64(len(data))
		if i+1 < len(pairs) {
			end = int64(pairs[i+1].offset)
		}
		sub, err := sliceAt(data, int64(p.offset), end)
		if err != nil {
			return nil, err
		}
		payload, err := DispatchBlob(sub)
		if err != nil {
			return nil, err
		}
		entries = append(entries, RequirementsEntry{Type: p.typ, Offset: p.offset, Payload: payload})
	}

	return &Requirements{Entries: entries}, nil
}
