// Package codesign decodes Apple code-signing data embedded in Mach-O
// executables: the embedded-signature super-blob and its nested code
// directory, requirements, and entitlements blobs. It does not validate
// signatures, evaluate requirement expressions, or parse the CMS wrapper
// payload — those are external collaborators, described in the package's
// accessor contracts below.
package codesign

// EmbeddedSignature wraps a decoded super-blob with convenience accessors
// for the slots callers most often want.
type EmbeddedSignature struct {
	*SuperBlob
}

// Parse locates the code-signature window in view and decodes its
// super-blob. It returns (nil, nil) if the Mach-O file carries no
// code-signature load command.
func Parse(view MachOView) (*EmbeddedSignature, error) {
	window, err := LocateSignature(view)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, nil
	}
	sb, err := DecodeSuperBlob(window.SignatureData)
	if err != nil {
		return nil, err
	}
	return &EmbeddedSignature{SuperBlob: sb}, nil
}

// ParseSuperBlob decodes an embedded-signature super-blob directly from
// signature bytes, bypassing the Mach-O view entirely. Useful when the
// caller has already isolated the signature window itself.
func ParseSuperBlob(data []byte) (*EmbeddedSignature, error) {
	sb, err := DecodeSuperBlob(data)
	if err != nil {
		return nil, err
	}
	return &EmbeddedSignature{SuperBlob: sb}, nil
}

// FindSlot returns the first entry matching slot, or nil if none does.
func (e *EmbeddedSignature) FindSlot(slot Slot) *BlobEntry {
	for i := range e.Entries {
		if e.Entries[i].Slot == slot {
			return &e.Entries[i]
		}
	}
	return nil
}

// FindSlotParsed finds the first entry matching slot and dispatches its
// payload. It returns (nil, nil) if no entry matches.
func (e *EmbeddedSignature) FindSlotParsed(slot Slot) (*BlobPayload, error) {
	entry := e.FindSlot(slot)
	if entry == nil {
		return nil, nil
	}
	return DispatchBlob(entry.Payload)
}

// CodeDirectory returns the parsed CodeDirectory at the CodeDirectory slot,
// or (nil, nil) if that slot is absent. BadMagic if the slot holds a
// different payload kind.
func (e *EmbeddedSignature) CodeDirectory() (*CodeDirectory, error) {
	payload, err := e.FindSlotParsed(Slot{known: SlotCodeDirectory})
	if err != nil || payload == nil {
		return nil, err
	}
	if payload.Kind != PayloadCodeDirectory {
		return nil, errKind(BadMagic, "CodeDirectory slot holds %v, not a code directory", payload.Kind)
	}
	return payload.Directory, nil
}

// Requirements returns the parsed Requirements container at the
// Requirements slot, or (nil, nil) if that slot is absent.
func (e *EmbeddedSignature) Requirements() (*Requirements, error) {
	payload, err := e.FindSlotParsed(Slot{known: SlotRequirements})
	if err != nil || payload == nil {
		return nil, err
	}
	if payload.Kind != PayloadRequirements {
		return nil, errKind(BadMagic, "Requirements slot holds %v, not a requirements container", payload.Kind)
	}
	return payload.Requirements, nil
}

// SignatureData returns the raw CMS bytes from the Signature slot's
// BlobWrapper payload (the 8-byte wrapper header stripped). Its expected
// top-level ASN.1 object is pkcs7-signedData (OID 1.2.840.113549.1.7.2);
// this package neither parses nor validates it.
func (e *EmbeddedSignature) SignatureData() ([]byte, error) {
	payload, err := e.FindSlotParsed(Slot{known: SlotSignature})
	if err != nil || payload == nil {
		return nil, err
	}
	if payload.Kind != PayloadBlobWrapper {
		return nil, errKind(BadMagic, "Signature slot holds %v, not a blob wrapper", payload.Kind)
	}
	return payload.Raw, nil
}
