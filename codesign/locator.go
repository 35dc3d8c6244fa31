package codesign

// linkeditName is the conventional Mach-O segment name holding symbol and
// signature data.
const linkeditName = "__LINKEDIT"

// CodeSignatureCommand is the subset of an LC_CODE_SIGNATURE load command
// this package needs: the offset and size of the signature data, both
// relative to the start of the file.
type CodeSignatureCommand struct {
	DataOff  uint32
	DataSize uint32
}

// Segment is the subset of a Mach-O segment this package needs: its name,
// file offset, and borrowed backing bytes.
type Segment struct {
	Name    string
	FileOff uint64
	Data    []byte
}

// MachOView is the pre-parsed Mach-O container this package consumes. The
// container walker that produces it (load command and segment enumeration)
// is an external collaborator; this package only locates and frames the
// signature bytes it references.
type MachOView interface {
	// CodeSignature returns the file's LC_CODE_SIGNATURE command, if any.
	CodeSignature() (CodeSignatureCommand, bool)
	// Segments returns every segment in the file, in load-command order.
	Segments() []Segment
}

// SignatureWindow is the bounded slice of __LINKEDIT containing a
// super-blob, along with enough surrounding context to describe where it
// came from. It borrows from the Mach-O buffer that produced the view.
type SignatureWindow struct {
	LinkeditSegmentIndex int
	SegmentCount         int
	StartOffset          int64
	EndOffset            int64
	LinkeditData         []byte
	SignatureData        []byte
}

// LocateSignature walks view's load commands for a code-signature command.
// If present, it locates the __LINKEDIT segment by name and computes the
// signature window as [dataoff-linkedit.fileoff, +datasize) inside that
// segment's data. It returns (nil, nil) if no code-signature load command
// is present, and MissingLinkedit if the command exists but no __LINKEDIT
// segment does. Subtraction is checked: underflow maps to BadOffset.
func LocateSignature(view MachOView) (*SignatureWindow, error) {
	cmd, ok := view.CodeSignature()
	if !ok {
		return nil, nil
	}

	segments := view.Segments()
	linkeditIndex := -1
	for i, seg := range segments {
		if seg.Name == linkeditName {
			linkeditIndex = i
			break
		}
	}
	if linkeditIndex < 0 {
		return nil, errKind(MissingLinkedit, "code-signature load command present, no %s segment", linkeditName)
	}
	linkedit := segments[linkeditIndex]

	start, err := checkedSub(uint64(cmd.DataOff), linkedit.FileOff)
	if err != nil {
		return nil, err
	}
	end, err := checkedAdd(start, uint64(cmd.DataSize))
	if err != nil {
		return nil, err
	}

	sig, err := sliceAt(linkedit.Data, int64(start), int64(end))
	if err != nil {
		return nil, err
	}

	return &SignatureWindow{
		LinkeditSegmentIndex: linkeditIndex,
		SegmentCount:         len(segments),
		StartOffset:          int64(start),
		EndOffset:            int64(end),
		LinkeditData:         linkedit.Data,
		SignatureData:        sig,
	}, nil
}
