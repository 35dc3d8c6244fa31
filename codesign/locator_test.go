package codesign

import "testing"

type fakeView struct {
	cmd      CodeSignatureCommand
	hasCmd   bool
	segments []Segment
}

func (f fakeView) CodeSignature() (CodeSignatureCommand, bool) { return f.cmd, f.hasCmd }
func (f fakeView) Segments() []Segment                          { return f.segments }

func TestLocateSignature_NoCommand(t *testing.T) {
	view := fakeView{hasCmd: false}
	window, err := LocateSignature(view)
	if err != nil {
		t.Fatalf("LocateSignature: %v", err)
	}
	if window != nil {
		t.Fatalf("window = %+v, want nil", window)
	}
}

func TestLocateSignature_MissingLinkedit(t *testing.T) {
	view := fakeView{
		hasCmd: true,
		cmd:    CodeSignatureCommand{DataOff: 100, DataSize: 10},
		segments: []Segment{
			{Name: "__TEXT", FileOff: 0, Data: make([]byte, 200)},
		},
	}
	_, err := LocateSignature(view)
	if !Is(err, MissingLinkedit) {
		t.Fatalf("err = %v, want MissingLinkedit", err)
	}
}

func TestLocateSignature_Found(t *testing.T) {
	linkeditData := make([]byte, 50)
	sig := superBlob(sbEntry(slotWireEntitlements, blob(uint32(MagicEmbeddedEntitlements), nil)))
	copy(linkeditData[20:], sig)

	view := fakeView{
		hasCmd: true,
		cmd:    CodeSignatureCommand{DataOff: 1020, DataSize: uint32(len(sig))},
		segments: []Segment{
			{Name: "__TEXT", FileOff: 0, Data: make([]byte, 100)},
			{Name: "__LINKEDIT", FileOff: 1000, Data: linkeditData},
		},
	}

	window, err := LocateSignature(view)
	if err != nil {
		t.Fatalf("LocateSignature: %v", err)
	}
	if window.LinkeditSegmentIndex != 1 {
		t.Errorf("LinkeditSegmentIndex = %d, want 1", window.LinkeditSegmentIndex)
	}
	if window.StartOffset != 20 {
		t.Errorf("StartOffset = %d, want 20", window.StartOffset)
	}
	if string(window.SignatureData) != string(sig) {
		t.Errorf("SignatureData mismatch")
	}
}

func TestLocateSignature_DataOffUnderflowsLinkeditFileOff(t *testing.T) {
	view := fakeView{
		hasCmd: true,
		cmd:    CodeSignatureCommand{DataOff: 10, DataSize: 5},
		segments: []Segment{
			{Name: "__LINKEDIT", FileOff: 1000, Data: make([]byte, 50)},
		},
	}
	_, err := LocateSignature(view)
	if !Is(err, BadOffset) {
		t.Fatalf("err = %v, want BadOffset", err)
	}
}
