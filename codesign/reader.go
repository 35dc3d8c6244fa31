package codesign

import (
	"encoding/binary"
	"unicode/utf8"
)

// reader is a bounds-checked cursor over a borrowed byte slice. Every method
// advances the cursor only on success; on failure the cursor position is
// left unspecified and the caller must abandon the decode. reader never
// panics: every read is checked against the remaining buffer length before
// any slicing or arithmetic happens.
type reader struct {
	data []byte
	pos  int64
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) remaining() int64 {
	return int64(len(r.data)) - r.pos
}

// bytes returns a bounded sub-slice [r.pos, r.pos+n) and advances the cursor.
func (r *reader) bytes(n int64) ([]byte, error) {
	if n < 0 || r.pos < 0 || r.pos+n > int64(len(r.data)) {
		return nil, errAt(Read, r.pos, "requested %d bytes, %d remaining", n, r.remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) u64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// sliceAt returns the bounded sub-slice [start, end) of data without
// touching the cursor. Used by decoders that address absolute offsets
// inside an already-framed blob rather than reading sequentially.
func sliceAt(data []byte, start, end int64) ([]byte, error) {
	if start < 0 || end < start || end > int64(len(data)) {
		return nil, errAt(BadOffset, start, "range [%d,%d) outside buffer of length %d", start, end, len(data))
	}
	return data[start:end], nil
}

// checkedSub computes a-b for non-negative operands, failing BadOffset on underflow.
func checkedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errKind(BadOffset, "underflow: %d - %d", a, b)
	}
	return a - b, nil
}

// checkedMul computes a*b, failing BadOffset on overflow.
func checkedMul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if p/a != b {
		return 0, errKind(BadOffset, "overflow: %d * %d", a, b)
	}
	return p, nil
}

// checkedAdd computes a+b, failing BadOffset on overflow.
func checkedAdd(a, b uint64) (uint64, error) {
	s := a + b
	if s < a {
		return 0, errKind(BadOffset, "overflow: %d + %d", a, b)
	}
	return s, nil
}

// cString returns the first NUL-terminated, UTF-8-validated substring of
// data starting at off. BadIdentifier if no terminator is found.
func cString(data []byte, off int64) (string, error) {
	if off < 0 || off > int64(len(data)) {
		return "", errAt(BadOffset, off, "identifier offset outside buffer of length %d", len(data))
	}
	tail := data[off:]
	nul := -1
	for i, b := range tail {
		if b == 0 {
			nul = i
			break
		}
	}
	if nul < 0 {
		return "", errAt(BadIdentifier, off, "no NUL terminator")
	}
	s := tail[:nul]
	if !utf8.Valid(s) {
		return "", errAt(InvalidUTF8, off, "identifier is not valid utf8")
	}
	return string(s), nil
}
