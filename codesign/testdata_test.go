package codesign

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// putU32 appends a big-endian u32 to buf.
func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// blob builds a header-inclusive blob: {magic, length}, then body. length
// is computed automatically as 8+len(body).
func blob(magic uint32, body []byte) []byte {
	buf := new(bytes.Buffer)
	putU32(buf, magic)
	putU32(buf, uint32(8+len(body)))
	buf.Write(body)
	return buf.Bytes()
}

// superBlob assembles an embedded-signature super-blob from (slotType, blob)
// pairs, computing the index table and payload offsets itself.
func superBlob(entries ...struct {
	Slot uint32
	Blob []byte
}) []byte {
	headerLen := 12
	indexLen := len(entries) * 8
	offset := uint32(headerLen + indexLen)

	index := new(bytes.Buffer)
	payload := new(bytes.Buffer)
	for _, e := range entries {
		putU32(index, e.Slot)
		putU32(index, offset)
		payload.Write(e.Blob)
		offset += uint32(len(e.Blob))
	}

	total := uint32(headerLen) + uint32(index.Len()) + uint32(payload.Len())

	buf := new(bytes.Buffer)
	putU32(buf, uint32(MagicEmbeddedSignature))
	putU32(buf, total)
	putU32(buf, uint32(len(entries)))
	buf.Write(index.Bytes())
	buf.Write(payload.Bytes())
	return buf.Bytes()
}

func sbEntry(slot uint32, b []byte) struct {
	Slot uint32
	Blob []byte
} {
	return struct {
		Slot uint32
		Blob []byte
	}{Slot: slot, Blob: b}
}

// codeDirectoryBlob constructs a header-inclusive CodeDirectory blob at the
// given version, writing exactly the fields that version gates in, with
// nCode code hashes and nSpecial special hashes of hashSize bytes each and
// the C string ident at the first available offset after the fixed header.
func codeDirectoryBlob(t *testing.T, version uint32, nCode, nSpecial uint32, hashSize uint8, ident string) []byte {
	t.Helper()

	fixed := new(bytes.Buffer)
	putU32(fixed, version)
	putU32(fixed, 0) // flags
	hashOffsetPos := fixed.Len()
	putU32(fixed, 0) // hash_offset, patched below
	identOffsetPos := fixed.Len()
	putU32(fixed, 0) // ident_offset, patched below
	putU32(fixed, nSpecial)
	putU32(fixed, nCode)
	putU32(fixed, 0) // code_limit
	fixed.WriteByte(hashSize)
	fixed.WriteByte(byte(HashSHA256))
	fixed.WriteByte(0) // platform
	fixed.WriteByte(0) // page_size exponent
	putU32(fixed, 0)   // spare2

	if version >= cdSupportsScatter {
		putU32(fixed, 0)
	}
	if version >= cdSupportsTeamID {
		putU32(fixed, 0)
	}
	if version >= cdSupportsCodeLimit64 {
		putU32(fixed, 0)
		var b [8]byte
		fixed.Write(b[:])
	}
	if version >= cdSupportsExecSeg {
		var b [8]byte
		fixed.Write(b[:]) // base
		fixed.Write(b[:]) // limit
		fixed.Write(b[:]) // flags
	}
	if version >= cdSupportsRuntime {
		putU32(fixed, 0)
		putU32(fixed, 0)
	}
	if version >= cdSupportsLinkage {
		fixed.WriteByte(0)
		fixed.WriteByte(0)
		var b [2]byte
		fixed.Write(b[:])
		putU32(fixed, 0)
		putU32(fixed, 0)
	}

	identOffset := uint32(8 + fixed.Len())
	identBytes := append([]byte(ident), 0)
	specialLen := nSpecial * uint32(hashSize)
	hashOffset := identOffset + uint32(len(identBytes)) + specialLen

	fixedBytes := fixed.Bytes()
	binary.BigEndian.PutUint32(fixedBytes[hashOffsetPos:], hashOffset)
	binary.BigEndian.PutUint32(fixedBytes[identOffsetPos:], identOffset)

	body := new(bytes.Buffer)
	body.Write(fixedBytes)
	body.Write(identBytes)
	for i := uint32(0); i < nSpecial; i++ {
		b := make([]byte, hashSize)
		b[0] = byte(i + 1)
		body.Write(b)
	}
	for i := uint32(0); i < nCode; i++ {
		b := make([]byte, hashSize)
		b[0] = byte(0x80 + i)
		body.Write(b)
	}

	return blob(uint32(MagicCodeDirectory), body.Bytes())
}

func minimalCodeDirectoryBlob(t *testing.T) []byte {
	t.Helper()
	return codeDirectoryBlob(t, 0x20000, 1, 0, 32, "com.example.minimal")
}
