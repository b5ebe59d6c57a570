package unclip

import (
	"encoding/binary"
	"math"

	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

// A TagValue is the value of one BAM auxiliary field, decoded together
// with its original type code. Every concrete encoding the BAM format
// permits has its own variant, so a value re-encodes with exactly the
// type code and byte width it arrived with. Integer widths are never
// collapsed: a 'C' (uint8) field stays uint8 on output, and a B:c array
// is distinct from a B:C array even though both store one byte per
// element.
type TagValue interface {
	// typeCode returns the BAM aux type character.
	typeCode() byte
	// appendPayload appends the value's wire bytes, excluding the tag id
	// and type character, to buf.
	appendPayload(buf []byte) []byte
}

// Scalar variants.
type (
	// Char is a printable character field ('A').
	Char byte
	// Int8 is a signed 8-bit integer field ('c').
	Int8 int8
	// Uint8 is an unsigned 8-bit integer field ('C').
	Uint8 uint8
	// Int16 is a signed 16-bit integer field ('s').
	Int16 int16
	// Uint16 is an unsigned 16-bit integer field ('S').
	Uint16 uint16
	// Int32 is a signed 32-bit integer field ('i').
	Int32 int32
	// Uint32 is an unsigned 32-bit integer field ('I').
	Uint32 uint32
	// Float is a 32-bit float field ('f').
	Float float32
	// Text is a printable string field ('Z'). The bytes are kept raw and
	// are not required to be valid UTF-8.
	Text []byte
	// Hex is a hex string field ('H'), kept raw like Text.
	Hex []byte
)

// Array variants ('B' with a per-element subtype).
type (
	// Int8s is a B:c array.
	Int8s []int8
	// Uint8s is a B:C array.
	Uint8s []uint8
	// Int16s is a B:s array.
	Int16s []int16
	// Uint16s is a B:S array.
	Uint16s []uint16
	// Int32s is a B:i array.
	Int32s []int32
	// Uint32s is a B:I array.
	Uint32s []uint32
	// Floats is a B:f array.
	Floats []float32
)

func (v Char) typeCode() byte  { return 'A' }
func (v Int8) typeCode() byte  { return 'c' }
func (v Uint8) typeCode() byte { return 'C' }

func (v Int16) typeCode() byte  { return 's' }
func (v Uint16) typeCode() byte { return 'S' }
func (v Int32) typeCode() byte  { return 'i' }
func (v Uint32) typeCode() byte { return 'I' }
func (v Float) typeCode() byte  { return 'f' }
func (v Text) typeCode() byte   { return 'Z' }
func (v Hex) typeCode() byte    { return 'H' }

func (v Int8s) typeCode() byte   { return 'B' }
func (v Uint8s) typeCode() byte  { return 'B' }
func (v Int16s) typeCode() byte  { return 'B' }
func (v Uint16s) typeCode() byte { return 'B' }
func (v Int32s) typeCode() byte  { return 'B' }
func (v Uint32s) typeCode() byte { return 'B' }
func (v Floats) typeCode() byte  { return 'B' }

func (v Char) appendPayload(buf []byte) []byte  { return append(buf, byte(v)) }
func (v Int8) appendPayload(buf []byte) []byte  { return append(buf, byte(v)) }
func (v Uint8) appendPayload(buf []byte) []byte { return append(buf, byte(v)) }

func (v Int16) appendPayload(buf []byte) []byte  { return appendUint16(buf, uint16(v)) }
func (v Uint16) appendPayload(buf []byte) []byte { return appendUint16(buf, uint16(v)) }
func (v Int32) appendPayload(buf []byte) []byte  { return appendUint32(buf, uint32(v)) }
func (v Uint32) appendPayload(buf []byte) []byte { return appendUint32(buf, uint32(v)) }
func (v Float) appendPayload(buf []byte) []byte  { return appendUint32(buf, math.Float32bits(float32(v))) }

// The BAM writer appends the NUL terminator for Z and H fields itself,
// so in-memory payloads exclude it.
func (v Text) appendPayload(buf []byte) []byte { return append(buf, v...) }
func (v Hex) appendPayload(buf []byte) []byte  { return append(buf, v...) }

func (v Int8s) appendPayload(buf []byte) []byte {
	buf = appendArrayHeader(buf, 'c', len(v))
	for _, e := range v {
		buf = append(buf, byte(e))
	}
	return buf
}

func (v Uint8s) appendPayload(buf []byte) []byte {
	buf = appendArrayHeader(buf, 'C', len(v))
	return append(buf, v...)
}

func (v Int16s) appendPayload(buf []byte) []byte {
	buf = appendArrayHeader(buf, 's', len(v))
	for _, e := range v {
		buf = appendUint16(buf, uint16(e))
	}
	return buf
}

func (v Uint16s) appendPayload(buf []byte) []byte {
	buf = appendArrayHeader(buf, 'S', len(v))
	for _, e := range v {
		buf = appendUint16(buf, e)
	}
	return buf
}

func (v Int32s) appendPayload(buf []byte) []byte {
	buf = appendArrayHeader(buf, 'i', len(v))
	for _, e := range v {
		buf = appendUint32(buf, uint32(e))
	}
	return buf
}

func (v Uint32s) appendPayload(buf []byte) []byte {
	buf = appendArrayHeader(buf, 'I', len(v))
	for _, e := range v {
		buf = appendUint32(buf, e)
	}
	return buf
}

func (v Floats) appendPayload(buf []byte) []byte {
	buf = appendArrayHeader(buf, 'f', len(v))
	for _, e := range v {
		buf = appendUint32(buf, math.Float32bits(e))
	}
	return buf
}

func appendUint16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

// An array payload is subtype byte, little-endian uint32 element count,
// then the packed elements.
func appendArrayHeader(buf []byte, subtype byte, n int) []byte {
	buf = append(buf, subtype)
	return appendUint32(buf, uint32(n))
}

// encodeAux re-encodes value under tag. The result is byte-identical to
// the raw field the value was decoded from, including its type code and
// element widths.
func encodeAux(tag sam.Tag, value TagValue) sam.Aux {
	buf := make([]byte, 0, 16)
	buf = append(buf, tag[0], tag[1], value.typeCode())
	return sam.Aux(value.appendPayload(buf))
}

var scalarSizes = map[byte]int{
	'A': 1, 'c': 1, 'C': 1,
	's': 2, 'S': 2,
	'i': 4, 'I': 4, 'f': 4,
}

// decodeAux decodes one raw auxiliary field into its TagValue variant.
// It fails only for type codes outside the BAM set and for payloads
// whose length does not match their declared type.
func decodeAux(a sam.Aux) (TagValue, error) {
	if len(a) < 3 {
		return nil, errors.Errorf("truncated aux field % x", []byte(a))
	}
	t := a.Type()
	payload := []byte(a[3:])
	if size, ok := scalarSizes[t]; ok && len(payload) != size {
		return nil, errors.Errorf("%v: aux type %q wants %d value bytes, have %d", a.Tag(), t, size, len(payload))
	}
	switch t {
	case 'A':
		return Char(payload[0]), nil
	case 'c':
		return Int8(payload[0]), nil
	case 'C':
		return Uint8(payload[0]), nil
	case 's':
		return Int16(binary.LittleEndian.Uint16(payload)), nil
	case 'S':
		return Uint16(binary.LittleEndian.Uint16(payload)), nil
	case 'i':
		return Int32(binary.LittleEndian.Uint32(payload)), nil
	case 'I':
		return Uint32(binary.LittleEndian.Uint32(payload)), nil
	case 'f':
		return Float(math.Float32frombits(binary.LittleEndian.Uint32(payload))), nil
	case 'Z':
		return Text(append([]byte(nil), payload...)), nil
	case 'H':
		return Hex(append([]byte(nil), payload...)), nil
	case 'B':
		return decodeAuxArray(a.Tag(), payload)
	}
	return nil, errors.Errorf("%v: unsupported aux type %q", a.Tag(), t)
}

var arrayElemSizes = map[byte]int{
	'c': 1, 'C': 1,
	's': 2, 'S': 2,
	'i': 4, 'I': 4, 'f': 4,
}

func decodeAuxArray(tag sam.Tag, payload []byte) (TagValue, error) {
	if len(payload) < 5 {
		return nil, errors.Errorf("%v: truncated aux array header", tag)
	}
	subtype := payload[0]
	size, ok := arrayElemSizes[subtype]
	if !ok {
		return nil, errors.Errorf("%v: unsupported aux array subtype %q", tag, subtype)
	}
	n := int(binary.LittleEndian.Uint32(payload[1:5]))
	elems := payload[5:]
	if len(elems) != n*size {
		return nil, errors.Errorf("%v: aux array B:%c declares %d elements, have %d value bytes", tag, subtype, n, len(elems))
	}
	switch subtype {
	case 'c':
		out := make(Int8s, n)
		for i := range out {
			out[i] = int8(elems[i])
		}
		return out, nil
	case 'C':
		return Uint8s(append([]uint8(nil), elems...)), nil
	case 's':
		out := make(Int16s, n)
		for i := range out {
			out[i] = int16(binary.LittleEndian.Uint16(elems[2*i:]))
		}
		return out, nil
	case 'S':
		out := make(Uint16s, n)
		for i := range out {
			out[i] = binary.LittleEndian.Uint16(elems[2*i:])
		}
		return out, nil
	case 'i':
		out := make(Int32s, n)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(elems[4*i:]))
		}
		return out, nil
	case 'I':
		out := make(Uint32s, n)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(elems[4*i:])
		}
		return out, nil
	default: // 'f'
		out := make(Floats, n)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(elems[4*i:]))
		}
		return out, nil
	}
}
