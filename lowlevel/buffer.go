package lowlevel

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/wippyai/wasm-lowlevel/errors"
)

const defaultCapacity = 1024

const uint24Max = 1<<24 - 1

// Buffer is an append-only byte sequence with positional reads.
// Bytes below Size() never change once written.
type Buffer struct {
	data []byte
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithCapacity preallocates room for n bytes.
func WithCapacity(n int) Option {
	return func(b *Buffer) {
		if n > cap(b.data) {
			b.data = make([]byte, 0, n)
		}
	}
}

// NewBuffer creates an empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{}
	for _, opt := range opts {
		opt(b)
	}
	if b.data == nil {
		b.data = make([]byte, 0, defaultCapacity)
	}
	return b
}

// FromBytes creates a buffer holding a copy of data, ready for reading.
func FromBytes(data []byte) *Buffer {
	b := NewBuffer(WithCapacity(len(data)))
	b.data = append(b.data, data...)
	return b
}

// Size returns the number of bytes written.
func (b *Buffer) Size() int {
	return len(b.data)
}

// Bytes returns a copy of the written bytes.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Dump renders the buffer in hexdump -C format.
func (b *Buffer) Dump() string {
	return hex.Dump(b.data)
}

// Uint8 appends one raw byte.
func (b *Buffer) Uint8(v byte) {
	b.data = append(b.data, v)
}

// Uint16 appends v as 2 little-endian bytes.
func (b *Buffer) Uint16(v uint16) {
	b.data = binary.LittleEndian.AppendUint16(b.data, v)
}

// Uint24 appends v as 3 little-endian bytes.
func (b *Buffer) Uint24(v uint32) error {
	if v > uint24Max {
		return failEncode(errors.Domain("uint24", int64(v), 0, uint24Max))
	}
	b.data = append(b.data, byte(v), byte(v>>8), byte(v>>16))
	return nil
}

// Uint32 appends v as 4 little-endian bytes.
func (b *Buffer) Uint32(v uint32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, v)
}

// Float32 appends the IEEE-754 bits of v, little-endian.
func (b *Buffer) Float32(v float32) {
	b.Uint32(math.Float32bits(v))
}

// Float64 appends the IEEE-754 bits of v, little-endian.
func (b *Buffer) Float64(v float64) {
	b.data = binary.LittleEndian.AppendUint64(b.data, math.Float64bits(v))
}

// Raw appends p unchanged.
func (b *Buffer) Raw(p []byte) {
	b.data = append(b.data, p...)
}

// GetUint8 returns the byte at offset at.
func (b *Buffer) GetUint8(at int) (byte, error) {
	if err := b.check("uint8", at, 1); err != nil {
		return 0, err
	}
	return b.data[at], nil
}

// GetUint16 reads a little-endian uint16 at offset at.
func (b *Buffer) GetUint16(at int) (uint16, error) {
	if err := b.check("uint16", at, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b.data[at:]), nil
}

// GetUint24 reads a little-endian 24-bit value at offset at.
func (b *Buffer) GetUint24(at int) (uint32, error) {
	if err := b.check("uint24", at, 3); err != nil {
		return 0, err
	}
	return uint32(b.data[at]) | uint32(b.data[at+1])<<8 | uint32(b.data[at+2])<<16, nil
}

// GetUint32 reads a little-endian uint32 at offset at.
func (b *Buffer) GetUint32(at int) (uint32, error) {
	if err := b.check("uint32", at, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b.data[at:]), nil
}

// GetFloat32 reads a little-endian float32 at offset at.
func (b *Buffer) GetFloat32(at int) (float32, error) {
	if err := b.check("float32", at, 4); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b.data[at:])), nil
}

// GetFloat64 reads a little-endian float64 at offset at.
func (b *Buffer) GetFloat64(at int) (float64, error) {
	if err := b.check("float64", at, 8); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b.data[at:])), nil
}

// GetBytes returns a copy of the n bytes starting at offset at.
func (b *Buffer) GetBytes(at, n int) ([]byte, error) {
	if err := b.check("bytes", at, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.data[at:at+n])
	return out, nil
}

// check fails unless [at, at+n) lies within the written bytes.
func (b *Buffer) check(typ string, at, n int) error {
	if at < 0 || n < 0 || at > len(b.data)-n {
		return failDecode(errors.OutOfRange(typ, span(at, n), len(b.data)))
	}
	return nil
}

// span returns [at, at+n), saturating End at math.MaxInt.
func span(at, n int) errors.Span {
	switch {
	case n < 0:
		n = 0
	case at > math.MaxInt-n:
		return errors.Span{Start: at, End: math.MaxInt}
	}
	return errors.Span{Start: at, End: at + n}
}
