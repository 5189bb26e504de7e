package lowlevel

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-lowlevel/errors"
)

// Width is the bit width of the integer domain targeted by Varuint32 and Varint32.
const Width = 32

const (
	// VarBitsMax is the maximum number of 7-bit groups in a valid encoding.
	VarBitsMax = (Width + 6) / 7

	VaruintMin = 0
	VaruintMax = 1<<Width - 1
	VarintMin  = -1 << (Width - 1)
	VarintMax  = 1<<(Width-1) - 1
)

const (
	groupBits    = 7
	groupMask    = 0x7f
	continuation = 0x80
	signBit      = 0x40
)

var (
	ErrDomain     error = errors.New(errors.PhaseEncode, errors.KindDomain).Build()
	ErrOutOfRange error = errors.New(errors.PhaseDecode, errors.KindOutOfRange).Build()
	ErrOverflow   error = errors.New(errors.PhaseDecode, errors.KindOverflow).Build()
)

// Result is a decoded value and the offset just past its encoding.
type Result[T any] struct {
	Value T
	Next  int
}

// Codec encodes integers of a fixed bit width as LEB128.
// The zero Codec is rejected by Write and Read with an invalid_input error.
type Codec struct {
	name   string
	bits   int
	signed bool
}

var (
	Varuint32 = Codec{name: "varuint32", bits: Width}
	Varint32  = Codec{name: "varint32", bits: Width, signed: true}
	Varuint7  = Codec{name: "varuint7", bits: 7}
	Varint7   = Codec{name: "varint7", bits: 7, signed: true}
	Varuint1  = Codec{name: "varuint1", bits: 1}
)

var codecs = []Codec{Varuint32, Varint32, Varuint7, Varint7, Varuint1}

// Codecs lists the predefined codecs.
func Codecs() []Codec {
	out := make([]Codec, len(codecs))
	copy(out, codecs)
	return out
}

// CodecByName looks up a predefined codec, e.g. "varuint32".
func CodecByName(name string) (Codec, bool) {
	for _, c := range codecs {
		if c.name == name {
			return c, true
		}
	}
	return Codec{}, false
}

func (c Codec) Name() string { return c.name }
func (c Codec) Bits() int    { return c.bits }
func (c Codec) Signed() bool { return c.signed }

// Min returns the smallest encodable value.
func (c Codec) Min() int64 {
	if c.signed {
		return -1 << (c.bits - 1)
	}
	return 0
}

// Max returns the largest encodable value.
func (c Codec) Max() int64 {
	if c.signed {
		return 1<<(c.bits-1) - 1
	}
	return 1<<c.bits - 1
}

// MaxGroups returns the number of 7-bit groups a valid encoding may span.
func (c Codec) MaxGroups() int {
	return (c.bits + groupBits - 1) / groupBits
}

// Len returns the canonical encoded size of v, or 0 if v is out of range.
func (c Codec) Len(v int64) int {
	if c.bits == 0 || v < c.Min() || v > c.Max() {
		return 0
	}
	return len(c.append(nil, v))
}

// Write appends the canonical encoding of v. Nothing is written on error.
func (c Codec) Write(b *Buffer, v int64) error {
	if c.bits == 0 {
		return failEncode(errZeroCodec(errors.PhaseEncode))
	}
	if v < c.Min() || v > c.Max() {
		return failEncode(errors.Domain(c.name, v, c.Min(), c.Max()))
	}
	b.data = c.append(b.data, v)
	return nil
}

func (c Codec) append(dst []byte, v int64) []byte {
	if c.signed {
		return appendSigned(dst, v)
	}
	return appendUnsigned(dst, uint64(v))
}

// errZeroCodec reports use of a Codec that was not obtained from this package.
func errZeroCodec(phase errors.Phase) *errors.Error {
	return errors.New(phase, errors.KindInvalidInput).
		Type("codec").
		Detail("zero Codec value; use Varuint32, Varint32 or CodecByName").
		Build()
}

func appendUnsigned(dst []byte, v uint64) []byte {
	for {
		g := byte(v & groupMask)
		v >>= groupBits
		if v != 0 {
			g |= continuation
		}
		dst = append(dst, g)
		if v == 0 {
			return dst
		}
	}
}

func appendSigned(dst []byte, v int64) []byte {
	more := true
	for more {
		g := byte(v & groupMask)
		v >>= groupBits
		if (v == 0 && g&signBit == 0) || (v == -1 && g&signBit != 0) {
			more = false
		} else {
			g |= continuation
		}
		dst = append(dst, g)
	}
	return dst
}

// Read decodes the value encoded at offset at.
//
// Running off the end of the buffer is ErrOutOfRange. Reading a group past
// MaxGroups, or terminating with bits the codec cannot hold, is ErrOverflow.
func (c Codec) Read(b *Buffer, at int) (Result[int64], error) {
	if c.bits == 0 {
		return Result[int64]{}, failDecode(errZeroCodec(errors.PhaseDecode))
	}
	var (
		acc    uint64
		groups int
		last   byte
	)
	next := at
	for {
		if next < 0 || next >= len(b.data) {
			return Result[int64]{}, failDecode(errors.OutOfRange(c.name, span(next, 1), len(b.data)))
		}
		last = b.data[next]
		next++
		groups++
		if groups > c.MaxGroups() {
			return Result[int64]{}, failDecode(errors.Overflow(c.name, at, groups))
		}
		acc |= uint64(last&groupMask) << (groupBits * (groups - 1))
		if last&continuation == 0 {
			break
		}
	}

	value := int64(acc)
	if c.signed && last&signBit != 0 {
		value |= -1 << (groupBits * groups)
	}
	if value < c.Min() || value > c.Max() {
		return Result[int64]{}, failDecode(errors.New(errors.PhaseDecode, errors.KindOverflow).
			Type(c.name).
			Value(at).
			Detail("value %d at %d exceeds %d bits", value, at, c.bits).
			Build())
	}
	return Result[int64]{Value: value, Next: next}, nil
}

// Varuint appends v as varuint32.
func (b *Buffer) Varuint(v int64) error { return Varuint32.Write(b, v) }

// Varint appends v as varint32.
func (b *Buffer) Varint(v int64) error { return Varint32.Write(b, v) }

// Varuint7 appends v as varuint7.
func (b *Buffer) Varuint7(v int64) error { return Varuint7.Write(b, v) }

// Varint7 appends v as varint7.
func (b *Buffer) Varint7(v int64) error { return Varint7.Write(b, v) }

// Varuint1 appends v as varuint1.
func (b *Buffer) Varuint1(v int64) error { return Varuint1.Write(b, v) }

// GetVaruint decodes a varuint32 at offset at.
func (b *Buffer) GetVaruint(at int) (Result[int64], error) { return Varuint32.Read(b, at) }

// GetVarint decodes a varint32 at offset at.
func (b *Buffer) GetVarint(at int) (Result[int64], error) { return Varint32.Read(b, at) }

// GetVaruint7 decodes a varuint7 at offset at.
func (b *Buffer) GetVaruint7(at int) (Result[int64], error) { return Varuint7.Read(b, at) }

// GetVarint7 decodes a varint7 at offset at.
func (b *Buffer) GetVarint7(at int) (Result[int64], error) { return Varint7.Read(b, at) }

// GetVaruint1 decodes a varuint1 at offset at.
func (b *Buffer) GetVaruint1(at int) (Result[int64], error) { return Varuint1.Read(b, at) }

func failEncode(err *errors.Error) error {
	Logger().Debug("encode rejected",
		zap.String("type", err.Type),
		zap.Any("value", err.Value),
		zap.Error(err))
	return err
}

func failDecode(err *errors.Error) error {
	Logger().Debug("decode failed",
		zap.String("type", err.Type),
		zap.Any("offset", err.Value),
		zap.Error(err))
	return err
}
