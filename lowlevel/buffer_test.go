package lowlevel_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	llerrors "github.com/wippyai/wasm-lowlevel/errors"
	"github.com/wippyai/wasm-lowlevel/lowlevel"
)

func TestBufferUint8(t *testing.T) {
	b := lowlevel.NewBuffer()
	if b.Size() != 0 {
		t.Fatalf("new buffer size: got %d, want 0", b.Size())
	}

	data := []byte{0x01, 0x02, 0xff}
	for i, v := range data {
		b.Uint8(v)
		if b.Size() != i+1 {
			t.Errorf("size after %d writes: got %d", i+1, b.Size())
		}
	}

	for i, want := range data {
		got, err := b.GetUint8(i)
		if err != nil {
			t.Fatalf("GetUint8(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("GetUint8(%d): got 0x%02x, want 0x%02x", i, got, want)
		}
	}

	_, err := b.GetUint8(3)
	if !errors.Is(err, lowlevel.ErrOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	var le *llerrors.Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if *le.Span != (llerrors.Span{Start: 3, End: 4}) || *le.Bounds != (llerrors.Span{Start: 0, End: 3}) {
		t.Errorf("span %v bounds %v", le.Span, le.Bounds)
	}
}

func TestBufferFixedWidth(t *testing.T) {
	b := lowlevel.NewBuffer(lowlevel.WithCapacity(8))
	b.Uint16(0x0201)
	if err := b.Uint24(0x050403); err != nil {
		t.Fatalf("Uint24: %v", err)
	}
	b.Uint32(0x09080706)

	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("Bytes: got %x, want %x", b.Bytes(), want)
	}

	if v, err := b.GetUint16(0); err != nil || v != 0x0201 {
		t.Errorf("GetUint16 = 0x%x, %v", v, err)
	}
	if v, err := b.GetUint24(2); err != nil || v != 0x050403 {
		t.Errorf("GetUint24 = 0x%x, %v", v, err)
	}
	if v, err := b.GetUint32(5); err != nil || v != 0x09080706 {
		t.Errorf("GetUint32 = 0x%x, %v", v, err)
	}
	if _, err := b.GetUint32(6); !errors.Is(err, lowlevel.ErrOutOfRange) {
		t.Errorf("GetUint32 past end: expected out of range, got %v", err)
	}
	if !strings.Contains(errString(b.GetUint32(6)), "[6, 10) is out of buffer range [0, 9)") {
		t.Errorf("unexpected message %q", errString(b.GetUint32(6)))
	}
}

func errString(_ uint32, err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func TestBufferUint24Domain(t *testing.T) {
	b := lowlevel.NewBuffer()
	if err := b.Uint24(1 << 24); !errors.Is(err, lowlevel.ErrDomain) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if b.Size() != 0 {
		t.Errorf("failed Uint24 wrote %d bytes", b.Size())
	}
}

func TestBufferFloats(t *testing.T) {
	b := lowlevel.NewBuffer()
	b.Float32(1.5)
	b.Float64(math.Pi)
	b.Float32(float32(math.Inf(-1)))

	if v, err := b.GetFloat32(0); err != nil || v != 1.5 {
		t.Errorf("GetFloat32 = %v, %v", v, err)
	}
	if v, err := b.GetFloat64(4); err != nil || v != math.Pi {
		t.Errorf("GetFloat64 = %v, %v", v, err)
	}
	if v, err := b.GetFloat32(12); err != nil || !math.IsInf(float64(v), -1) {
		t.Errorf("GetFloat32 = %v, %v", v, err)
	}
	if _, err := b.GetFloat64(12); !errors.Is(err, lowlevel.ErrOutOfRange) {
		t.Errorf("expected out of range, got %v", err)
	}
}

func TestBufferBytesIsCopy(t *testing.T) {
	b := lowlevel.FromBytes([]byte{0x01, 0x02})
	out := b.Bytes()
	out[0] = 0xff
	if v, _ := b.GetUint8(0); v != 0x01 {
		t.Errorf("mutating Bytes() changed the buffer: 0x%02x", v)
	}

	src := []byte{0x03}
	c := lowlevel.FromBytes(src)
	src[0] = 0x04
	if v, _ := c.GetUint8(0); v != 0x03 {
		t.Errorf("FromBytes shares caller memory: 0x%02x", v)
	}

	got, err := b.GetBytes(0, 2)
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	got[1] = 0xee
	if v, _ := b.GetUint8(1); v != 0x02 {
		t.Errorf("mutating GetBytes() changed the buffer: 0x%02x", v)
	}
	if _, err := b.GetBytes(1, 2); !errors.Is(err, lowlevel.ErrOutOfRange) {
		t.Errorf("expected out of range, got %v", err)
	}
	if _, err := b.GetBytes(0, -1); !errors.Is(err, lowlevel.ErrOutOfRange) {
		t.Errorf("negative length: expected out of range, got %v", err)
	}
}

func TestBufferRawAndDump(t *testing.T) {
	b := lowlevel.NewBuffer()
	b.Raw([]byte("\x00asm"))
	if b.Size() != 4 {
		t.Fatalf("size: got %d, want 4", b.Size())
	}
	dump := b.Dump()
	if !strings.HasPrefix(dump, "00000000  00 61 73 6d") || !strings.Contains(dump, "|.asm|") {
		t.Errorf("unexpected dump %q", dump)
	}
}

func TestBufferName(t *testing.T) {
	b := lowlevel.NewBuffer()
	for _, s := range []string{"", "memory", "héllo"} {
		if err := b.Name(s); err != nil {
			t.Fatalf("Name(%q): %v", s, err)
		}
	}

	at := 0
	for _, want := range []string{"", "memory", "héllo"} {
		r, err := b.GetName(at)
		if err != nil {
			t.Fatalf("GetName(%d): %v", at, err)
		}
		if r.Value != want {
			t.Errorf("GetName(%d) = %q, want %q", at, r.Value, want)
		}
		at = r.Next
	}
	if at != b.Size() {
		t.Errorf("names end at %d, size %d", at, b.Size())
	}
}

func TestBufferNameErrors(t *testing.T) {
	b := lowlevel.NewBuffer()
	if err := b.Name("\xff"); !errors.Is(err, llerrors.New(llerrors.PhaseEncode, llerrors.KindInvalidUTF8).Build()) {
		t.Errorf("expected invalid utf8, got %v", err)
	}
	if b.Size() != 0 {
		t.Errorf("failed Name wrote %d bytes", b.Size())
	}

	truncated := lowlevel.FromBytes([]byte{0x05, 'a', 'b'})
	if _, err := truncated.GetName(0); !errors.Is(err, lowlevel.ErrOutOfRange) {
		t.Errorf("expected out of range, got %v", err)
	}

	invalid := lowlevel.FromBytes([]byte{0x01, 0xff})
	if _, err := invalid.GetName(0); !errors.Is(err, llerrors.New(llerrors.PhaseDecode, llerrors.KindInvalidUTF8).Build()) {
		t.Errorf("expected invalid utf8, got %v", err)
	}
}

func TestOutOfRangeSpanSaturates(t *testing.T) {
	b := lowlevel.FromBytes([]byte{0, 1, 2, 3, 4, 5})

	tests := []struct {
		name string
		read func() error
		want llerrors.Span
	}{
		{"bytes", func() error { _, err := b.GetBytes(4, math.MaxInt); return err }, llerrors.Span{Start: 4, End: math.MaxInt}},
		{"bytes half", func() error { _, err := b.GetBytes(math.MaxInt/2+1, math.MaxInt/2+1); return err }, llerrors.Span{Start: math.MaxInt/2 + 1, End: math.MaxInt}},
		{"varuint", func() error { _, err := b.GetVaruint(math.MaxInt); return err }, llerrors.Span{Start: math.MaxInt, End: math.MaxInt}},
		{"negative length", func() error { _, err := b.GetBytes(2, -3); return err }, llerrors.Span{Start: 2, End: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read()
			var le *llerrors.Error
			if !errors.As(err, &le) || !errors.Is(err, lowlevel.ErrOutOfRange) {
				t.Fatalf("expected out of range, got %v", err)
			}
			if *le.Span != tt.want {
				t.Errorf("Span = %v, want %v", le.Span, tt.want)
			}
			if strings.Contains(err.Error(), "-") {
				t.Errorf("message has a negative bound: %q", err.Error())
			}
		})
	}
}
