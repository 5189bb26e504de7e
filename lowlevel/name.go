package lowlevel

import (
	"unicode/utf8"

	"github.com/wippyai/wasm-lowlevel/errors"
)

// Name appends s as a varuint32 byte length followed by its UTF-8 bytes.
func (b *Buffer) Name(s string) error {
	if !utf8.ValidString(s) {
		return failEncode(errors.InvalidUTF8(errors.PhaseEncode, []byte(s)))
	}
	if err := b.Varuint(int64(len(s))); err != nil {
		return err
	}
	b.data = append(b.data, s...)
	return nil
}

// GetName decodes a length-prefixed UTF-8 name at offset at.
func (b *Buffer) GetName(at int) (Result[string], error) {
	n, err := b.GetVaruint(at)
	if err != nil {
		return Result[string]{}, err
	}
	if err := b.check("name", n.Next, int(n.Value)); err != nil {
		return Result[string]{}, err
	}
	raw := b.data[n.Next : n.Next+int(n.Value)]
	if !utf8.Valid(raw) {
		return Result[string]{}, failDecode(errors.InvalidUTF8(errors.PhaseDecode, raw))
	}
	return Result[string]{Value: string(raw), Next: n.Next + len(raw)}, nil
}
