package wasmcheck

import (
	"github.com/wippyai/wasm-lowlevel/errors"
	"github.com/wippyai/wasm-lowlevel/lowlevel"
)

const (
	magic   = 0x6d736100 // \0asm
	version = 1
)

// Section IDs
const (
	sectionType     = 1
	sectionFunction = 3
	sectionExport   = 7
	sectionCode     = 10
)

const (
	funcTypeByte = 0x60
	valTypeI32   = 0x7f
	exportFunc   = 0x00
	opI32Const   = 0x41
	opEnd        = 0x0b
)

// ExportName is the function exported by modules from Build.
const ExportName = "value"

// Build returns a module whose exported function returns v as an i32.
func Build(v int64) ([]byte, error) {
	body := lowlevel.NewBuffer()
	if err := body.Varuint(0); err != nil { // local decls
		return nil, err
	}
	body.Uint8(opI32Const)
	if err := body.Varint(v); err != nil {
		return nil, err
	}
	body.Uint8(opEnd)

	m := lowlevel.NewBuffer()
	m.Uint32(magic)
	m.Uint32(version)

	types := lowlevel.NewBuffer()
	if err := types.Varuint(1); err != nil {
		return nil, err
	}
	types.Uint8(funcTypeByte)
	if err := varuints(types, 0, 1); err != nil { // params, results
		return nil, err
	}
	types.Uint8(valTypeI32)
	if err := writeSection(m, sectionType, types); err != nil {
		return nil, err
	}

	funcs := lowlevel.NewBuffer()
	if err := varuints(funcs, 1, 0); err != nil { // count, type index
		return nil, err
	}
	if err := writeSection(m, sectionFunction, funcs); err != nil {
		return nil, err
	}

	exports := lowlevel.NewBuffer()
	if err := exports.Varuint(1); err != nil {
		return nil, err
	}
	if err := exports.Name(ExportName); err != nil {
		return nil, err
	}
	exports.Uint8(exportFunc)
	if err := exports.Varuint(0); err != nil { // func index
		return nil, err
	}
	if err := writeSection(m, sectionExport, exports); err != nil {
		return nil, err
	}

	code := lowlevel.NewBuffer()
	if err := varuints(code, 1, int64(body.Size())); err != nil {
		return nil, err
	}
	code.Raw(body.Bytes())
	if err := writeSection(m, sectionCode, code); err != nil {
		return nil, err
	}

	return m.Bytes(), nil
}

func varuints(b *lowlevel.Buffer, vs ...int64) error {
	for _, v := range vs {
		if err := b.Varuint(v); err != nil {
			return err
		}
	}
	return nil
}

func writeSection(m *lowlevel.Buffer, id byte, contents *lowlevel.Buffer) error {
	m.Uint8(id)
	if err := m.Varuint(int64(contents.Size())); err != nil {
		return err
	}
	m.Raw(contents.Bytes())
	return nil
}

// Immediate reads back the i32.const operand of a module produced by Build,
// walking its sections with positional reads.
func Immediate(bin []byte) (int64, error) {
	b := lowlevel.FromBytes(bin)

	mg, err := b.GetUint32(0)
	if err != nil {
		return 0, err
	}
	ver, err := b.GetUint32(4)
	if err != nil {
		return 0, err
	}
	if mg != magic || ver != version {
		return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Type("module").
			Detail("bad header %08x %08x", mg, ver).
			Build()
	}

	at := 8
	for at < b.Size() {
		id, err := b.GetUint8(at)
		if err != nil {
			return 0, err
		}
		size, err := b.GetVaruint(at + 1)
		if err != nil {
			return 0, err
		}
		if id != sectionCode {
			at = size.Next + int(size.Value)
			continue
		}

		count, err := b.GetVaruint(size.Next)
		if err != nil {
			return 0, err
		}
		if count.Value != 1 {
			return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Type("module").
				Detail("expected 1 function body, got %d", count.Value).
				Build()
		}
		bodySize, err := b.GetVaruint(count.Next)
		if err != nil {
			return 0, err
		}
		locals, err := b.GetVaruint(bodySize.Next)
		if err != nil {
			return 0, err
		}
		op, err := b.GetUint8(locals.Next)
		if err != nil {
			return 0, err
		}
		if op != opI32Const {
			return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Type("module").
				Detail("expected i32.const, got opcode 0x%02x", op).
				Build()
		}
		imm, err := b.GetVarint(locals.Next + 1)
		if err != nil {
			return 0, err
		}
		return imm.Value, nil
	}

	return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Type("module").
		Detail("no code section").
		Build()
}
