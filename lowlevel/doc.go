// Package lowlevel provides an append-only byte buffer with LEB128 variable-length
// integer encoding, the primitive that WebAssembly-style binary formats are built on.
//
// Writes append to the end of the buffer. Reads are positional: every getter takes
// a byte offset and returns the decoded value together with the offset of the byte
// that follows it, so mixed fixed-width and variable-width fields can be parsed by
// chaining offsets without a hidden cursor.
//
// # Writing
//
//	b := lowlevel.NewBuffer()
//	b.Uint8(0xab)
//	if err := b.Varuint(300); err != nil {
//	    return err
//	}
//
// # Reading
//
//	tag, _ := b.GetUint8(0)      // 0xab
//	r, err := b.GetVaruint(1)    // r.Value == 300, r.Next == 3
//
// # Integer Domain
//
// The varint codecs target 32-bit integers (Width). All bounds are derived from it:
//
//	VaruintMin, VaruintMax  [0, 2^32-1]
//	VarintMin,  VarintMax   [-2^31, 2^31-1]
//	VarBitsMax              5 groups of 7 bits
//
// Values cross the API as int64 so that out-of-domain values can be rejected
// instead of silently truncated. Narrow codecs (Varuint7, Varint7, Varuint1) share
// the same machinery for type tags and flags.
//
// # Errors
//
// Failures are *errors.Error values from the module's errors package:
//
//	KindDomain      value outside the codec range, nothing is written
//	KindOutOfRange  a read needed bytes at or beyond Size()
//	KindOverflow    an encoding spans more groups, or more bits, than the codec allows
//
// Use errors.Is with ErrDomain, ErrOutOfRange and ErrOverflow to classify them.
//
// # Concurrency
//
// A Buffer is not synchronized. Concurrent reads of a buffer that is no longer
// being written are safe; writes need external locking.
package lowlevel
