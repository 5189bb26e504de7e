// Package wasmlowlevel is the root of the wasm-lowlevel module: the byte buffer and
// LEB128 codecs that WebAssembly-style binary formats are assembled from.
//
// # Architecture Overview
//
//	wasmlowlevel/
//	├── lowlevel/    Append-only Buffer, fixed-width fields and varint codecs
//	├── wasmcheck/   Round-trips encoded immediates through the wazero engine
//	├── errors/      Structured error types (domain, out_of_range, overflow)
//	└── cmd/llb/     Command-line encoder/decoder with an interactive mode
//
// # Quick Start
//
//	b := lowlevel.NewBuffer()
//	b.Uint8(0xab)
//	_ = b.Varuint(300)
//
//	r, err := b.GetVaruint(1)
//	// r.Value == 300, r.Next == 3
//
// # Integer Domain
//
// The varint codecs target 32-bit integers: varuint in [0, 2^32-1], varint in
// [-2^31, 2^31-1], at most 5 groups of 7 bits. Out-of-domain values fail to
// encode without touching the buffer; malformed input fails to decode with an
// out-of-range or overflow error.
//
// # Thread Safety
//
// Buffer is not synchronized. A buffer that is no longer written may be read
// from any number of goroutines.
package wasmlowlevel
