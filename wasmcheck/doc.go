// Package wasmcheck verifies LEB128 output against a real WebAssembly engine.
//
// Build assembles, using only lowlevel.Buffer, the smallest core module that
// carries a signed immediate:
//
//	(module (func (export "value") (result i32) i32.const <v>))
//
// Checker compiles and runs it with wazero and reports the value the engine
// decoded, so any divergence from canonical LEB128 shows up as a mismatch or a
// compile error.
//
//	c := wasmcheck.New(ctx)
//	defer c.Close(ctx)
//	got, err := c.RoundTrip(ctx, -129)
package wasmcheck
