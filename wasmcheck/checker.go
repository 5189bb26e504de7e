package wasmcheck

import (
	"context"
	"encoding/hex"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-lowlevel/errors"
)

// Checker runs Build output through wazero.
// It is safe for concurrent use; each RoundTrip instantiates its own module.
type Checker struct {
	runtime wazero.Runtime
}

// New creates a Checker backed by a fresh wazero runtime.
func New(ctx context.Context) *Checker {
	return &Checker{runtime: wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig())}
}

// Close releases the underlying runtime.
func (c *Checker) Close(ctx context.Context) error {
	return c.runtime.Close(ctx)
}

// RoundTrip encodes v into a module, lets the engine decode and execute it,
// and returns the i32 the engine produced.
func (c *Checker) RoundTrip(ctx context.Context, v int64) (int64, error) {
	bin, err := Build(v)
	if err != nil {
		return 0, err
	}

	Logger().Debug("verifying module",
		zap.Int64("value", v),
		zap.String("bytes", hex.EncodeToString(bin)))

	compiled, err := c.runtime.CompileModule(ctx, bin)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseVerify, errors.KindInvalidData, err, "compile module")
	}
	defer compiled.Close(ctx)

	mod, err := c.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseVerify, errors.KindInvalidData, err, "instantiate module")
	}
	defer mod.Close(ctx)

	fn := mod.ExportedFunction(ExportName)
	if fn == nil {
		return 0, errors.New(errors.PhaseVerify, errors.KindInvalidData).
			Detail("export %q not found", ExportName).
			Build()
	}
	results, err := fn.Call(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseVerify, errors.KindInvalidData, err, "call "+ExportName)
	}
	if len(results) != 1 {
		return 0, errors.New(errors.PhaseVerify, errors.KindInvalidData).
			Detail("expected 1 result, got %d", len(results)).
			Build()
	}

	got := int64(api.DecodeI32(results[0]))
	if got != v {
		Logger().Warn("engine decoded a different value",
			zap.Int64("written", v),
			zap.Int64("decoded", got))
	}
	return got, nil
}
