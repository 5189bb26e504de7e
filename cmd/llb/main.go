package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-lowlevel/errors"
	"github.com/wippyai/wasm-lowlevel/lowlevel"
	"github.com/wippyai/wasm-lowlevel/wasmcheck"
)

type options struct {
	codec  string
	encode string
	decode string
	dump   string
	verify string
	offset int
}

// newLogger builds the -v logger.
var newLogger = zap.NewDevelopment

func main() {
	os.Exit(cli(os.Args[1:], os.Stdout, os.Stderr))
}

// cli runs the command and returns its exit code. Deferred calls,
// including the logger flush, complete before main exits.
func cli(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("llb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Debug logging")
	interactive := fs.Bool("i", false, "Interactive mode with TUI")
	fs.StringVar(&opts.codec, "codec", lowlevel.Varuint32.Name(), "Codec: "+codecNames())
	fs.StringVar(&opts.encode, "encode", "", "Integer to encode")
	fs.StringVar(&opts.decode, "decode", "", "Hex bytes to decode (spaces allowed)")
	fs.IntVar(&opts.offset, "offset", 0, "Byte offset for -decode")
	fs.StringVar(&opts.dump, "dump", "", "Hex bytes to hexdump")
	fs.StringVar(&opts.verify, "verify", "", "Signed integer to round-trip through wazero")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *verbose {
		l, err := newLogger()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer l.Sync()
		lowlevel.SetLogger(l)
		wasmcheck.SetLogger(l)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(stderr, "Error: -i requires a terminal")
			return 1
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if opts.encode == "" && opts.decode == "" && opts.dump == "" && opts.verify == "" {
		fmt.Fprintln(stderr, "Usage: llb [-codec name] -encode <int>")
		fmt.Fprintln(stderr, "       llb [-codec name] -decode <hex> [-offset n]")
		fmt.Fprintln(stderr, "       llb -dump <hex>")
		fmt.Fprintln(stderr, "       llb -verify <int>")
		fmt.Fprintln(stderr, "       llb -i  (interactive mode)")
		return 1
	}

	if err := run(context.Background(), stdout, opts); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, w io.Writer, opts options) error {
	codec, ok := lowlevel.CodecByName(opts.codec)
	if !ok {
		return errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("unknown codec %q (want %s)", opts.codec, codecNames()))
	}

	if opts.encode != "" {
		v, err := parseInt(opts.encode)
		if err != nil {
			return err
		}
		out, err := encode(codec, v)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		fmt.Fprintf(w, "%s %d: %s\n", codec.Name(), v, out)
	}

	if opts.decode != "" {
		data, err := parseHex(opts.decode)
		if err != nil {
			return err
		}
		r, err := codec.Read(lowlevel.FromBytes(data), opts.offset)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Fprintf(w, "%s at %d: value=%d next=%d\n", codec.Name(), opts.offset, r.Value, r.Next)
	}

	if opts.dump != "" {
		data, err := parseHex(opts.dump)
		if err != nil {
			return err
		}
		fmt.Fprint(w, lowlevel.FromBytes(data).Dump())
	}

	if opts.verify != "" {
		v, err := parseInt(opts.verify)
		if err != nil {
			return err
		}
		c := wasmcheck.New(ctx)
		defer c.Close(ctx)
		got, err := c.RoundTrip(ctx, v)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		status := "ok"
		if got != v {
			status = "MISMATCH"
		}
		fmt.Fprintf(w, "i32.const %d: engine returned %d (%s)\n", v, got, status)
	}

	return nil
}

// encode returns the space-separated hex encoding of v.
func encode(codec lowlevel.Codec, v int64) (string, error) {
	b := lowlevel.NewBuffer()
	if err := codec.Write(b, v); err != nil {
		return "", err
	}
	return formatHex(b.Bytes()), nil
}

func formatHex(data []byte) string {
	parts := make([]string, len(data))
	for i, c := range data {
		parts[i] = hex.EncodeToString([]byte{c})
	}
	return strings.Join(parts, " ")
}

func parseHex(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ",", "", "0x", "").Replace(s)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "parse hex")
	}
	return data, nil
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "parse integer")
	}
	return v, nil
}

func codecNames() string {
	var names []string
	for _, c := range lowlevel.Codecs() {
		names = append(names, c.Name())
	}
	return strings.Join(names, ", ")
}
