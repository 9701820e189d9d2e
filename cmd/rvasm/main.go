package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Urethramancer/rvasm/assembler"
	"github.com/grimdork/climate/arg"
	"github.com/tebeka/atexit"
	"golang.org/x/term"
)

func main() {
	opt := arg.New("rvasm")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Output file (default: stdout).", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "f", "format", "Output format: text, hex or bin (bin needs -o or a redirected stdout).", assembler.FormatText, false, arg.VarString,
		[]any{assembler.FormatText, assembler.FormatHex, assembler.FormatBin})
	opt.SetOption(arg.GroupDefault, "l", "listing", "Write an annotated listing instead of bare words.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Log label and pass details to stderr.", false, false, arg.VarBool, nil)
	opt.SetPositional("INPUT", "RISC-V assembly source file.", "", true, arg.VarString)

	if err := opt.Parse(os.Args[1:]); err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			atexit.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(2)
	}
	if opt.GetBool("help") {
		opt.PrintHelp()
		atexit.Exit(0)
	}

	level := slog.LevelWarn
	if opt.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	input := opt.GetPosString("INPUT")
	data, err := os.ReadFile(input)
	if err != nil {
		logger.Error("reading input", "file", input, "err", err)
		atexit.Exit(1)
	}

	prog, err := assembler.New().WithLogger(logger).Assemble(string(data))
	if err != nil {
		logger.Error("assembly failed", "file", input, "kind", assembler.Kind(err), "err", err)
		atexit.Exit(1)
	}

	format := opt.GetString("format")
	listing := opt.GetBool("listing")
	outPath := opt.GetString("output")
	if outPath == "" {
		if err := checkStdout(format, listing, term.IsTerminal(int(os.Stdout.Fd()))); err != nil {
			logger.Error("writing output", "err", err)
			atexit.Exit(1)
		}
		if err := write(os.Stdout, prog, format, listing); err != nil {
			logger.Error("writing output", "err", err)
			atexit.Exit(1)
		}
		atexit.Exit(0)
	}

	// Write next to the target and rename, so a failed run never leaves a
	// truncated output file behind.
	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*")
	if err != nil {
		logger.Error("creating output", "file", outPath, "err", err)
		atexit.Exit(1)
	}
	atexit.Register(func() {
		tmp.Close()
		os.Remove(tmp.Name())
	})

	if err := write(tmp, prog, format, listing); err != nil {
		logger.Error("writing output", "file", outPath, "err", err)
		atexit.Exit(1)
	}
	if err := tmp.Close(); err != nil {
		logger.Error("closing output", "file", outPath, "err", err)
		atexit.Exit(1)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		logger.Error("renaming output", "file", outPath, "err", err)
		atexit.Exit(1)
	}
	logger.Info("assembled", "file", input, "words", len(prog.Words), "output", outPath)
	atexit.Exit(0)
}

// checkStdout rejects raw binary for an interactive terminal. Text and hex
// are written unchanged wherever stdout goes.
func checkStdout(format string, listing, tty bool) error {
	if tty && format == assembler.FormatBin && !listing {
		return errors.New("refusing to write binary output to a terminal; use -o or redirect stdout")
	}
	return nil
}

func write(w io.Writer, prog *assembler.Program, format string, listing bool) error {
	if listing {
		return prog.WriteListing(w)
	}
	return prog.Encode(w, format)
}
