package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Urethramancer/rvasm/disassembler"
	"github.com/Urethramancer/rvasm/isa"
	"github.com/grimdork/climate/arg"
	"github.com/tebeka/atexit"
)

func main() {
	opt := arg.New("rvdis")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Output file (default: stdout).", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "f", "format", "Input format: text (binary strings) or bin (little-endian words).", "text", false, arg.VarString,
		[]any{"text", "bin"})
	opt.SetPositional("INPUT", "Machine code file.", "", true, arg.VarString)

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	inputFile := opt.GetPosString("INPUT")
	data, err := os.ReadFile(inputFile)
	if err != nil {
		logger.Error("reading input", "file", inputFile, "err", err)
		atexit.Exit(1)
	}

	var words []isa.Word
	if opt.GetString("format") == "bin" {
		words = isa.BytesToWords(data)
	} else {
		words, err = disassembler.ParseText(string(data))
		if err != nil {
			logger.Error("parsing input", "file", inputFile, "err", err)
			atexit.Exit(1)
		}
	}

	text, err := disassembler.Disassemble(words)
	if err != nil {
		logger.Error("disassembly failed", "err", err)
		atexit.Exit(1)
	}

	outputFile := opt.GetString("output")
	if outputFile == "" {
		fmt.Print(text)
		atexit.Exit(0)
	}
	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		logger.Error("writing output", "file", outputFile, "err", err)
		atexit.Exit(1)
	}
	fmt.Printf("Disassembly written to %s\n", outputFile)
	atexit.Exit(0)
}
