// Command grrexlint scans lines of input against a pattern, printing the
// best-scoring substring match on each line. It exists to exercise the
// grrex engine end to end; it carries no matching logic of its own.
package main

import (
	"bufio"
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/grrex/grrex"
)

type options struct {
	pattern  string
	tolerant bool
	quiet    bool
	verbose  bool
}

func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Scan stdin line by line for the highest-scoring match of a grrex pattern.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.pattern, "pattern", "p", "", "grrex pattern to search for (required)"),
		flagSet.BoolVarP(&opts.tolerant, "tolerant", "t", false, "treat unprintable byte runs as line breaks instead of erroring"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.quiet, "quiet", "q", false, "print matches only, no status lines"),
		flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "display verbose diagnostics"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}
	if opts.pattern == "" {
		gologger.Fatal().Msg("-pattern is required")
	}
	if opts.verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if opts.quiet {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
	return opts
}

func main() {
	opts := parseFlags()

	re, err := grrex.Compile(opts.pattern)
	if err != nil {
		gologger.Fatal().Msgf("compile failed: %v", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	matched := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()

		start, end, cursor, err := re.Search(line, opts.tolerant)
		if err != nil {
			gologger.Verbose().Msgf("line %d: no match (cursor=%d): %v", lineNo, cursor, err)
			continue
		}

		matched++
		os.Stdout.Write(line[start:end])
		os.Stdout.Write([]byte("\n"))
	}
	if err := scanner.Err(); err != nil {
		gologger.Fatal().Msgf("reading input: %v", err)
	}

	gologger.Verbose().Msgf("%d/%d lines matched", matched, lineNo)
}
