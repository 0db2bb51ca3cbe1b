package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/funvibe/funshape/internal/config"
	"github.com/funvibe/funshape/internal/conformance"
	"github.com/funvibe/funshape/internal/diagnostics"
	"github.com/mattn/go-isatty"
)

// runOptions are the host flags of the run command. Anything that is not
// a flag is a suite file or a directory of suites.
type runOptions struct {
	verbose bool
	noColor bool
	record  string
	paths   []string
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %[1]s <command> [arguments]

Commands:
  run [flags] <path...>   run conformance suites (.yaml/.yml files or directories)
  codes                   print the diagnostic code table
  help                    show this message

Run flags:
  -v            print every case, not just failures
  -no-color     disable colored output
  -record <db>  append reports to a sqlite database
`, os.Args[0])
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if handleHelp() {
		return
	}
	if handleCodes() {
		return
	}
	if handleRun() {
		return
	}

	usage()
	os.Exit(1)
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}
	if os.Args[1] != "-help" && os.Args[1] != "--help" && os.Args[1] != "help" {
		return false
	}
	usage()
	return true
}

// handleCodes prints the diagnostic code table so suite authors can see
// what a wantCodes entry may name.
func handleCodes() bool {
	if len(os.Args) < 2 || os.Args[1] != "codes" {
		return false
	}
	for _, d := range diagnostics.Descriptions() {
		fmt.Printf("  %-6s %s\n", d.Code, d.Template)
	}
	return true
}

func handleRun() bool {
	if len(os.Args) < 2 || os.Args[1] != "run" {
		return false
	}

	opts, err := parseRunArgs(os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if len(opts.paths) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s run [flags] <path...>\n", os.Args[0])
		os.Exit(1)
	}

	files, err := conformance.FindSuites(opts.paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No suite files found")
		return true
	}

	var store *conformance.Store
	if opts.record != "" {
		store, err = conformance.OpenStore(opts.record)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening report database: %s\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	cases, failed := 0, 0
	for _, file := range files {
		suite, err := conformance.LoadSuite(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		rep := conformance.RunSuite(suite, file)
		printReport(rep, opts)
		cases += len(rep.Results)
		failed += rep.Failed()

		if store != nil {
			if err := store.RecordReport(rep); err != nil {
				fmt.Fprintf(os.Stderr, "Error recording report: %s\n", err)
				os.Exit(1)
			}
		}
	}

	fmt.Printf("\n%d suites, %d cases, %d failed\n", len(files), cases, failed)
	if failed > 0 {
		os.Exit(1)
	}
	return true
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-v", "--verbose":
			opts.verbose = true
		case "-no-color", "--no-color":
			opts.noColor = true
		case "-record", "--record":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a database path", arg)
			}
			i++
			opts.record = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return opts, fmt.Errorf("unknown flag: %s", arg)
			}
			opts.paths = append(opts.paths, arg)
		}
	}
	return opts, nil
}

func printReport(rep *conformance.Report, opts runOptions) {
	fmt.Printf("\n=== %s ===\n", rep.File)

	for _, res := range rep.Results {
		if res.Passed {
			if opts.verbose {
				fmt.Printf("%s %s\n", paint("pass", ansiGreen, opts), caseLine(&res))
			}
			continue
		}
		fmt.Printf("%s %s\n", paint("FAIL", ansiRed, opts), caseLine(&res))
		for _, p := range res.Problems {
			fmt.Printf("     %s\n", p)
		}
		for _, d := range res.Diags {
			fmt.Printf("     %s\n", d)
		}
	}

	verdict := paint("ok", ansiGreen, opts)
	if rep.Failed() > 0 {
		verdict = paint("FAIL", ansiRed, opts)
	}
	fmt.Printf("%s %s: %d cases, %d failed (%s)\n",
		verdict, rep.Suite, len(rep.Results), rep.Failed(), rep.Elapsed.Round(time.Millisecond))
}

func caseLine(res *conformance.CaseResult) string {
	line := res.Name
	if res.Input != "" {
		line += "  " + res.Input
		if res.Got != "" {
			line += " => " + res.Got
		}
	}
	return line
}

// =============================================================================
// Color support detection
// =============================================================================

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// colorLevel caches the detected color support: 0=none, 1=basic(16)
var (
	colorLevelOnce sync.Once
	colorLevelVal  int
)

func detectColorLevel() int {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv(config.EnvNoColor); ok {
		return 0
	}

	// Not a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return 0
	}

	if os.Getenv(config.EnvTerm) == "dumb" {
		return 0
	}

	return 1
}

func getColorLevel() int {
	colorLevelOnce.Do(func() {
		colorLevelVal = detectColorLevel()
	})
	return colorLevelVal
}

func paint(s, color string, opts runOptions) string {
	if opts.noColor || getColorLevel() == 0 {
		return s
	}
	return color + s + ansiReset
}
