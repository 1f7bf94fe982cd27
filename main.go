package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"json2csv/internal/config"
	"json2csv/internal/csvwriter"
	"json2csv/internal/errors"
	"json2csv/internal/flatten"
	"json2csv/internal/models"
	"json2csv/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output CSV file. Defaults to the input file name with a .csv extension." short:"o" type:"path"`
	MaxRows     int    `help:"Maximum number of data rows per output file. 0 disables splitting." short:"m" default:"0"`
	Config      string `help:"Path to config file. Defaults to searching for .json2csv.yml." short:"c" type:"path"`
	Debug       bool   `help:"Enable debug output." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("json2csv"),
		kong.Description("A tool to convert JSON files to CSV"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Parse the command line arguments
	_, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("json2csv version %s\n", Version)
		return
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, CLI.MaxRows, CLI.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{Debug: cfg.Dev.Debug, Config: cfg})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: json2csv --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Parse JSON input
	root, sourceName, err := parseInput()
	if err != nil {
		// Error is already wrapped by parseInput
		return err
	}

	// 2. Normalize records and build the ordered key set
	job, err := flatten.Normalize(root)
	if err != nil {
		return err
	}

	if ctx.Debug {
		fmt.Fprintf(os.Stderr, "Flattened %d records with %d columns\n", len(job.Records), len(job.OrderedKeys))
	}

	// 3. Resolve the output path
	outputPath := CLI.Output
	if outputPath == "" {
		outputPath = ctx.Config.DeriveOutputPath(CLI.Input)
	}

	// 4. Write the CSV file(s)
	fmt.Fprintf(os.Stderr, "Converting %s to CSV...\n", sourceName)
	result, err := csvwriter.Write(job, outputPath, ctx.Config.Split.MaxRowsPerFile)
	if err != nil {
		return err
	}

	// 5. Report the outcome
	if result.FileCount == 1 {
		fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", result.TotalRows, result.Files[0])
	} else {
		fmt.Fprintf(os.Stderr, "Wrote %d rows across %d files:\n", result.TotalRows, result.FileCount)
		for _, file := range result.Files {
			fmt.Fprintf(os.Stderr, "  %s\n", file)
		}
	}
	return nil
}

// parseInput reads JSON from file or stdin and returns the parsed value
// along with a human-readable source name for status messages
func parseInput() (models.Value, string, error) {
	if CLI.Input != "" {
		// Parse from file
		root, err := parser.ParseFile(CLI.Input)
		return root, filepath.Base(CLI.Input), err
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, "", errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			// Interactive mode
			root, err := readInteractiveInput()
			return root, "pasted JSON", err
		}
		// No data provided on stdin and not in interactive mode
		return nil, "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return nil, "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	root, err := parser.ParseString(string(jsonData))
	return root, "stdin", err
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (models.Value, error) {
	fmt.Fprintln(os.Stderr, "json2csv Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			// End of input
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
		jsonBuilder.WriteString(line)
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return parser.ParseString(jsonData)
}
