// Command signcheck validates a signage design request offline and prints
// the same response body the API returns for POST /validate.
//
// Exit codes: 0 valid, 1 invalid, 2 usage or internal error.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"signage/internal/domain/signage"
	"signage/internal/fontmetrics"
	"signage/internal/http/handlers"
	"signage/internal/infra"
)

const (
	exitValid    = 0
	exitInvalid  = 1
	exitInternal = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, nil))
}

// run executes the command. locators overrides font lookup when non-nil.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, locators []fontmetrics.Locator) int {
	var (
		fileFlag     string
		prettyFlag   bool
		fontDirsFlag string
	)
	fs := flag.NewFlagSet("signcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&fileFlag, "file", "", "Path to a design request JSON file (defaults to stdin)")
	fs.BoolVar(&prettyFlag, "pretty", false, "Indent the JSON output")
	fs.StringVar(&fontDirsFlag, "font-dirs", os.Getenv("FONT_DIRS"), "Extra font directories, separated by the OS path list separator")
	if err := fs.Parse(args); err != nil {
		return exitInternal
	}

	input := stdin
	if path := strings.TrimSpace(fileFlag); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "failed to open %s: %v\n", path, err)
			return exitInternal
		}
		defer f.Close()
		input = f
	}

	logger := infra.NewLoggerTo(stderr, os.Getenv("APP_ENV"), "signcheck")
	var (
		provider *fontmetrics.Provider
		err      error
	)
	if locators != nil {
		provider, err = fontmetrics.NewProviderWithLocators(logger, locators...)
	} else {
		provider, err = fontmetrics.NewProvider(logger, filepath.SplitList(fontDirsFlag))
	}
	if err != nil {
		fmt.Fprintf(stderr, "font metrics unavailable: %v\n", err)
		return exitInternal
	}

	in, err := handlers.DecodeInput(input)
	if err != nil {
		fmt.Fprintf(stderr, "invalid request: %v\n", err)
		return exitInternal
	}

	res, err := signage.NewValidator(provider).Validate(in)
	if err != nil {
		fmt.Fprintf(stderr, "validation failed: %v\n", err)
		return exitInternal
	}

	enc := json.NewEncoder(stdout)
	if prettyFlag {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res); err != nil {
		fmt.Fprintf(stderr, "failed to write result: %v\n", err)
		return exitInternal
	}
	if !res.OK() {
		return exitInvalid
	}
	return exitValid
}
