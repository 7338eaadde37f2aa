// Package main provides a CLI for checking Norwegian national identity
// numbers (fødselsnummer) from the shell.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fnr/internal/platform/config"
	"fnr/internal/platform/logger"
	id "fnr/pkg/domain"
)

// Exit codes.
const (
	exitOK        = 0
	exitInvalid   = 1
	exitUsage     = 2
	exitInvariant = 3
)

type validateOutput struct {
	NationalID string `json:"national_id"`
	Valid      bool   `json:"valid"`
}

type inspectOutput struct {
	NationalID      string `json:"national_id"`
	Redacted        string `json:"redacted"`
	Day             string `json:"day"`
	Month           string `json:"month"`
	BirthYear2Digit string `json:"birth_year_2_digit"`
	BirthYear4Digit string `json:"birth_year_4_digit,omitempty"`
	CenturyError    string `json:"century_error,omitempty"`
	Sex             string `json:"sex"`
}

func main() {
	cfg := config.FromEnv()
	log := logger.New(os.Stderr, cfg.LogLevel)
	os.Exit(run(os.Args[1:], cfg, log, os.Stdout, os.Stderr))
}

func run(args []string, cfg config.CLI, log *slog.Logger, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(stderr)
		jsonOut := fs.Bool("json", cfg.Output == config.OutputJSON, "Output as JSON")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}
		if fs.NArg() == 0 {
			fmt.Fprintln(stderr, "validate: at least one number is required")
			return exitUsage
		}
		return validate(fs.Args(), *jsonOut, log, stdout)
	case "inspect":
		fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
		fs.SetOutput(stderr)
		jsonOut := fs.Bool("json", cfg.Output == config.OutputJSON, "Output as JSON")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "inspect: exactly one number is required")
			return exitUsage
		}
		return inspect(fs.Arg(0), *jsonOut, log, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return exitUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `fnrcheck - Check Norwegian national identity numbers (fødselsnummer)

Usage:
  fnrcheck <command> [flags] <number>...

Commands:
  validate  Report whether each number is valid (exit 1 if any is not)
  inspect   Print the fields derived from one number

Flags:
  -json     Output as JSON (default from FNRCHECK_OUTPUT)

Environment:
  FNRCHECK_LOG_LEVEL  debug|info|warn|error (default info)
  FNRCHECK_OUTPUT     text|json (default text)`)
}

func validate(numbers []string, jsonOut bool, log *slog.Logger, stdout io.Writer) int {
	code := exitOK
	results := make([]validateOutput, 0, len(numbers))
	for _, raw := range numbers {
		valid := id.IsValidNationalID(raw)
		if !valid {
			code = exitInvalid
			log.Debug("national ID rejected", "national_id_suffix", redactRaw(raw))
		}
		results = append(results, validateOutput{NationalID: raw, Valid: valid})
	}

	if jsonOut {
		writeJSON(stdout, results)
		return code
	}
	for _, r := range results {
		status := "invalid"
		if r.Valid {
			status = "valid"
		}
		fmt.Fprintf(stdout, "%s\t%s\n", r.NationalID, status)
	}
	return code
}

func inspect(raw string, jsonOut bool, log *slog.Logger, stdout, stderr io.Writer) int {
	nid, err := id.ParseNationalID(raw)
	if err != nil {
		log.Info("national ID rejected", "national_id_suffix", redactRaw(raw), "error", err)
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return exitInvalid
	}

	out := inspectOutput{
		NationalID:      nid.String(),
		Redacted:        nid.Redacted(),
		Day:             nid.Day(),
		Month:           nid.Month(),
		BirthYear2Digit: nid.BirthYear2Digit(),
		Sex:             "male",
	}
	if nid.IsFemale() {
		out.Sex = "female"
	}

	code := exitOK
	year, err := nid.BirthYear4Digit()
	switch {
	case err == nil:
		out.BirthYear4Digit = year
	case errors.Is(err, id.ErrCenturyUndetermined):
		log.Error("birth century undetermined", "national_id", nid, "error", err)
		out.CenturyError = err.Error()
		code = exitInvariant
	default:
		log.Error("unexpected inspect failure", "national_id", nid, "error", err)
		return exitInvariant
	}

	if jsonOut {
		writeJSON(stdout, out)
		return code
	}
	fmt.Fprintf(stdout, "national_id:        %s\n", out.NationalID)
	fmt.Fprintf(stdout, "day:                %s\n", out.Day)
	fmt.Fprintf(stdout, "month:              %s\n", out.Month)
	fmt.Fprintf(stdout, "birth_year_2_digit: %s\n", out.BirthYear2Digit)
	if out.CenturyError != "" {
		fmt.Fprintf(stdout, "birth_year_4_digit: (%s)\n", out.CenturyError)
	} else {
		fmt.Fprintf(stdout, "birth_year_4_digit: %s\n", out.BirthYear4Digit)
	}
	fmt.Fprintf(stdout, "sex:                %s\n", out.Sex)
	return code
}

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// redactRaw keeps only the last 4 bytes of unparsed input for logging.
func redactRaw(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
