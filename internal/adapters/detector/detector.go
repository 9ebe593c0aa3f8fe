// Package detector picks the log format from the environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// Format is the log output format.
type Format int

const (
	// FormatAuto detects the format from the environment.
	FormatAuto Format = iota
	// FormatPretty writes coloured, human-readable lines.
	FormatPretty
	// FormatJSON writes one JSON object per line.
	FormatJSON
)

// DetectFormat returns FormatJSON when stderr is not a terminal or CI is set, FormatPretty otherwise.
func DetectFormat() Format {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ResolveFormat applies the --log-format flag to the detected format.
// flag is one of "auto", "pretty", "json" or empty; unknown values fall back to detected.
func ResolveFormat(detected Format, flag string) Format {
	switch flag {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return detected
	}
}
