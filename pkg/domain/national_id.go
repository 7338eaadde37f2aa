package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	dErrors "fnr/pkg/domain-errors"
)

// NationalID is a Norwegian national identity number (fødselsnummer).
//
// Only ParseNationalID produces a non-nil NationalID, so holding one means
// the number passed length, digit and checksum validation. The original
// string is kept verbatim and every accessor is a view over it.
//
// Layout: DDMMYY III KK
//   - DD, MM, YY: birth day, month and two-digit year
//   - III: individual number; its range encodes the century, its last digit the sex
//   - KK: mod-11 control digits
type NationalID struct {
	value string
}

var (
	// ErrInvalidNationalIDFormat matches (errors.Is) every ParseNationalID failure.
	ErrInvalidNationalIDFormat = dErrors.New(dErrors.CodeInvalidFormat, "invalid national ID format")

	// ErrCenturyUndetermined matches (errors.Is) a BirthYear4Digit failure on
	// a checksum-valid number whose individual number and year fit no century.
	ErrCenturyUndetermined = dErrors.New(dErrors.CodeInvariantViolation, "birth century undetermined")
)

// NationalIDFormatError carries the rejected input of a failed parse.
// Retrieve it with errors.As.
type NationalIDFormatError struct {
	Value string
}

func (e *NationalIDFormatError) Error() string {
	return fmt.Sprintf("not a valid fødselsnummer: %q", e.Value)
}

// ParseNationalID validates s and wraps it. Use at trust boundaries.
// s is stored as given; no trimming or normalisation takes place.
func ParseNationalID(s string) (NationalID, error) {
	if !IsValidNationalID(s) {
		return NationalID{}, &dErrors.Error{
			Code:    dErrors.CodeInvalidFormat,
			Message: "invalid national ID format",
			Err:     &NationalIDFormatError{Value: s},
		}
	}
	return NationalID{value: s}, nil
}

func (n NationalID) String() string { return n.value }

func (n NationalID) IsNil() bool { return n.value == "" }

// Day returns digits 0-1 as stored, e.g. "01".
func (n NationalID) Day() string { return n.slice(0, 2) }

// Month returns digits 2-3 as stored.
func (n NationalID) Month() string { return n.slice(2, 4) }

// BirthYear2Digit returns digits 4-5 as stored.
func (n NationalID) BirthYear2Digit() string { return n.slice(4, 6) }

func (n NationalID) individualNumber() string { return n.slice(6, 9) }

// IsFemale reports whether the last individual-number digit (position 8) is even.
func (n NationalID) IsFemale() bool {
	if n.IsNil() {
		return false
	}
	return (n.value[8]-'0')%2 == 0
}

// IsMale is the complement of IsFemale for every parsed number.
func (n NationalID) IsMale() bool {
	if n.IsNil() {
		return false
	}
	return !n.IsFemale()
}

// BirthYear4Digit prefixes BirthYear2Digit with the century derived from the
// individual number. A checksum-valid number can still fall outside every
// century rule (individual number 000, or e.g. 750-899 with year 40-99); that
// is reported as ErrCenturyUndetermined with code invariant_violation, never
// as a format error.
func (n NationalID) BirthYear4Digit() (string, error) {
	if n.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "national ID cannot be empty")
	}
	century, ok := birthCentury(atoi(n.individualNumber()), atoi(n.BirthYear2Digit()))
	if !ok {
		msg := fmt.Sprintf("birth century undetermined for individual number %s and year %s",
			n.individualNumber(), n.BirthYear2Digit())
		return "", &dErrors.Error{Code: dErrors.CodeInvariantViolation, Message: msg}
	}
	return century + n.BirthYear2Digit(), nil
}

// Redacted keeps only the last 4 digits, for logs and error messages.
func (n NationalID) Redacted() string {
	if len(n.value) <= 4 {
		return "****"
	}
	return "*******" + n.value[len(n.value)-4:]
}

// Hash returns a short SHA-256 fingerprint so log lines about the same
// number can be correlated without exposing it.
func (n NationalID) Hash() string {
	if n.IsNil() {
		return ""
	}
	sum := sha256.Sum256([]byte(n.value))
	return hex.EncodeToString(sum[:8])
}

// LogValue implements slog.LogValuer. The full number never reaches a handler.
func (n NationalID) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("redacted", n.Redacted()),
		slog.String("hash", n.Hash()),
	)
}

// MarshalText implements encoding.TextMarshaler.
func (n NationalID) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input yields the
// nil NationalID; anything else must parse.
func (n *NationalID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*n = NationalID{}
		return nil
	}
	parsed, err := ParseNationalID(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func (n NationalID) slice(from, to int) string {
	if n.IsNil() {
		return ""
	}
	return n.value[from:to]
}

// centuryRule maps an individual-number range and a two-digit year range
// (both inclusive) to a century prefix.
type centuryRule struct {
	indFrom, indTo int
	yrFrom, yrTo   int
	century        string
}

// centuryRules is evaluated top to bottom; the first match wins.
var centuryRules = []centuryRule{
	{indFrom: 1, indTo: 499, yrFrom: 0, yrTo: 98, century: "19"},
	{indFrom: 500, indTo: 999, yrFrom: 0, yrTo: 39, century: "20"},
	{indFrom: 500, indTo: 749, yrFrom: 54, yrTo: 99, century: "18"},
	{indFrom: 900, indTo: 999, yrFrom: 40, yrTo: 99, century: "19"},
}

func birthCentury(ind, yr int) (string, bool) {
	for _, r := range centuryRules {
		if ind >= r.indFrom && ind <= r.indTo && yr >= r.yrFrom && yr <= r.yrTo {
			return r.century, true
		}
	}
	return "", false
}

// atoi converts a string of ASCII digits already checked by IsValidNationalID.
func atoi(digits string) int {
	v := 0
	for i := 0; i < len(digits); i++ {
		v = v*10 + int(digits[i]-'0')
	}
	return v
}
