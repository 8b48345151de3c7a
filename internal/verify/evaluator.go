// internal/verify/evaluator.go
//
// Predicate evaluator for the lucky game.
// Responsibilities:
//   - CheckLucky: does a candidate equal the round's lucky token?
//   - CheckColor: does a candidate equal the round's color token?
//   - ParseCandidate: reject candidates that are not text at the boundary.
//
// Notes:
//   - Comparison is exact byte equality. No trimming, case folding, or
//     numeric coercion: "01" does not match "1".
//   - A well-formed non-match is (false, nil). Only a round that cannot be
//     checked, or a candidate of the wrong type, is an error.
package verify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

var (
	// ErrInvalidCandidate is returned when a candidate is not a text token.
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrUnknownKind is returned by Check for a kind other than lucky/color.
	ErrUnknownKind = errors.New("unknown check kind")
)

// Kind names one of the two independent checks.
type Kind string

const (
	KindLucky Kind = "lucky"
	KindColor Kind = "color"
)

// Registry is the read side of the round table the evaluator needs.
// *round.Registry satisfies it.
type Registry interface {
	ExpectedLucky(round uint64) (string, error)
	ExpectedColor(round uint64) (string, error)
}

// Evaluator answers the lucky and color predicates against a Registry.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	reg Registry
}

// New returns an Evaluator over reg.
func New(reg Registry) *Evaluator {
	return &Evaluator{reg: reg}
}

// CheckLucky reports whether candidate is the lucky token of round.
func (e *Evaluator) CheckLucky(round uint64, candidate string) (bool, error) {
	want, err := e.reg.ExpectedLucky(round)
	if err != nil {
		return false, err
	}
	return candidate == want, nil
}

// CheckColor reports whether candidate is the color token of round.
func (e *Evaluator) CheckColor(round uint64, candidate string) (bool, error) {
	want, err := e.reg.ExpectedColor(round)
	if err != nil {
		return false, err
	}
	return candidate == want, nil
}

// Check dispatches to CheckLucky or CheckColor by kind.
func (e *Evaluator) Check(kind Kind, round uint64, candidate string) (bool, error) {
	switch kind {
	case KindLucky:
		return e.CheckLucky(round, candidate)
	case KindColor:
		return e.CheckColor(round, candidate)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

// ParseCandidate decodes a raw JSON value into a candidate token.
// Only JSON strings are accepted; numbers, booleans, null, objects,
// arrays and missing values fail with ErrInvalidCandidate. So do invalid
// UTF-8 bytes and unpaired surrogate escapes, which encoding/json would
// otherwise decode to U+FFFD.
func ParseCandidate(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("%w: missing", ErrInvalidCandidate)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrInvalidCandidate)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCandidate, err)
	}
	if hasLoneSurrogate(raw) {
		return "", fmt.Errorf("%w: unpaired surrogate escape", ErrInvalidCandidate)
	}
	return s, nil
}

// hasLoneSurrogate reports whether a JSON string literal holds a \uXXXX
// surrogate escape that is not a high/low pair.
func hasLoneSurrogate(raw []byte) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}
		i++
		if i >= len(raw) || raw[i] != 'u' {
			continue
		}
		r, ok := hex4(raw, i+1)
		if !ok {
			return true
		}
		i += 4
		switch {
		case r >= 0xD800 && r <= 0xDBFF:
			if i+6 >= len(raw) || raw[i+1] != '\\' || raw[i+2] != 'u' {
				return true
			}
			lo, ok := hex4(raw, i+3)
			if !ok || lo < 0xDC00 || lo > 0xDFFF {
				return true
			}
			i += 6
		case r >= 0xDC00 && r <= 0xDFFF:
			return true
		}
	}
	return false
}

// hex4 parses the four hex digits starting at raw[i].
func hex4(raw []byte, i int) (uint64, bool) {
	if i+4 > len(raw) {
		return 0, false
	}
	n, err := strconv.ParseUint(string(raw[i:i+4]), 16, 32)
	return n, err == nil
}
