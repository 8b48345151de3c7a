// internal/round/round.go
//
// Round registry for the lucky game.
// Defines:
//   - Round: the expected lucky token and color token for one round index.
//   - Registry: an immutable index -> Round lookup built once at startup.
//
// The registry is never mutated after New returns, so lookups are safe
// from any number of goroutines without locking.

package round

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownRound is returned when a round index has no value registered
	// for the requested kind.
	ErrUnknownRound = errors.New("unknown round")

	// ErrInvalidRound is returned by New and the loaders for bad configuration.
	ErrInvalidRound = errors.New("invalid round")
)

// palette is the closed set of color tokens a round may be configured with.
var palette = []string{"red", "green", "blue", "yellow", "orange", "purple", "black", "white"}

// Palette returns a copy of the allowed color tokens.
func Palette() []string {
	return append([]string(nil), palette...)
}

// Round holds the winning values for one round. An empty field means the
// round has no expected value of that kind.
type Round struct {
	Lucky string `json:"lucky,omitempty"`
	Color string `json:"color,omitempty"`
}

// Registry maps round indices to their expected values.
type Registry struct {
	rounds map[uint64]Round
}

// New validates rounds and returns a Registry holding a private copy.
func New(rounds map[uint64]Round) (*Registry, error) {
	m := make(map[uint64]Round, len(rounds))
	for idx, r := range rounds {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("round %d: %w", idx, err)
		}
		m[idx] = r
	}
	return &Registry{rounds: m}, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(rounds map[uint64]Round) *Registry {
	reg, err := New(rounds)
	if err != nil {
		panic(err)
	}
	return reg
}

// ExpectedLucky returns the lucky token configured for round.
func (r *Registry) ExpectedLucky(round uint64) (string, error) {
	rd, ok := r.rounds[round]
	if !ok || rd.Lucky == "" {
		return "", fmt.Errorf("lucky token for round %d: %w", round, ErrUnknownRound)
	}
	return rd.Lucky, nil
}

// ExpectedColor returns the color token configured for round.
func (r *Registry) ExpectedColor(round uint64) (string, error) {
	rd, ok := r.rounds[round]
	if !ok || rd.Color == "" {
		return "", fmt.Errorf("color token for round %d: %w", round, ErrUnknownRound)
	}
	return rd.Color, nil
}

// Lookup returns the full Round for an index.
func (r *Registry) Lookup(round uint64) (Round, bool) {
	rd, ok := r.rounds[round]
	return rd, ok
}

// Len reports how many rounds are registered.
func (r *Registry) Len() int { return len(r.rounds) }

// Indices returns the registered round indices in ascending order.
func (r *Registry) Indices() []uint64 {
	out := make([]uint64, 0, len(r.rounds))
	for idx := range r.rounds {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsPaletteColor reports whether c is one of the palette tokens (case-sensitive).
func IsPaletteColor(c string) bool {
	for _, p := range palette {
		if p == c {
			return true
		}
	}
	return false
}

func (r Round) validate() error {
	if r.Lucky == "" && r.Color == "" {
		return fmt.Errorf("%w: no lucky or color token", ErrInvalidRound)
	}
	if r.Lucky != "" && strings.TrimSpace(r.Lucky) != r.Lucky {
		return fmt.Errorf("%w: lucky token %q has surrounding whitespace", ErrInvalidRound, r.Lucky)
	}
	if r.Color != "" && !IsPaletteColor(r.Color) {
		return fmt.Errorf("%w: color %q not in palette", ErrInvalidRound, r.Color)
	}
	return nil
}
