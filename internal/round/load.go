// internal/round/load.go
//
// Text loaders for the round table.
//
// Format, one round per line:
//
//	<index> <lucky> <color>
//
// Fields are whitespace separated, "-" leaves a slot unset, and blank
// lines or lines starting with '#' are ignored. A lucky token that is a
// literal "-" is written `\-`; any other field is taken verbatim.

package round

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/robalobadob/luckygame/apps/go-server/assets"
)

const (
	unset       = "-"
	escapedDash = `\-`
)

// Parse reads a round table and builds a Registry from it.
func Parse(r io.Reader) (*Registry, error) {
	rounds, err := parseLines(r)
	if err != nil {
		return nil, err
	}
	return New(rounds)
}

// LoadFile parses the round table at path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Default returns the registry built from the embedded round table.
func Default() (*Registry, error) {
	f, err := assets.Rounds()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func parseLines(r io.Reader) (map[uint64]Round, error) {
	out := make(map[uint64]Round)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: %w: want 3 fields, got %d", line, ErrInvalidRound, len(fields))
		}
		idx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: index %q", line, ErrInvalidRound, fields[0])
		}
		if _, dup := out[idx]; dup {
			return nil, fmt.Errorf("line %d: %w: duplicate index %d", line, ErrInvalidRound, idx)
		}
		out[idx] = Round{Lucky: slot(fields[1]), Color: slot(fields[2])}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func slot(s string) string {
	switch s {
	case unset:
		return ""
	case escapedDash:
		return unset
	}
	return s
}
