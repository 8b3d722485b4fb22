package link

import (
	"fmt"
	"strings"
)

// Mode selects how a patch is framed on the wire.
type Mode int

const (
	// ModePaced writes one byte at a time with a delay in between, for
	// receivers with a small ingestion buffer.
	ModePaced Mode = iota
	// ModeBlock writes the whole payload at once and flushes.
	ModeBlock
)

// String implements fmt.Stringer and flag.Value.
func (m Mode) String() string {
	switch m {
	case ModePaced:
		return "paced"
	case ModeBlock:
		return "block"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "paced", "single", "byte":
		return ModePaced, nil
	case "block":
		return ModeBlock, nil
	}
	return 0, fmt.Errorf("unknown transmission mode %q", s)
}

// Set implements flag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
