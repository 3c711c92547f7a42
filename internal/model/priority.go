package model

import (
	"fmt"
	"strings"
)

// Priority is the urgency level of a task draft. Values are ordered Low < Med < High.
type Priority int

const (
	Low Priority = iota
	Med
	High
)

// Priorities lists every priority level in ascending order.
var Priorities = []Priority{Low, Med, High}

func (p Priority) String() string {
	switch p {
	case Low:
		return "Low"
	case Med:
		return "Med"
	case High:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Valid reports whether p is one of Low, Med or High.
func (p Priority) Valid() bool {
	return p >= Low && p <= High
}

// ParsePriority converts "Low", "Med" or "High" to a Priority.
// Matching is case-insensitive and accepts "medium" for Med.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "med", "medium":
		return Med, nil
	case "high":
		return High, nil
	default:
		return Med, fmt.Errorf("unknown priority %q", s)
	}
}

func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
