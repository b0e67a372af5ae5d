package domain

import (
	"fmt"
	"strings"
)

const MaxSections = 20

// SectionPalette holds the chart colors assigned by section position.
var SectionPalette = [MaxSections]string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6",
	"#ec4899", "#06b6d4", "#84cc16", "#f97316", "#6366f1",
	"#14b8a6", "#e11d48", "#22c55e", "#eab308", "#a855f7",
	"#0ea5e9", "#d946ef", "#65a30d", "#fb7185", "#2dd4bf",
}

type Sections []string

func (s Sections) Index(name string) int {
	for i, existing := range s {
		if existing == name {
			return i
		}
	}
	return -1
}

func (s Sections) Contains(name string) bool {
	return s.Index(name) >= 0
}

// Add returns a copy with the trimmed name appended.
func (s Sections) Add(name string) (Sections, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return s, newValidationError("section", "name is required")
	}
	if len(s) >= MaxSections {
		return s, newValidationError("section", fmt.Sprintf("at most %d sections are allowed", MaxSections))
	}
	if s.Contains(trimmed) {
		return s, newValidationError("section", fmt.Sprintf("%q already exists", trimmed))
	}

	out := make(Sections, 0, len(s)+1)
	out = append(out, s...)
	return append(out, trimmed), nil
}

func (s Sections) Remove(name string) (Sections, error) {
	idx := s.Index(name)
	if idx < 0 {
		return s, fmt.Errorf("%w: %q", ErrSectionNotFound, name)
	}

	out := make(Sections, 0, len(s)-1)
	out = append(out, s[:idx]...)
	return append(out, s[idx+1:]...), nil
}

// ColorFor picks the palette entry for a section, falling back to the
// caller's position when the section is no longer listed.
func (s Sections) ColorFor(name string, fallback int) string {
	if idx := s.Index(name); idx >= 0 {
		return SectionPalette[idx%MaxSections]
	}
	if fallback < 0 {
		fallback = -fallback
	}
	return SectionPalette[fallback%MaxSections]
}

// Union keeps s in order and appends entries of other not yet present.
func (s Sections) Union(other Sections) Sections {
	out := make(Sections, 0, len(s)+len(other))
	seen := make(map[string]struct{}, len(s)+len(other))
	for _, list := range []Sections{s, other} {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
