package domain

import (
	"fmt"
	"sort"
	"strings"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", newValidationError("theme", fmt.Sprintf("unknown theme %q", raw))
	}
}

// Snapshot is the whole local document: the unit of persistence and of
// merge. A zero Theme means "not set", which only remote snapshots use.
type Snapshot struct {
	Sessions []Session `json:"sessions"`
	Sections Sections  `json:"sections"`
	Theme    Theme     `json:"theme"`
}

func DefaultSnapshot() Snapshot {
	return Snapshot{
		Sessions: []Session{},
		Sections: Sections{},
		Theme:    ThemeLight,
	}
}

// Normalize drops duplicate session ids and sections, fills nil slices and
// an unknown theme. Used on everything read from disk or the network.
func (s Snapshot) Normalize() Snapshot {
	out := Snapshot{
		Sessions: dedupeSessions(s.Sessions),
		Sections: Sections{}.Union(s.Sections),
		Theme:    s.Theme,
	}
	if len(out.Sections) > MaxSections {
		out.Sections = out.Sections[:MaxSections]
	}
	if _, err := ParseTheme(string(out.Theme)); err != nil {
		out.Theme = ThemeLight
	}
	return out
}

func (s Snapshot) HasSession(id string) bool {
	for _, session := range s.Sessions {
		if session.ID == id {
			return true
		}
	}
	return false
}

// AddSession appends a session unless its id is already present.
func (s Snapshot) AddSession(session Session) Snapshot {
	if s.HasSession(session.ID) {
		return s
	}
	sessions := make([]Session, 0, len(s.Sessions)+1)
	sessions = append(sessions, s.Sessions...)
	s.Sessions = append(sessions, session)
	return s
}

// Merge combines the local snapshot with a remote one:
// sessions are unioned by id and sorted by timestamp ascending, sections
// keep local order followed by novel remote names (capped at MaxSections),
// and the remote theme wins when the remote has one.
func Merge(local, remote Snapshot) Snapshot {
	combined := make([]Session, 0, len(local.Sessions)+len(remote.Sessions))
	combined = append(combined, local.Sessions...)
	combined = append(combined, remote.Sessions...)
	sessions := dedupeSessions(combined)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Timestamp < sessions[j].Timestamp
	})

	sections := local.Sections.Union(remote.Sections)
	if len(sections) > MaxSections {
		sections = sections[:MaxSections]
	}

	theme := local.Theme
	if remote.Theme != "" {
		theme = remote.Theme
	}

	return Snapshot{Sessions: sessions, Sections: sections, Theme: theme}.Normalize()
}

func dedupeSessions(in []Session) []Session {
	out := make([]Session, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, session := range in {
		if _, ok := seen[session.ID]; ok {
			continue
		}
		seen[session.ID] = struct{}{}
		out = append(out, session)
	}
	return out
}
