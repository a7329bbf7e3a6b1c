package tui

import (
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

var (
	profileCache  sync.Map
	knownProfiles = map[string]termenv.Profile{
		"dumb":           termenv.Ascii,
		"ansi":           termenv.ANSI,
		"linux":          termenv.ANSI,
		"xterm":          termenv.ANSI,
		"xterm-256color": termenv.ANSI256,
		"screen":         termenv.ANSI,
		"tmux":           termenv.ANSI256,
		"vt100":          termenv.ANSI,
		"xterm-kitty":    termenv.TrueColor,
		"wezterm":        termenv.TrueColor,
		"alacritty":      termenv.TrueColor,
	}
)

// ProfileForTerm maps a session's TERM and COLORTERM values to the color
// profile used to paint the heart. COLORTERM=truecolor or 24bit upgrades any
// color-capable terminal.
func ProfileForTerm(term, colorTerm string) termenv.Profile {
	profile := detectProfile(term)
	if profile == termenv.Ascii {
		return profile
	}
	switch strings.ToLower(strings.TrimSpace(colorTerm)) {
	case "truecolor", "24bit":
		return termenv.TrueColor
	}
	return profile
}

func detectProfile(term string) termenv.Profile {
	norm := strings.ToLower(strings.TrimSpace(term))
	if cached, ok := profileCache.Load(norm); ok {
		return cached.(termenv.Profile)
	}

	profile := detectProfileUncached(norm)
	profileCache.Store(norm, profile)
	return profile
}

func detectProfileUncached(norm string) termenv.Profile {
	if norm == "" || strings.Contains(norm, "dumb") {
		return termenv.Ascii
	}
	if p, ok := knownProfiles[norm]; ok {
		return p
	}

	switch {
	case strings.Contains(norm, "truecolor"), strings.Contains(norm, "24bit"), strings.Contains(norm, "kitty"), strings.Contains(norm, "wezterm"):
		return termenv.TrueColor
	case strings.Contains(norm, "256"):
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}
