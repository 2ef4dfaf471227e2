package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for UI affordances (bullets, badges,
// arrows). This helps on terminals/fonts that don't render some glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("LABPLAN_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

// glyphOverdue marks tasks whose due date has passed.
func glyphOverdue() string {
	return "!"
}

// glyphWaiting marks waiting-for-response tasks.
func glyphWaiting() string {
	if glyphs() == glyphSetASCII {
		return "~"
	}
	return "⧖"
}

// glyphReminder marks tasks with a pending reminder.
func glyphReminder() string {
	if glyphs() == glyphSetASCII {
		return "@"
	}
	return "♪"
}

// glyphSubtasks marks tasks with open subtasks.
func glyphSubtasks() string {
	if glyphs() == glyphSetASCII {
		return "+"
	}
	return "▣"
}

// glyphGrab marks the task currently held by a grab-to-reschedule gesture.
func glyphGrab() string {
	if glyphs() == glyphSetASCII {
		return "#"
	}
	return "✥"
}
