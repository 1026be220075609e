package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal bool
	UseColor   bool
}

// NewTerminal creates a new Terminal instance
func NewTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal && os.Getenv("NO_COLOR") == "",
	}
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// Success prints a green status line
func (t *Terminal) Success(format string, args ...any) {
	fmt.Println(t.Color(ColorGreen, fmt.Sprintf(format, args...)))
}

// Hint prints a gray follow-up hint
func (t *Terminal) Hint(format string, args ...any) {
	fmt.Println(t.Color(ColorGray, fmt.Sprintf(format, args...)))
}

// Warn prints a yellow warning line to stderr
func (t *Terminal) Warn(format string, args ...any) {
	fmt.Fprintln(os.Stderr, t.Color(ColorYellow, fmt.Sprintf(format, args...)))
}

// ScoreColor returns the color for a match score, using the same bands as
// the explanation intros
func ScoreColor(score int) string {
	switch {
	case score > 80:
		return ColorGreen
	case score > 60:
		return ColorCyan
	case score > 40:
		return ColorYellow
	default:
		return ColorGray
	}
}
