package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the stencil banner and version to w in the given profile.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text  string
		color string
	}{
		{"     _                  _ _ ", "#818cf8"},
		{" ___| |_ ___ _ __   ___(_) |", "#a78bfa"},
		{"/ __| __/ _ \\ '_ \\ / __| | |", "#c084fc"},
		{"\\__ \\ ||  __/ | | | (__| | |", "#e879f9"},
		{"|___/\\__\\___|_| |_|\\___|_|_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  v"+strings.TrimSpace(version)).Foreground(p.Color("#fb7185")).Faint())
	fmt.Fprintln(w)
}
