package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the romandfa ASCII banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	lines := []struct{ text, color string }{
		{" ___  ___  __  __   _   _  _ ", "#fcd34d"},
		{"| _ \\/ _ \\|  \\/  | /_\\ | \\| |", "#fbbf24"},
		{"|   / (_) | |\\/| |/ _ \\| .` |", "#f59e0b"},
		{"|_|_\\\\___/|_|  |_/_/ \\_\\_|\\_|", "#d97706"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  DFA numeral checker "+version).Faint())
	fmt.Fprintln(w)
}
