package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerGradient = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// PrintBanner outputs the dashboard header followed by the flow title.
func PrintBanner(w io.Writer, title string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	lines := []string{
		"   ___  _       _____      _ _ ",
		"  / _ \\(_)     / ____|    | | |",
		" | |_| |_ ___ | |     __ _| | |",
		" |  _  | |___|| |    / _` | | |",
		" | | | | |    | |___| (_| | | |",
		" |_| |_|_|     \\_____\\__,_|_|_|",
	}

	fmt.Fprintln(w)
	for i, line := range lines {
		color := bannerGradient[i%len(bannerGradient)]
		fmt.Fprintln(w, out.String(line).Foreground(p.Color(color)))
	}
	if title != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, out.String(" "+title).Bold())
		fmt.Fprintln(w, " "+strings.Repeat("─", len([]rune(title))))
	}
	fmt.Fprintln(w)
}
