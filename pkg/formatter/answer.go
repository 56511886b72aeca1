package formatter

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

var codeBlock = regexp.MustCompile("(?s)```([\\w.+#-]*)\\n(.*?)```")

var (
	codeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	langStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// RenderAnswer prints a markdown reply. Fenced code blocks are drawn in a
// bordered box labelled with their language; prose is wrapped.
func RenderAnswer(w io.Writer, answer string) {
	rule(w, "🐒 ANSWER 🐒")

	last := 0
	for _, m := range codeBlock.FindAllStringSubmatchIndex(answer, -1) {
		if m[0] > last {
			renderProse(w, answer[last:m[0]])
		}
		lang := answer[m[2]:m[3]]
		if lang == "" {
			lang = "text"
		}
		code := strings.TrimRight(answer[m[4]:m[5]], "\n")
		fmt.Fprintln(w, langStyle.Render(lang))
		fmt.Fprintln(w, codeStyle.Render(code))
		last = m[1]
	}
	if last < len(answer) {
		renderProse(w, answer[last:])
	}

	fmt.Fprintln(w)
	rule(w, "")
}

func renderProse(w io.Writer, text string) {
	bold := color.New(color.Bold)
	for _, line := range strings.Split(strings.Trim(text, "\n"), "\n") {
		if strings.HasPrefix(line, "#") {
			bold.Fprintln(w, strings.TrimSpace(strings.TrimLeft(line, "#")))
			continue
		}
		fmt.Fprintln(w, wrapText(line, 100, ""))
	}
}

func rule(w io.Writer, title string) {
	const width = 80
	if title == "" {
		fmt.Fprintln(w, strings.Repeat("─", width))
		return
	}
	side := (width - lipgloss.Width(title) - 2) / 2
	if side < 0 {
		side = 0
	}
	fmt.Fprintf(w, "%s %s %s\n", strings.Repeat("─", side), title, strings.Repeat("─", side))
}
