package traceback

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

const pythonHeader = "Traceback (most recent call last):"

// Frames of exception groups (Python 3.11+) are indented behind a "  | "
// gutter, and their boxes are drawn with + and -.
const pythonGutter = " \t|+-"

var pythonFrame = regexp.MustCompile(`(?m)^[ \t|+-]*File "(.+)", line (\d+)(?:, in (.+?))?\s*$`)

// ParsePython extracts the frames of a Python traceback in text order, which
// Python already prints outermost first. Chained exceptions contribute their
// frames in order, so the last frame belongs to the exception that ended the
// process.
func ParsePython(text string) *model.Traceback {
	tb := &model.Traceback{Text: text, Language: model.LanguagePython}

	for _, m := range pythonFrame.FindAllStringSubmatch(text, -1) {
		line, _ := strconv.Atoi(m[2])
		tb.Frames = append(tb.Frames, model.Frame{
			File:     m[1],
			Line:     line,
			Function: m[3],
		})
	}

	tb.Interrupt = isPythonInterrupt(text)
	return tb
}

func isPythonInterrupt(text string) bool {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		last := strings.TrimSpace(strings.TrimLeft(lines[i], pythonGutter))
		if last == "" {
			continue
		}
		return last == "KeyboardInterrupt" || strings.HasPrefix(last, "KeyboardInterrupt:")
	}
	return false
}
