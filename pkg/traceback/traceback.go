// Package traceback turns crash output captured from a process into a
// model.Traceback. Python tracebacks and Go panic traces are understood.
package traceback

import (
	"strings"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

// Parse detects the format of text and parses it. Text in an unknown format
// yields a Traceback with no frames.
func Parse(text string) *model.Traceback {
	switch Detect(text) {
	case model.LanguagePython:
		return ParsePython(text)
	case model.LanguageGo:
		return ParseGo(text)
	default:
		return &model.Traceback{Text: text, Language: model.LanguageUnknown}
	}
}

// Detect guesses which runtime produced text.
func Detect(text string) model.Language {
	if strings.Contains(text, pythonHeader) || pythonFrame.MatchString(text) {
		return model.LanguagePython
	}
	if goGoroutine.MatchString(text) || strings.HasPrefix(strings.TrimSpace(text), "panic: ") {
		return model.LanguageGo
	}
	return model.LanguageUnknown
}
