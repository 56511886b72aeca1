package traceback

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

var (
	goGoroutine = regexp.MustCompile(`(?m)^goroutine \d+ \[[^\]]+\]:\s*$`)
	goFileLine  = regexp.MustCompile(`^\t(.+?):(\d+)(?: \+0x[0-9a-f]+)?\s*$`)
)

// ParseGo extracts the frames of the first goroutine in a Go panic trace.
// Go prints the innermost frame first; the result is reversed so frames are
// outermost first like every other Traceback. Frames belonging to the panic
// machinery itself (runtime/debug.Stack, the recovering function, panic and
// runtime helpers such as runtime.panicdivide) are dropped.
func ParseGo(text string) *model.Traceback {
	tb := &model.Traceback{Text: text, Language: model.LanguageGo}

	loc := goGoroutine.FindStringIndex(text)
	if loc == nil {
		return tb
	}

	var frames []model.Frame
	var fn string
	sc := bufio.NewScanner(strings.NewReader(text[loc[1]:]))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			if len(frames) > 0 || fn != "" {
				break
			}
			continue
		}
		if m := goFileLine.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[2])
			frames = append(frames, model.Frame{File: m[1], Line: n, Function: fn})
			fn = ""
			continue
		}
		if strings.HasPrefix(line, "goroutine ") {
			break
		}
		fn = strings.TrimSpace(line)
	}

	frames = dropPanicFrames(frames)
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}
	tb.Frames = frames
	return tb
}

func dropPanicFrames(frames []model.Frame) []model.Frame {
	for i := len(frames) - 1; i >= 0; i-- {
		if isPanicCall(frames[i].Function) {
			frames = frames[i+1:]
			break
		}
	}
	for len(frames) > 1 && isRuntimeFrame(frames[0].Function) {
		frames = frames[1:]
	}
	return frames
}

func isPanicCall(fn string) bool {
	return strings.HasPrefix(fn, "panic(") || strings.HasPrefix(fn, "runtime.gopanic")
}

func isRuntimeFrame(fn string) bool {
	return strings.HasPrefix(fn, "runtime.") || strings.HasPrefix(fn, "runtime/debug.")
}
