package parser

import (
	"regexp"
	"strings"
)

// fenceLine matches a markdown code-block delimiter line: three or more
// backticks, optionally followed (with or without a space) by a language tag
// such as "python" or "c++".
var fenceLine = regexp.MustCompile("^\\s*`{3,}\\s*[\\w.+#-]*\\s*$")

// IsFenceLine reports whether line is a code-fence delimiter.
func IsFenceLine(line string) bool {
	return fenceLine.MatchString(strings.TrimRight(line, "\r\n"))
}

// StripFences removes a leading opening fence line and a trailing closing
// fence line from text. Text between them is returned verbatim, including
// its trailing newline. Text without an outer fence is returned unchanged.
func StripFences(text string) string {
	lines := strings.SplitAfter(text, "\n")

	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	if first < len(lines) && IsFenceLine(lines[first]) {
		lines = lines[first+1:]
	}

	last := len(lines) - 1
	for last >= 0 && strings.TrimSpace(lines[last]) == "" {
		last--
	}
	if last >= 0 && IsFenceLine(lines[last]) {
		lines = lines[:last]
	}

	return strings.Join(lines, "")
}

// ContainsFence reports whether any line of text is a fence delimiter.
func ContainsFence(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if IsFenceLine(line) {
			return true
		}
	}
	return false
}

// RemoveFenceLines drops every line containing a triple backtick. Generated
// files are asked to come back unfenced, so any such line is noise.
func RemoveFenceLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
