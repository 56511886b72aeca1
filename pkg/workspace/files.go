// Package workspace reads project files and renders them as context for a
// model or the clipboard.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

const bundleSeparator = "- - - - - - - - - -"

// ReadDocuments reads each path in order. Files that cannot be read are
// logged and skipped; the returned slice holds only what was read.
func ReadDocuments(paths []string) []model.Document {
	docs := make([]model.Document, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Warnf("%s not found, skipping this file", path)
			} else {
				log.WithError(err).Warnf("error reading %s, skipping this file", path)
			}
			continue
		}
		docs = append(docs, model.Document{Path: path, Content: string(content)})
	}
	return docs
}

// Bundle formats documents and an optional directory tree for pasting into
// a chat window.
func Bundle(docs []model.Document, tree string) string {
	var b strings.Builder
	b.WriteString(bundleSeparator + "\nHere are some details about the project.\n\n")
	for _, d := range docs {
		fmt.Fprintf(&b, "# %s\n%s\n\n%s\n", d.Path, d.Content, bundleSeparator)
	}
	if tree != "" {
		fmt.Fprintf(&b, "%s\n\n# PROJECT TREE\n%s\n\n", bundleSeparator, tree)
	}
	return b.String()
}
