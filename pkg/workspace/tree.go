package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxFilesPerType caps how many files of a non-source extension are
// listed per directory.
const DefaultMaxFilesPerType = 5

var ignoredDirs = map[string]bool{
	"venv": true, ".venv": true, "dist": true, "build": true, "__pycache__": true,
	"node_modules": true, ".next": true, "out": true, ".nuxt": true, "public": true,
	"jspm_packages": true, ".parcel-cache": true, ".vercel": true, "target": true,
	".gradle": true, ".mvn": true, "bin": true, "obj": true, "coverage": true,
	"vendor": true, "storage": true, "cache": true, ".git": true, ".idea": true,
	".vscode": true, ".DS_Store": true, "logs": true, "log": true, "tmp": true,
	"temp": true, ".angular": true, ".bundle": true, "htmlcov": true,
	".mypy_cache": true, ".pytest_cache": true,
}

// sourceExtensions are always listed in full.
var sourceExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".tsx": true, ".jsx": true, ".java": true,
	".cpp": true, ".c": true, ".h": true, ".hpp": true, ".go": true, ".rb": true,
	".rs": true, ".php": true, ".sh": true, ".pl": true, ".swift": true, ".kt": true,
	".kts": true, ".dart": true, ".scala": true, ".lua": true, ".r": true, ".jl": true,
	".cs": true, ".csx": true, ".m": true, ".mm": true, ".bat": true, ".cmd": true,
}

// TreeOptions controls CreateTree. A MaxDepth of zero or less means no limit.
type TreeOptions struct {
	MaxDepth        int
	MaxFilesPerType int
}

// CreateTree renders the directory tree under root, directories first:
//
//	├── pkg
//	│   └── main.go
//	└── README.md
func CreateTree(root string, opts TreeOptions) (string, error) {
	if opts.MaxFilesPerType <= 0 {
		opts.MaxFilesPerType = DefaultMaxFilesPerType
	}
	var b strings.Builder
	if err := writeTree(&b, root, "", 1, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

type treeEntry struct {
	name  string
	isDir bool
}

func writeTree(b *strings.Builder, dir, prefix string, depth int, opts TreeOptions) error {
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var dirs []treeEntry
	byExt := make(map[string][]string)
	var exts []string
	for _, e := range entries {
		if e.IsDir() {
			if !ignoredDirs[e.Name()] {
				dirs = append(dirs, treeEntry{name: e.Name(), isDir: true})
			}
			continue
		}
		ext := filepath.Ext(e.Name())
		if _, ok := byExt[ext]; !ok {
			exts = append(exts, ext)
		}
		byExt[ext] = append(byExt[ext], e.Name())
	}
	sort.Strings(exts)

	display := dirs
	for _, ext := range exts {
		names := byExt[ext]
		sort.Strings(names)
		if sourceExtensions[ext] || len(names) <= opts.MaxFilesPerType {
			for _, n := range names {
				display = append(display, treeEntry{name: n})
			}
			continue
		}
		for _, n := range names[:opts.MaxFilesPerType] {
			display = append(display, treeEntry{name: n})
		}
		label := ext
		if label == "" {
			label = "extensionless"
		}
		display = append(display, treeEntry{
			name: fmt.Sprintf("... (%d more %s files omitted)", len(names)-opts.MaxFilesPerType, label),
		})
	}

	for i, e := range display {
		last := i == len(display)-1
		connector, childPrefix := "├── ", "│   "
		if last {
			connector, childPrefix = "└── ", "    "
		}
		b.WriteString(prefix + connector + e.name + "\n")
		if e.isDir {
			if err := writeTree(b, filepath.Join(dir, e.name), prefix+childPrefix, depth+1, opts); err != nil {
				return err
			}
		}
	}
	return nil
}
