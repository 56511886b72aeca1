// Package builder scaffolds a new project from a plain-language description.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/helmcode/scriptmonkey/pkg/llm"
	"github.com/helmcode/scriptmonkey/pkg/model"
	"github.com/helmcode/scriptmonkey/pkg/parser"
	"github.com/helmcode/scriptmonkey/pkg/prompts"
)

const (
	DefaultBaseDir = "./generated_project"
	structureName  = "project_structure"
	readmeFile     = "README.md"
)

// ErrPathEscapes is returned for a manifest entry that resolves outside the
// base directory.
var ErrPathEscapes = errors.New("path escapes the project directory")

type Builder struct {
	llm         llm.LLM
	baseDir     string
	concurrency int
	out         io.Writer
	mu          sync.Mutex
}

type Option func(*Builder)

func WithBaseDir(dir string) Option {
	return func(b *Builder) { b.baseDir = dir }
}

// WithConcurrency sets how many files are generated at once. Values below
// one mean sequential.
func WithConcurrency(n int) Option {
	return func(b *Builder) { b.concurrency = n }
}

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(b *Builder) { b.out = w }
}

func New(client llm.LLM, opts ...Option) *Builder {
	b := &Builder{
		llm:         client,
		baseDir:     DefaultBaseDir,
		concurrency: 1,
		out:         os.Stdout,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.concurrency < 1 {
		b.concurrency = 1
	}
	return b
}

func (b *Builder) BaseDir() string {
	return b.baseDir
}

// GenerateStructure asks for the manifest of files and directories.
func (b *Builder) GenerateStructure(ctx context.Context, description string) (*model.ProjectStructure, error) {
	var structure model.ProjectStructure
	if err := b.llm.ChatJSON(ctx, prompts.ProjectStructureInstructions, description, structureName, &structure); err != nil {
		return nil, fmt.Errorf("generate project structure: %w", err)
	}
	if len(structure.Files) == 0 {
		return nil, errors.New("generate project structure: the model returned no files")
	}
	return &structure, nil
}

// Build creates every directory of the manifest and generates every file
// that does not exist yet. Existing files are left alone.
func (b *Builder) Build(ctx context.Context, structure *model.ProjectStructure, description string) error {
	var pending []model.ProjectFile
	for _, f := range structure.Files {
		target, err := b.resolve(f.Path)
		if err != nil {
			return err
		}

		if f.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			b.printf("🐒 ScriptMonkey created directory: %s\n", target)
			continue
		}

		if _, err := os.Stat(target); err == nil {
			b.printf("File already exists, skipping: %s\n", target)
			continue
		}
		pending = append(pending, f)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for _, f := range pending {
		g.Go(func() error {
			return b.buildFile(ctx, f, description, structure.Files)
		})
	}
	return g.Wait()
}

func (b *Builder) buildFile(ctx context.Context, f model.ProjectFile, description string, files []model.ProjectFile) error {
	target, err := b.resolve(f.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", target, err)
	}

	log.WithField("file", f.Path).Debug("generating file content")
	content, err := b.llm.Chat(ctx, prompts.BuildFilePrompt(f, description, files))
	if err != nil {
		return fmt.Errorf("generate %s: %w", f.Path, err)
	}

	if err := os.WriteFile(target, []byte(parser.RemoveFenceLines(content)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	b.printf("🐒 ScriptMonkey created file with generated content at: '%s'.\n", target)
	return nil
}

// GenerateReadme writes README.md at the root of the project and returns its
// path.
func (b *Builder) GenerateReadme(ctx context.Context, description string, structure *model.ProjectStructure) (string, error) {
	prompt, err := prompts.BuildReadmePrompt(description, structure)
	if err != nil {
		return "", err
	}
	content, err := b.llm.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate README: %w", err)
	}

	if err := os.MkdirAll(b.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", b.baseDir, err)
	}
	path := filepath.Join(b.baseDir, readmeFile)
	if err := os.WriteFile(path, []byte(parser.StripFences(content)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// resolve maps a manifest path to a location under the base directory.
func (b *Builder) resolve(path string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(strings.TrimLeft(path, "/")))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %q", ErrPathEscapes, path)
	}
	return filepath.Join(b.baseDir, rel), nil
}

func (b *Builder) printf(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(b.out, format, args...)
}
