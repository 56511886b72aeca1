// Package crash turns an uncaught failure into a patched source file.
//
// A Go program installs the boundary once in main:
//
//	ic := crash.Install(client)
//	defer ic.Recover()
//
// A panic that reaches main is then handled by sending the file of the
// deepest frame, the traceback and a platform banner to the completion
// service and overwriting that file with the corrected code. Tracebacks
// captured from other processes go through Handle directly.
package crash

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/helmcode/scriptmonkey/pkg/formatter"
	"github.com/helmcode/scriptmonkey/pkg/llm"
	"github.com/helmcode/scriptmonkey/pkg/model"
	"github.com/helmcode/scriptmonkey/pkg/parser"
	"github.com/helmcode/scriptmonkey/pkg/prompts"
	"github.com/helmcode/scriptmonkey/pkg/traceback"
	"github.com/helmcode/scriptmonkey/pkg/ui"
)

// patchSchemaName names the structured reply in requests.
const patchSchemaName = "scriptmonkey_patch"

// Interceptor handles crashes. Build one with New or Install.
type Interceptor struct {
	llm      llm.LLM
	selector FrameSelector
	out      io.Writer
	format   string
	banner   func() string
	spin     func(msg string, fn func() error) error

	// fallback receives interrupts caught by Recover; exit ends the process
	// after a panic has been handled.
	fallback func(r any)
	exit     func(code int)

	echoTraceback bool
	dryRun        bool
	backup        bool
}

type Option func(*Interceptor)

// WithSelector replaces the LastFrame heuristic.
func WithSelector(s FrameSelector) Option {
	return func(ic *Interceptor) { ic.selector = s }
}

// WithOutput sets where problem, solution and status lines are printed.
func WithOutput(w io.Writer) Option {
	return func(ic *Interceptor) { ic.out = w }
}

// WithFormat selects human, json or yaml output for the patch.
func WithFormat(format string) Option {
	return func(ic *Interceptor) { ic.format = format }
}

// WithFallback sets the handler interrupts are delegated to by Recover.
// The default re-panics with the original value.
func WithFallback(fn func(r any)) Option {
	return func(ic *Interceptor) { ic.fallback = fn }
}

// WithExit sets how Recover ends the process after handling a panic.
func WithExit(fn func(code int)) Option {
	return func(ic *Interceptor) { ic.exit = fn }
}

// WithBanner overrides the platform banner.
func WithBanner(fn func() string) Option {
	return func(ic *Interceptor) { ic.banner = fn }
}

// WithoutSpinner disables the progress spinner.
func WithoutSpinner() Option {
	return func(ic *Interceptor) {
		ic.spin = func(_ string, fn func() error) error { return fn() }
	}
}

// WithEchoTraceback prints the traceback before handling it. Use it when
// nothing else has shown the crash to the user yet.
func WithEchoTraceback(echo bool) Option {
	return func(ic *Interceptor) { ic.echoTraceback = echo }
}

// WithDryRun prints the patch without writing the file.
func WithDryRun(dryRun bool) Option {
	return func(ic *Interceptor) { ic.dryRun = dryRun }
}

// WithBackup keeps the original file as <path>.orig before overwriting it.
func WithBackup(backup bool) Option {
	return func(ic *Interceptor) { ic.backup = backup }
}

func New(client llm.LLM, opts ...Option) *Interceptor {
	ic := &Interceptor{
		llm:      client,
		selector: LastFrame,
		out:      os.Stderr,
		format:   formatter.FormatHuman,
		banner:   PlatformBanner,
		spin:     ui.Spin,
		fallback: func(r any) { panic(r) },
		exit:     os.Exit,
	}
	for _, opt := range opts {
		opt(ic)
	}
	return ic
}

var installed *Interceptor

// Install builds an Interceptor with tracebacks echoed and makes it the
// process default used by the package-level Recover. Installing again
// replaces the previous default.
func Install(client llm.LLM, opts ...Option) *Interceptor {
	opts = append([]Option{WithEchoTraceback(true)}, opts...)
	installed = New(client, opts...)
	return installed
}

// Recover is the package-level boundary for the Interceptor set by Install:
//
//	defer crash.Recover()
func Recover() {
	r := recover()
	if r == nil {
		return
	}
	if installed == nil {
		panic(r)
	}
	installed.HandlePanic(r, debug.Stack())
}

// Recover must be deferred directly by main (or by the top of a goroutine).
func (ic *Interceptor) Recover() {
	r := recover()
	if r == nil {
		return
	}
	ic.HandlePanic(r, debug.Stack())
}

// HandlePanic handles a recovered panic value r with the stack captured at
// the recovery point. Interrupts go to the fallback untouched. When the
// crash cannot be handled, it panics again with an error describing both
// failures. Otherwise the process exits with status 2, as an unrecovered
// panic would.
func (ic *Interceptor) HandlePanic(r any, stack []byte) {
	if IsInterrupt(r) {
		ic.fallback(r)
		return
	}

	tb := traceback.ParseGo(fmt.Sprintf("panic: %v\n\n%s", r, stack))
	if _, err := ic.Handle(context.Background(), tb); err != nil {
		panic(fmt.Errorf("scriptmonkey could not handle panic %q: %w", fmt.Sprint(r), err))
	}
	ic.exit(2)
}

// Handle repairs the file of the frame chosen by the selector. An
// interrupt returns ErrInterrupted before any file is read or any request
// is made; the caller delegates it to its default handling.
func (ic *Interceptor) Handle(ctx context.Context, tb *model.Traceback) (*model.PatchResult, error) {
	if tb.Interrupt {
		return nil, ErrInterrupted
	}

	if ic.echoTraceback {
		color.New(color.FgRed, color.Bold).Fprintln(ic.out, "\n🐒 ScriptMonkey Detected an Error:")
		fmt.Fprintln(ic.out, strings.TrimRight(tb.Text, "\n"))
		fmt.Fprintln(ic.out)
	}

	frame, err := ic.selector(tb)
	if err != nil {
		return nil, err
	}

	report, err := ic.Capture(tb, frame)
	if err != nil {
		return nil, err
	}
	logger := log.WithFields(log.Fields{"report": report.ID, "file": report.FilePath, "line": frame.Line})
	logger.Debug("captured crash report")

	result, err := ic.RequestPatch(ctx, report)
	if err != nil {
		logger.WithError(err).Debug("patch request failed")
		return nil, err
	}

	if _, err := CleanCode(result.CorrectedCode); err != nil {
		logger.WithError(err).Debug("patch rejected")
		return nil, err
	}

	if err := formatter.DisplayPatch(ic.out, result, ic.format); err != nil {
		return nil, err
	}

	if err := ic.Apply(report, result); err != nil {
		return nil, err
	}
	logger.Debug("patch applied")
	return result, nil
}

// Capture reads the frame's file and assembles the CrashReport.
func (ic *Interceptor) Capture(tb *model.Traceback, frame model.Frame) (*model.CrashReport, error) {
	src, err := os.ReadFile(frame.File)
	if err != nil {
		return nil, &FileAccessError{Op: "read", Path: frame.File, Err: err}
	}
	return &model.CrashReport{
		ID:             uuid.NewString(),
		FilePath:       frame.File,
		TracebackText:  tb.Text,
		SourceSnapshot: string(src),
		PlatformBanner: ic.banner(),
	}, nil
}

// RequestPatch asks the completion service for a PatchResult. It blocks
// until the service answers or fails; any timeout belongs to the client.
func (ic *Interceptor) RequestPatch(ctx context.Context, report *model.CrashReport) (*model.PatchResult, error) {
	content := prompts.BuildFixContent(report.PlatformBanner, report.SourceSnapshot, report.TracebackText)

	var result model.PatchResult
	err := ic.spin("🐒 ScriptMonkey is working on a solution", func() error {
		return ic.llm.ChatJSON(ctx, prompts.FixErrorInstructions, content, patchSchemaName, &result)
	})
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	return &result, nil
}

// Apply strips code fences from the corrected code and replaces the whole
// file with it.
func (ic *Interceptor) Apply(report *model.CrashReport, result *model.PatchResult) error {
	code, err := CleanCode(result.CorrectedCode)
	if err != nil {
		return err
	}

	if ic.dryRun {
		fmt.Fprintf(ic.out, "🐒 Dry run, '%s' was not changed. Corrected code:\n%s\n", report.FilePath, code)
		return nil
	}

	if ic.backup {
		backupPath := report.FilePath + ".orig"
		if err := os.WriteFile(backupPath, []byte(report.SourceSnapshot), 0o644); err != nil {
			return &FileAccessError{Op: "backup", Path: backupPath, Err: err}
		}
		fmt.Fprintf(ic.out, "🐒 Original code saved at: '%s'.\n", backupPath)
	}

	if err := os.WriteFile(report.FilePath, []byte(code), 0o644); err != nil {
		return &FileAccessError{Op: "write", Path: report.FilePath, Err: err}
	}
	color.New(color.FgGreen).Fprintf(ic.out, "🐒 ScriptMonkey automatically fixed your code at: '%s'.\n", report.FilePath)
	return nil
}

// CleanCode removes the outer code fence of corrected code and rejects
// results that cannot be written as a source file.
func CleanCode(corrected string) (string, error) {
	code := parser.StripFences(corrected)
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: corrected code is empty", ErrMalformedPatch)
	}
	if parser.ContainsFence(code) {
		return "", fmt.Errorf("%w: corrected code still contains code fences", ErrMalformedPatch)
	}
	return code, nil
}
