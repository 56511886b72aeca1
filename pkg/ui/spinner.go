// Package ui holds the terminal feedback shared by every command.
package ui

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Writer is where spinners and status lines are drawn. Tests swap it.
var Writer io.Writer = os.Stdout

// Spin runs fn while a spinner with the given message animates on Writer.
// The spinner is stopped before Spin returns, on every path including a
// panic inside fn. Stop marks it inactive under its lock, so the animation
// goroutine draws nothing after that and later output does not interleave.
func Spin(message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(Writer))
	s.Suffix = " " + message
	s.Start()
	defer s.Stop()

	return fn()
}

func Success(msg string) {
	color.New(color.FgGreen).Fprintf(Writer, "✓ %s\n", msg)
}

func Error(msg string) {
	color.New(color.FgRed).Fprintf(Writer, "✗ %s\n", msg)
}

func Warning(msg string) {
	color.New(color.FgYellow).Fprintf(Writer, "! %s\n", msg)
}

// Header prints the monkey banner title used at the top of every command.
func Header(title string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(Writer, "\n🐒 %s\n\n", title)
}
