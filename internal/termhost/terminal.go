package termhost

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal handles raw terminal mode and provides ANSI escape helpers.
type Terminal struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	isRaw    bool
}

// NewTerminal creates a Terminal that reads from in and writes to out. The
// primary screen passes stdin and stdout; a popout passes the same tty
// device for both.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:  in,
		out: out,
	}
}

// EnterRaw puts the terminal into raw mode.
func (t *Terminal) EnterRaw() error {
	if t.isRaw {
		return fmt.Errorf("terminal already in raw mode")
	}

	oldState, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}

	t.oldState = oldState
	t.isRaw = true
	return nil
}

// ExitRaw restores the terminal to its original state. Safe to call even if
// not in raw mode.
func (t *Terminal) ExitRaw() error {
	if !t.isRaw || t.oldState == nil {
		return nil
	}

	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}

	t.isRaw = false
	t.oldState = nil
	return nil
}

// IsRaw returns true if the terminal is in raw mode.
func (t *Terminal) IsRaw() bool {
	return t.isRaw
}

// Size returns the current terminal width and height.
func (t *Terminal) Size() (width, height int, err error) {
	width, height, err = term.GetSize(int(t.in.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return width, height, nil
}

// Read reads up to len(p) bytes from the terminal input.
func (t *Terminal) Read(p []byte) (n int, err error) {
	return t.in.Read(p)
}

// Write writes a string to the terminal output.
func (t *Terminal) Write(s string) error {
	_, err := io.WriteString(t.out, s)
	return err
}

// Output returns the writer the terminal paints to.
func (t *Terminal) Output() io.Writer {
	return t.out
}

// ANSI escape sequences
const (
	ClearScreen   = "\033[2J"
	ClearLine     = "\033[K"
	ClearToEnd    = "\033[J"
	CursorHome    = "\033[H"
	CursorHide    = "\033[?25l"
	CursorShow    = "\033[?25h"
	AltScreenOn   = "\033[?1049h"
	AltScreenOff  = "\033[?1049l"
	Reset         = "\033[0m"
	Bell          = "\a"
	titlePrefix   = "\033]0;"
	titleTerminal = "\a"
)

// CursorTo returns an ANSI escape sequence to move the cursor to (row, col).
// Row and column are 1-indexed.
func CursorTo(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// SetTitle returns the sequence that sets the terminal window title.
func SetTitle(title string) string {
	return titlePrefix + title + titleTerminal
}
