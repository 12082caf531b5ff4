package termhost

import (
	"bufio"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/thruflo/overlook/internal/dom"
)

// Key represents a keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyBackTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlR
	KeyRune // Regular character
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyBackTab:
		return "backtab"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyCtrlC:
		return "ctrl+c"
	case KeyCtrlR:
		return "ctrl+r"
	case KeyRune:
		return "rune"
	default:
		return "unknown"
	}
}

// KeyEvent represents a key press event.
type KeyEvent struct {
	Key  Key
	Rune rune // Only valid when Key == KeyRune
}

// KeyReader reads keyboard input from a raw terminal.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader from the given io.Reader. The reader
// should be a raw terminal input.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey reads a single key event from the input. It blocks until a key is
// pressed.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case 0x03:
		return KeyEvent{Key: KeyCtrlC}, nil
	case 0x12:
		return KeyEvent{Key: KeyCtrlR}, nil
	case 0x09:
		return KeyEvent{Key: KeyTab}, nil
	case 0x0D, 0x0A:
		return KeyEvent{Key: KeyEnter}, nil
	case 0x7F, 0x08:
		return KeyEvent{Key: KeyBackspace}, nil
	case 0x1B:
		return k.readEscapeSequence()
	}
	if b >= 0x20 && b < 0x7F {
		return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
	}
	if b >= 0xC0 {
		return k.readUTF8(b)
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

// readEscapeSequence handles arrow keys and other CSI sequences. A lone
// escape is reported when nothing follows it in the same read.
func (k *KeyReader) readEscapeSequence() (KeyEvent, error) {
	if k.reader.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		_ = k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}
	return k.parseCSI()
}

func (k *KeyReader) parseCSI() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}

	switch b {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	case 'Z':
		return KeyEvent{Key: KeyBackTab}, nil
	}

	// Unknown sequence; consume up to its final byte.
	for k.reader.Buffered() > 0 {
		next, _ := k.reader.ReadByte()
		if (next >= 'A' && next <= 'Z') || (next >= 'a' && next <= 'z') || next == '~' {
			break
		}
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	var buf [4]byte
	buf[0] = first

	var n int
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	for i := 1; i < n; i++ {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf[i] = b
	}

	r, _ := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}
	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// Browser key codes for keys the dom package has no constant for.
const (
	codeBackspace = 8
	codeSpace     = 32
	codeLeft      = 37
	codeRight     = 39
)

// ToEvent translates a key press into a keydown event. It reports false for
// keys the host handles itself (focus movement, interrupt) and for unknown
// input.
func ToEvent(k KeyEvent) (*dom.Event, bool) {
	ev := &dom.Event{Type: "keydown"}
	switch k.Key {
	case KeyEscape:
		ev.Key = dom.KeyEsc
	case KeyEnter:
		ev.Key = dom.KeyEnter
	case KeyBackspace:
		ev.Key = codeBackspace
	case KeyUp:
		ev.Key = dom.KeyUp
	case KeyDown:
		ev.Key = dom.KeyDown
	case KeyLeft:
		ev.Key = codeLeft
	case KeyRight:
		ev.Key = codeRight
	case KeyCtrlR:
		ev.Key = dom.KeyR
		ev.Meta = true
	case KeyRune:
		ev.Rune = k.Rune
		ev.Key = runeCode(k.Rune)
	default:
		return nil, false
	}
	return ev, true
}

func runeCode(r rune) int {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return int(unicode.ToUpper(r))
	case r >= '0' && r <= '9':
		return int(r)
	case r == ' ':
		return codeSpace
	}
	return 0
}
