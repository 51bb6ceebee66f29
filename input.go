package termcore

// EventKind distinguishes the variants of Event. Keyboard/mouse byte
// decoding happens upstream of this package - the core only consumes
// already decoded events through this contract.
type EventKind uint8

const (
	EventKey EventKind = iota
	EventMouse
	EventResize
	EventFocus
	EventPaste
)

// KeyModifier is a bitset of modifier keys held during a KeyEvent.
type KeyModifier uint8

const (
	ModShift KeyModifier = 1 << iota
	ModAlt
	ModCtrl
)

// KeyEvent describes a single decoded keypress.
type KeyEvent struct {
	Char rune
	Mod  KeyModifier
}

// MouseEvent describes a single decoded mouse action. The core's render
// loop passes these through to the caller's OnMouse callback without
// interpreting them.
type MouseEvent struct {
	X, Y    int
	Button  int
	Pressed bool
}

// PasteEvent carries bracketed-paste content, passed through unexamined.
type PasteEvent struct {
	Text string
}

// Event is one decoded input occurrence. Exactly one of the typed fields
// is meaningful, selected by Kind.
type Event struct {
	Kind   EventKind
	Key    KeyEvent
	Mouse  MouseEvent
	Resize Size
	Paste  PasteEvent
}

// InputSource is the contract the frame loop polls each tick. Poll must
// be non-blocking: it returns (Event{}, false) when nothing is ready
// rather than waiting. Decoding raw terminal bytes into Events is the
// input decoder's job and lives outside this module.
type InputSource interface {
	Poll() (Event, bool)
}
