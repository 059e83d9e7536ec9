package model

// Key is a logical key code. Printable keys use their rune value (lowercase
// for letters; shifted combos use the shifted symbol's rune, e.g. Shift+1 is
// '!'). Named keys use codes above the Unicode range so the two spaces never
// collide.
type Key int

// KeyNone marks the absence of a key.
const KeyNone Key = 0

// Named keys.
const (
	KeySpace Key = 0x110000 + iota
	KeyTab
	KeyCapsLock
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
)

// KeyFromRune returns the logical key for a printable character.
func KeyFromRune(r rune) Key {
	return Key(r)
}

// Rune returns the printable character for rune-valued keys, or 0 for named
// keys.
func (k Key) Rune() rune {
	if k > 0 && k < 0x110000 {
		return rune(k)
	}
	return 0
}

// Modifier is a bitmask of held modifier keys.
type Modifier int

// Modifier bits.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// modMask covers the four modifier bits combos are matched against.
const modMask = ModShift | ModCtrl | ModAlt | ModMeta

// Canonical restricts the mask to the Shift/Ctrl/Alt/Meta bits.
func (m Modifier) Canonical() Modifier {
	return m & modMask
}

// Has reports whether all bits in other are set.
func (m Modifier) Has(other Modifier) bool {
	return m&other == other
}

// KeyEvent is one raw key press as delivered by the presentation shell.
type KeyEvent struct {
	Key  Key
	Mods Modifier
	Rune rune
}
