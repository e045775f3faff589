// Package keypad decodes multi-tap phone keypad sequences into text.
//
// A sequence is a string of key presses terminated by '#':
//
//	2-9   letter keys; repeated presses cycle through the key's letters
//	' '   separator; ends the current run so the same key can start a new letter
//	0     commits the current run and types a space
//	*     backspace; cancels the run in progress, or deletes the last letter
//	#     end of input; anything after it is ignored
//
// For example "4433555 555666#" decodes to "HELLO".
package keypad

import (
	"t9pad/internal/errors"
)

// Structural keys.  None of them can be remapped by a KeyMap.
const (
	KeySpace      = '0'
	KeySeparator  = ' '
	KeyBackspace  = '*'
	KeyTerminator = '#'
)

// Decoder turns key sequences into text using a fixed KeyMap.  It holds
// no per-call state, so one Decoder may serve concurrent callers.
type Decoder struct {
	keys *KeyMap
}

// NewDecoder returns a Decoder for keys.  A nil keys selects
// DefaultKeyMap.
func NewDecoder(keys *KeyMap) *Decoder {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &Decoder{keys: keys}
}

// KeyMap returns the layout the decoder resolves letters with.  A zero
// Decoder uses DefaultKeyMap.
func (d *Decoder) KeyMap() *KeyMap {
	if d == nil || d.keys == nil {
		return defaultKeyMap
	}
	return d.keys
}

// Decode decodes input with the default layout.
func Decode(input string) (string, error) {
	return NewDecoder(nil).Decode(input)
}

// Decode returns the text typed by input.
//
// An empty input decodes to "".  Any other input must end with '#',
// otherwise errors.ErrMissingTerminator is returned without scanning.
// The first rune that is neither a mapped key nor a structural key
// yields an *errors.InvalidCharacterError.  Nothing is returned on
// failure.
func (d *Decoder) Decode(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	if input[len(input)-1] != KeyTerminator {
		return "", errors.ErrMissingTerminator
	}

	keys := d.KeyMap()
	st := state{keys: keys, out: make([]rune, 0, len(input)/2)}
	pos := 0
	for _, r := range input {
		switch {
		case r == KeyTerminator:
			st.commit()
			return string(st.out), nil
		case r == KeySeparator:
			st.commit()
		case r == KeySpace:
			st.commit()
			st.out = append(st.out, ' ')
		case r == KeyBackspace:
			st.backspace()
		default:
			if _, ok := keys.letters[r]; !ok {
				return "", &errors.InvalidCharacterError{Pos: pos, Char: r}
			}
			st.press(r)
		}
		pos++
	}

	// The final byte is '#', so the loop always returns.
	panic("unreachable")
}

// state is the mutable part of a single Decode call.
type state struct {
	keys *KeyMap
	out  []rune

	key     rune // open run's key; 0 when no run is open
	presses int
}

func (s *state) open() bool { return s.presses > 0 }

func (s *state) press(key rune) {
	if s.open() && s.key == key {
		s.presses++
		return
	}
	s.commit()
	s.key, s.presses = key, 1
}

// commit resolves the open run, if any, and appends its letter.
func (s *state) commit() {
	if !s.open() {
		return
	}
	s.out = append(s.out, s.keys.resolve(s.key, s.presses))
	s.discard()
}

func (s *state) discard() { s.key, s.presses = 0, 0 }

// backspace cancels the open run; with no run open it deletes the last
// committed rune.
func (s *state) backspace() {
	if s.open() {
		s.discard()
		return
	}
	if n := len(s.out); n > 0 {
		s.out = s.out[:n-1]
	}
}
