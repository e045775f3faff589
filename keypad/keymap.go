package keypad

import (
	"fmt"
	"sort"
	"strings"

	"t9pad/internal/errors"
)

// KeyMap maps a letter key to the ordered letters it cycles through.
// A KeyMap is immutable once built and may be shared freely.
type KeyMap struct {
	letters map[rune][]rune
}

// defaultTable is the standard ITU E.161 letter assignment.
var defaultTable = map[rune]string{ //nolint:gochecknoglobals
	'2': "ABC",
	'3': "DEF",
	'4': "GHI",
	'5': "JKL",
	'6': "MNO",
	'7': "PQRS",
	'8': "TUV",
	'9': "WXYZ",
}

var defaultKeyMap = mustKeyMap(defaultTable) //nolint:gochecknoglobals

// DefaultKeyMap returns the standard 2–9 layout.
func DefaultKeyMap() *KeyMap { return defaultKeyMap }

// NewKeyMap validates table and returns an immutable KeyMap built from
// it.  Keys must be digits 1–9 ('0' always types a space and cannot be
// remapped); every key needs at least one letter.
func NewKeyMap(table map[rune]string) (*KeyMap, error) {
	if len(table) == 0 {
		return nil, &errors.LayoutError{Message: "no keys defined"}
	}
	km := &KeyMap{letters: make(map[rune][]rune, len(table))}
	for key, letters := range table {
		switch {
		case key == KeySpace:
			return nil, &errors.LayoutError{Key: string(key), Message: "reserved for space"}
		case key < '1' || key > '9':
			return nil, &errors.LayoutError{Key: string(key), Message: "must be a digit 1-9"}
		case letters == "":
			return nil, &errors.LayoutError{Key: string(key), Message: "no letters assigned"}
		}
		km.letters[key] = []rune(letters)
	}
	return km, nil
}

func mustKeyMap(table map[rune]string) *KeyMap {
	km, err := NewKeyMap(table)
	if err != nil {
		panic(err)
	}
	return km
}

// Letters returns the letters assigned to key, in cycle order.
func (k *KeyMap) Letters(key rune) (string, bool) {
	l, ok := k.letters[key]
	if !ok {
		return "", false
	}
	return string(l), true
}

// Keys returns the mapped keys in ascending order.
func (k *KeyMap) Keys() []rune {
	keys := make([]rune, 0, len(k.letters))
	for key := range k.letters {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Table returns a copy of the mapping in the form NewKeyMap accepts.
func (k *KeyMap) Table() map[rune]string {
	out := make(map[rune]string, len(k.letters))
	for key, l := range k.letters {
		out[key] = string(l)
	}
	return out
}

// resolve returns the letter selected by pressing key presses times.
// The caller guarantees key is mapped and presses ≥ 1.
func (k *KeyMap) resolve(key rune, presses int) rune {
	l := k.letters[key]
	return l[(presses-1)%len(l)]
}

func (k *KeyMap) String() string {
	var b strings.Builder
	for i, key := range k.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%c=%s", key, string(k.letters[key]))
	}
	return b.String()
}
