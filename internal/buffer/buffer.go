// Package buffer implements the bounded composition buffer and the
// parallel raw-input log the engine works on.
//
// A Buffer is a plain value: copying one yields an independent snapshot,
// which is what the transformer's candidate-then-commit scheme relies
// on. Storage is fixed-size; only the String and RawString renderings
// allocate.
package buffer

import (
	"strings"

	"github.com/vnkb/vietkey/internal/chars"
	"github.com/vnkb/vietkey/internal/keys"
)

// Max is the composed-character capacity of a buffer.
const Max = 32

// RawMax bounds the raw-input log. Reverts shrink the composed sequence
// but never the raw log, so it carries headroom over Max.
const RawMax = 40

// Char is one composed character: the originating keysym, the base
// letter it renders as, and the mark and tone applied to it.
type Char struct {
	Key  uint16
	Base rune
	Caps bool
	Mark chars.Mark
	Tone chars.Tone
}

// Rune returns the display rune for the character.
func (c Char) Rune() rune {
	return chars.Compose(c.Base, c.Mark, c.Tone, c.Caps)
}

// IsVowel reports whether the character renders as a vowel.
func (c Char) IsVowel() bool {
	switch c.Base {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// RawKey is one raw-input entry: exactly what the user pressed.
type RawKey struct {
	Key   uint16
	Caps  bool
	Shift bool
}

// Buffer is a fixed-capacity sequence of composed characters plus the
// raw log of every letter and digit key typed in the current word.
type Buffer struct {
	ch   [Max]Char
	n    int
	raw  [RawMax]RawKey
	rawN int
}

// Len returns the number of composed characters.
func (b *Buffer) Len() int { return b.n }

// RawLen returns the number of raw-input entries.
func (b *Buffer) RawLen() int { return b.rawN }

// Full reports whether the composed sequence is at capacity.
func (b *Buffer) Full() bool { return b.n >= Max }

// RawFull reports whether the raw log is at capacity.
func (b *Buffer) RawFull() bool { return b.rawN >= RawMax }

// Append adds a composed character. It reports false at capacity.
func (b *Buffer) Append(c Char) bool {
	if b.n >= Max {
		return false
	}
	b.ch[b.n] = c
	b.n++
	return true
}

// Pop removes and returns the last composed character.
func (b *Buffer) Pop() (Char, bool) {
	if b.n == 0 {
		return Char{}, false
	}
	b.n--
	return b.ch[b.n], true
}

// Get returns the character at index i.
func (b *Buffer) Get(i int) (Char, bool) {
	if i < 0 || i >= b.n {
		return Char{}, false
	}
	return b.ch[i], true
}

// Set overwrites the character at index i.
func (b *Buffer) Set(i int, c Char) bool {
	if i < 0 || i >= b.n {
		return false
	}
	b.ch[i] = c
	return true
}

// Last returns the final composed character.
func (b *Buffer) Last() (Char, bool) {
	if b.n == 0 {
		return Char{}, false
	}
	return b.ch[b.n-1], true
}

// SetLast overwrites the final composed character.
func (b *Buffer) SetLast(c Char) bool {
	if b.n == 0 {
		return false
	}
	b.ch[b.n-1] = c
	return true
}

// Clear resets both the composed sequence and the raw log.
func (b *Buffer) Clear() {
	b.n = 0
	b.rawN = 0
}

// ResetComposed drops the composed characters but keeps the raw log,
// so the word can be rebuilt from the literal key history.
func (b *Buffer) ResetComposed() {
	b.n = 0
}

// RawAppend records a raw key press. It reports false at capacity.
func (b *Buffer) RawAppend(k RawKey) bool {
	if b.rawN >= RawMax {
		return false
	}
	b.raw[b.rawN] = k
	b.rawN++
	return true
}

// RawPop removes and returns the last raw entry.
func (b *Buffer) RawPop() (RawKey, bool) {
	if b.rawN == 0 {
		return RawKey{}, false
	}
	b.rawN--
	return b.raw[b.rawN], true
}

// RawAt returns the raw entry at index i.
func (b *Buffer) RawAt(i int) (RawKey, bool) {
	if i < 0 || i >= b.rawN {
		return RawKey{}, false
	}
	return b.raw[i], true
}

// RawString renders the raw log as the literal characters the user
// typed, with no marks and no tones.
func (b *Buffer) RawString() string {
	var sb strings.Builder
	for i := 0; i < b.rawN; i++ {
		if ch, ok := keys.ToCharExt(b.raw[i].Key, b.raw[i].Caps, b.raw[i].Shift); ok {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// String renders the composed characters with their per-character marks
// and tones. Syllable-level adjustments live in the syllable package.
func (b *Buffer) String() string {
	var sb strings.Builder
	for i := 0; i < b.n; i++ {
		sb.WriteRune(b.ch[i].Rune())
	}
	return sb.String()
}
