// Package transform computes the effect of one modifier key on a
// candidate composition buffer. The caller owns the
// candidate-then-commit cycle: Apply mutates the candidate in place and
// the engine validates before swapping it in.
package transform

import (
	"github.com/vnkb/vietkey/internal/buffer"
	"github.com/vnkb/vietkey/internal/chars"
	"github.com/vnkb/vietkey/internal/input"
	"github.com/vnkb/vietkey/internal/keys"
	"github.com/vnkb/vietkey/internal/syllable"
)

// Kind tags a transform outcome.
type Kind int

const (
	KindNone      Kind = iota // not a modifier here; caller appends the literal
	KindTone                  // a tone was placed or replaced
	KindToneClear             // an applied tone was removed (z / 0)
	KindMark                  // a vowel mark or the ư shortcut was applied
	KindStroke                // d gained its stroke
	KindRevert                // a double press undid a previous effect
)

// Result reports what Apply did and the buffer position it touched.
type Result struct {
	Kind Kind
	Pos  int
}

// Options carries the engine settings the transformer depends on.
type Options struct {
	ModernTone    bool
	SkipWShortcut bool
}

// AppendLiteral adds the key's plain character to the buffer.
func AppendLiteral(b *buffer.Buffer, key uint16, caps bool) {
	ch, ok := keys.ToChar(key, false)
	if !ok {
		return
	}
	b.Append(buffer.Char{Key: key, Base: ch, Caps: caps})
}

// Apply interprets the key under the given method against the candidate
// buffer. KindNone means the key had no modifier role here and the
// caller should treat it as a literal.
func Apply(cand *buffer.Buffer, m *input.Method, key uint16, caps bool, opts Options) Result {
	if tone, ok := m.ToneFor(key); ok {
		return applyTone(cand, key, caps, tone, opts)
	}
	if m.ClearsTone(key) {
		if _, at := syllable.CurrentTone(cand); at >= 0 {
			c, _ := cand.Get(at)
			c.Tone = chars.ToneNone
			cand.Set(at, c)
			return Result{Kind: KindToneClear, Pos: at}
		}
		return Result{Kind: KindNone, Pos: -1}
	}
	if m.IsStroke(key) {
		return applyStroke(cand, key, caps)
	}
	if rule, ok := m.MarkFor(key); ok {
		return applyMark(cand, key, caps, rule, opts)
	}
	return Result{Kind: KindNone, Pos: -1}
}

func applyTone(cand *buffer.Buffer, key uint16, caps bool, tone chars.Tone, opts Options) Result {
	cur, at := syllable.CurrentTone(cand)
	if cur == tone && at >= 0 {
		// Double press undoes the tone and leaves the literal key.
		c, _ := cand.Get(at)
		c.Tone = chars.ToneNone
		cand.Set(at, c)
		AppendLiteral(cand, key, caps)
		return Result{Kind: KindRevert, Pos: at}
	}
	target := syllable.ToneTarget(cand, opts.ModernTone)
	if target < 0 {
		return Result{Kind: KindNone, Pos: -1}
	}
	if at >= 0 && at != target {
		c, _ := cand.Get(at)
		c.Tone = chars.ToneNone
		cand.Set(at, c)
	}
	c, _ := cand.Get(target)
	c.Tone = tone
	cand.Set(target, c)
	return Result{Kind: KindTone, Pos: target}
}

func applyStroke(cand *buffer.Buffer, key uint16, caps bool) Result {
	// Adjacent dd first, then the delayed d + vowels + d form.
	if last, ok := cand.Last(); ok && last.Base == 'd' {
		pos := cand.Len() - 1
		if last.Mark == chars.MarkNone {
			last.Mark = chars.MarkStroke
			cand.SetLast(last)
			return Result{Kind: KindStroke, Pos: pos}
		}
		if last.Mark == chars.MarkStroke {
			last.Mark = chars.MarkNone
			cand.SetLast(last)
			AppendLiteral(cand, key, caps)
			return Result{Kind: KindRevert, Pos: pos}
		}
	}
	if first, ok := cand.Get(0); ok && first.Base == 'd' && hasVowel(cand) {
		if first.Mark == chars.MarkNone {
			first.Mark = chars.MarkStroke
			cand.Set(0, first)
			return Result{Kind: KindStroke, Pos: 0}
		}
		if first.Mark == chars.MarkStroke {
			first.Mark = chars.MarkNone
			cand.Set(0, first)
			AppendLiteral(cand, key, caps)
			return Result{Kind: KindRevert, Pos: 0}
		}
	}
	return Result{Kind: KindNone, Pos: -1}
}

func applyMark(cand *buffer.Buffer, key uint16, caps bool, rule input.MarkRule, opts Options) Result {
	// Double w on the word-initial ư shortcut goes back to a literal w.
	if rule.WordStartHorn {
		if last, ok := cand.Last(); ok &&
			last.Key == key && last.Base == 'u' && last.Mark == chars.MarkHorn {
			last.Base = 'w'
			last.Mark = chars.MarkNone
			cand.SetLast(last)
			return Result{Kind: KindRevert, Pos: cand.Len() - 1}
		}
	}

	if rule.PairUO {
		if i := findUOPair(cand); i >= 0 {
			u, _ := cand.Get(i)
			o, _ := cand.Get(i + 1)
			if u.Mark == chars.MarkHorn && o.Mark == chars.MarkHorn {
				// Already ươ; the key has no target left.
				return Result{Kind: KindNone, Pos: -1}
			}
			u.Mark = chars.MarkHorn
			o.Mark = chars.MarkHorn
			cand.Set(i, u)
			cand.Set(i+1, o)
			return Result{Kind: KindMark, Pos: i + 1}
		}
	}

	for i := cand.Len() - 1; i >= 0; i-- {
		c, _ := cand.Get(i)
		for _, p := range rule.Pairs {
			if c.Base != p.Base {
				continue
			}
			if c.Mark == p.Mark {
				c.Mark = chars.MarkNone
				cand.Set(i, c)
				AppendLiteral(cand, key, caps)
				return Result{Kind: KindRevert, Pos: i}
			}
			c.Mark = p.Mark
			cand.Set(i, c)
			return Result{Kind: KindMark, Pos: i}
		}
	}

	if rule.WordStartHorn && cand.Len() == 0 && !opts.SkipWShortcut {
		cand.Append(buffer.Char{Key: key, Base: 'u', Caps: caps, Mark: chars.MarkHorn})
		return Result{Kind: KindMark, Pos: 0}
	}
	return Result{Kind: KindNone, Pos: -1}
}

// findUOPair returns the index of the u in the rightmost adjacent u,o
// vowel pair, or -1.
func findUOPair(b *buffer.Buffer) int {
	for i := b.Len() - 2; i >= 0; i-- {
		u, _ := b.Get(i)
		o, _ := b.Get(i + 1)
		if u.Base == 'u' && o.Base == 'o' &&
			u.Mark != chars.MarkCircumflex && o.Mark != chars.MarkCircumflex {
			return i
		}
	}
	return -1
}

func hasVowel(b *buffer.Buffer) bool {
	for i := 0; i < b.Len(); i++ {
		c, _ := b.Get(i)
		if c.IsVowel() {
			return true
		}
	}
	return false
}
