// Package syllable parses a composition buffer into the Vietnamese
// syllable structure (initial cluster, vowel nucleus, final cluster)
// and computes where the tone mark belongs.
package syllable

import (
	"strings"

	"github.com/vnkb/vietkey/internal/buffer"
	"github.com/vnkb/vietkey/internal/chars"
)

// Syllable is the parse of a composition buffer. The three clusters are
// index ranges into the buffer: initial [0, InitialEnd), nucleus
// [InitialEnd, NucleusEnd), final [NucleusEnd, FinalEnd).
type Syllable struct {
	InitialEnd int
	NucleusEnd int
	FinalEnd   int
	OK         bool // no stray characters after the final cluster
}

// HasNucleus reports whether at least one vowel was found.
func (s Syllable) HasNucleus() bool { return s.NucleusEnd > s.InitialEnd }

// HasFinal reports whether a final cluster was found.
func (s Syllable) HasFinal() bool { return s.FinalEnd > s.NucleusEnd }

// NucleusLen returns the number of nucleus vowels.
func (s Syllable) NucleusLen() int { return s.NucleusEnd - s.InitialEnd }

// Parse partitions the buffer into initial, nucleus and final runs.
// The i of a gi- initial and the u of a qu- initial belong to the
// initial cluster when another vowel follows.
func Parse(b *buffer.Buffer) Syllable {
	n := b.Len()
	i := 0
	for i < n {
		c, _ := b.Get(i)
		if c.IsVowel() {
			break
		}
		i++
	}

	// gi + vowel and qu + vowel absorb the glide into the initial.
	if i < n && i > 0 {
		c, _ := b.Get(i)
		prev, _ := b.Get(i - 1)
		next, nextOK := b.Get(i + 1)
		if nextOK && next.IsVowel() && c.Mark == chars.MarkNone {
			if c.Base == 'i' && prev.Base == 'g' && i == 1 {
				i++
			} else if c.Base == 'u' && prev.Base == 'q' {
				i++
			}
		}
	}
	initialEnd := i

	for i < n {
		c, _ := b.Get(i)
		if !c.IsVowel() {
			break
		}
		i++
	}
	nucleusEnd := i

	for i < n {
		c, _ := b.Get(i)
		if c.IsVowel() {
			break
		}
		if !isVietnameseConsonant(c.Base) {
			break
		}
		i++
	}
	finalEnd := i

	return Syllable{
		InitialEnd: initialEnd,
		NucleusEnd: nucleusEnd,
		FinalEnd:   finalEnd,
		OK:         i == n,
	}
}

func isVietnameseConsonant(base rune) bool {
	switch base {
	case 'b', 'c', 'd', 'g', 'h', 'k', 'l', 'm', 'n', 'p', 'q', 'r', 's', 't', 'v', 'x':
		return true
	}
	return false
}

// InitialString returns the lowercase initial cluster.
func InitialString(b *buffer.Buffer, s Syllable) string {
	var sb strings.Builder
	for i := 0; i < s.InitialEnd; i++ {
		c, _ := b.Get(i)
		r, _ := chars.ApplyMark(c.Base, c.Mark)
		sb.WriteRune(r)
	}
	return sb.String()
}

// NucleusString returns the lowercase nucleus with effective marks and
// no tones.
func NucleusString(b *buffer.Buffer, s Syllable) string {
	pi := promotedIndex(b, s)
	var sb strings.Builder
	for i := s.InitialEnd; i < s.NucleusEnd; i++ {
		c, _ := b.Get(i)
		m := c.Mark
		if i == pi && m == chars.MarkNone {
			m = chars.MarkCircumflex
		}
		r, _ := chars.ApplyMark(c.Base, m)
		sb.WriteRune(r)
	}
	return sb.String()
}

// FinalString returns the lowercase final cluster.
func FinalString(b *buffer.Buffer, s Syllable) string {
	var sb strings.Builder
	for i := s.NucleusEnd; i < s.FinalEnd; i++ {
		c, _ := b.Get(i)
		sb.WriteRune(c.Base)
	}
	return sb.String()
}

// promotionFinals are the finals before which a plain ie/ye/uo nucleus
// reads as iê/yê/uô (tieng → tiếng, buon → buôn). Stop finals t, p and
// ch are excluded: viet + tone stays ie (viét).
var promotionFinals = map[string]bool{
	"c": true, "m": true, "n": true, "ng": true, "nh": true,
}

// promotedIndex returns the nucleus index that reads as circumflexed by
// promotion, or -1.
func promotedIndex(b *buffer.Buffer, s Syllable) int {
	if !s.HasFinal() || !promotionFinals[FinalString(b, s)] {
		return -1
	}
	for i := s.InitialEnd; i < s.NucleusEnd; i++ {
		c, _ := b.Get(i)
		if c.Mark != chars.MarkNone {
			return -1
		}
	}
	last, _ := b.Get(s.NucleusEnd - 1)
	if last.Base != 'e' && last.Base != 'o' {
		return -1
	}
	prev, _ := b.Get(s.NucleusEnd - 2)
	switch s.NucleusLen() {
	case 2:
		// ie, ye + final → iê, yê; uo + final → uô
		if last.Base == 'e' && (prev.Base == 'i' || prev.Base == 'y') {
			return s.NucleusEnd - 1
		}
		if last.Base == 'o' && prev.Base == 'u' {
			return s.NucleusEnd - 1
		}
	case 3:
		// uye + final → uyê (nguyen + n)
		first, _ := b.Get(s.InitialEnd)
		if last.Base == 'e' && prev.Base == 'y' && first.Base == 'u' {
			return s.NucleusEnd - 1
		}
	}
	return -1
}

// EffectiveMark returns the mark the character at index i displays
// with, including the ie/ye/uo promotion.
func EffectiveMark(b *buffer.Buffer, s Syllable, i int) chars.Mark {
	c, ok := b.Get(i)
	if !ok {
		return chars.MarkNone
	}
	if c.Mark == chars.MarkNone && i == promotedIndex(b, s) {
		return chars.MarkCircumflex
	}
	return c.Mark
}

// Display renders the buffer the way the host should see it: composed
// characters with effective marks and tones.
func Display(b *buffer.Buffer) string {
	s := Parse(b)
	pi := promotedIndex(b, s)
	var sb strings.Builder
	for i := 0; i < b.Len(); i++ {
		c, _ := b.Get(i)
		m := c.Mark
		if i == pi && m == chars.MarkNone {
			m = chars.MarkCircumflex
		}
		sb.WriteRune(chars.Compose(c.Base, m, c.Tone, c.Caps))
	}
	return sb.String()
}

// ToneTarget returns the buffer index that should carry the tone mark,
// or -1 when the buffer has no nucleus.
//
// Placement order: the rightmost marked vowel; the sole vowel; the
// vowel immediately preceding the final; for two plain vowels the
// second of oa/oe/uy under the modern rule and the first otherwise;
// the middle vowel of a plain triphthong.
func ToneTarget(b *buffer.Buffer, modern bool) int {
	s := Parse(b)
	if !s.HasNucleus() {
		return -1
	}

	for i := s.NucleusEnd - 1; i >= s.InitialEnd; i-- {
		switch EffectiveMark(b, s, i) {
		case chars.MarkCircumflex, chars.MarkHorn, chars.MarkBreve:
			return i
		}
	}

	first := s.InitialEnd
	switch s.NucleusLen() {
	case 1:
		return first
	case 2:
		if s.HasFinal() {
			return s.NucleusEnd - 1
		}
		c1, _ := b.Get(first)
		c2, _ := b.Get(first + 1)
		pair := string([]rune{c1.Base, c2.Base})
		if modern && (pair == "oa" || pair == "oe" || pair == "uy") {
			return first + 1
		}
		return first
	default:
		if s.HasFinal() {
			return s.NucleusEnd - 1
		}
		return first + 1
	}
}

// CurrentTone returns the tone present in the buffer and its index, or
// (ToneNone, -1).
func CurrentTone(b *buffer.Buffer) (chars.Tone, int) {
	for i := 0; i < b.Len(); i++ {
		c, _ := b.Get(i)
		if c.Tone != chars.ToneNone {
			return c.Tone, i
		}
	}
	return chars.ToneNone, -1
}

// NormalizeTone re-places the tone on the target position after the
// buffer changed shape (a new vowel or final can move the target).
func NormalizeTone(b *buffer.Buffer, modern bool) {
	tone, at := CurrentTone(b)
	if at < 0 {
		return
	}
	target := ToneTarget(b, modern)
	if target < 0 || target == at {
		return
	}
	c, _ := b.Get(at)
	c.Tone = chars.ToneNone
	b.Set(at, c)
	t, _ := b.Get(target)
	t.Tone = tone
	b.Set(target, t)
}
