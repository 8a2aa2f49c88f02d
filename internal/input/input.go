// Package input defines the typing conventions (Telex, VNI) as static
// key→effect tables consumed by the transformer.
package input

import (
	"github.com/vnkb/vietkey/internal/chars"
	"github.com/vnkb/vietkey/internal/keys"
)

// Method ids, stable across the FFI surface.
const (
	TelexID = 0
	VniID   = 1
)

// MarkPair names one base letter a mark key can modify.
type MarkPair struct {
	Base rune
	Mark chars.Mark
}

// MarkRule describes the full effect of one mark key.
type MarkRule struct {
	Pairs         []MarkPair
	PairUO        bool // an adjacent u,o pair turns into ươ
	WordStartHorn bool // the key inserts ư at word start (Telex w)
}

// Method is one typing convention as a set of static tables.
type Method struct {
	ID     int
	Name   string
	tones  map[uint16]chars.Tone
	clears map[uint16]bool
	marks  map[uint16]MarkRule
	stroke map[uint16]bool
}

// ToneFor returns the tone a key applies under this method.
func (m *Method) ToneFor(key uint16) (chars.Tone, bool) {
	t, ok := m.tones[key]
	return t, ok
}

// ClearsTone reports whether the key removes an applied tone
// (Telex z, VNI 0).
func (m *Method) ClearsTone(key uint16) bool { return m.clears[key] }

// MarkFor returns the mark rule for a key under this method.
func (m *Method) MarkFor(key uint16) (MarkRule, bool) {
	r, ok := m.marks[key]
	return r, ok
}

// IsStroke reports whether the key applies the đ stroke.
func (m *Method) IsStroke(key uint16) bool { return m.stroke[key] }

// IsModifier reports whether the key has any effect under this method.
func (m *Method) IsModifier(key uint16) bool {
	if _, ok := m.tones[key]; ok {
		return true
	}
	if _, ok := m.marks[key]; ok {
		return true
	}
	return m.clears[key] || m.stroke[key]
}

// Get returns the method for a stable id: 0 Telex, 1 VNI. Unknown ids
// fall back to Telex.
func Get(id int) *Method {
	if id == VniID {
		return Vni
	}
	return Telex
}

// Telex uses letters as modifiers: s f r x j for tones, a e o w for
// marks, d for the stroke, z to clear the tone.
var Telex = &Method{
	ID:   TelexID,
	Name: "Telex",
	tones: map[uint16]chars.Tone{
		keys.S: chars.ToneSac,
		keys.F: chars.ToneHuyen,
		keys.R: chars.ToneHoi,
		keys.X: chars.ToneNga,
		keys.J: chars.ToneNang,
	},
	clears: map[uint16]bool{keys.Z: true},
	marks: map[uint16]MarkRule{
		keys.A: {Pairs: []MarkPair{{'a', chars.MarkCircumflex}}},
		keys.E: {Pairs: []MarkPair{{'e', chars.MarkCircumflex}}},
		keys.O: {Pairs: []MarkPair{{'o', chars.MarkCircumflex}}},
		keys.W: {
			Pairs: []MarkPair{
				{'u', chars.MarkHorn},
				{'o', chars.MarkHorn},
				{'a', chars.MarkBreve},
			},
			PairUO:        true,
			WordStartHorn: true,
		},
	},
	stroke: map[uint16]bool{keys.D: true},
}

// Vni uses digits: 1-5 for tones, 6 circumflex, 7 horn, 8 breve,
// 9 stroke, 0 to clear the tone.
var Vni = &Method{
	ID:   VniID,
	Name: "VNI",
	tones: map[uint16]chars.Tone{
		keys.N1: chars.ToneSac,
		keys.N2: chars.ToneHuyen,
		keys.N3: chars.ToneHoi,
		keys.N4: chars.ToneNga,
		keys.N5: chars.ToneNang,
	},
	clears: map[uint16]bool{keys.N0: true},
	marks: map[uint16]MarkRule{
		keys.N6: {Pairs: []MarkPair{
			{'a', chars.MarkCircumflex},
			{'e', chars.MarkCircumflex},
			{'o', chars.MarkCircumflex},
		}},
		keys.N7: {
			Pairs: []MarkPair{
				{'u', chars.MarkHorn},
				{'o', chars.MarkHorn},
			},
			PairUO: true,
		},
		keys.N8: {Pairs: []MarkPair{{'a', chars.MarkBreve}}},
	},
	stroke: map[uint16]bool{keys.N9: true},
}
