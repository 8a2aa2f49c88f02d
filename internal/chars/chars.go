// Package chars provides the Vietnamese character tables: base letters
// combined with vowel marks (circumflex, horn, breve, stroke) and tone
// marks into precomposed Unicode runes, and the reverse decomposition.
package chars

import "unicode"

// Tone represents Vietnamese tone marks.
type Tone int

const (
	ToneNone  Tone = iota // No tone (thanh ngang)
	ToneSac               // Sắc (á)
	ToneHuyen             // Huyền (à)
	ToneHoi               // Hỏi (ả)
	ToneNga               // Ngã (ã)
	ToneNang              // Nặng (ạ)
)

// Mark represents Vietnamese letter modifications.
type Mark int

const (
	MarkNone       Mark = iota
	MarkCircumflex      // â, ê, ô
	MarkHorn            // ơ, ư
	MarkBreve           // ă
	MarkStroke          // đ
)

// markTable maps a base letter to its marked forms.
var markTable = map[rune]map[Mark]rune{
	'a': {MarkCircumflex: 'â', MarkBreve: 'ă'},
	'e': {MarkCircumflex: 'ê'},
	'o': {MarkCircumflex: 'ô', MarkHorn: 'ơ'},
	'u': {MarkHorn: 'ư'},
	'd': {MarkStroke: 'đ'},
}

// toneTable maps a (possibly marked) vowel to its toned forms,
// indexed by Tone.
var toneTable = map[rune][6]rune{
	'a': {'a', 'á', 'à', 'ả', 'ã', 'ạ'},
	'ă': {'ă', 'ắ', 'ằ', 'ẳ', 'ẵ', 'ặ'},
	'â': {'â', 'ấ', 'ầ', 'ẩ', 'ẫ', 'ậ'},
	'e': {'e', 'é', 'è', 'ẻ', 'ẽ', 'ẹ'},
	'ê': {'ê', 'ế', 'ề', 'ể', 'ễ', 'ệ'},
	'i': {'i', 'í', 'ì', 'ỉ', 'ĩ', 'ị'},
	'o': {'o', 'ó', 'ò', 'ỏ', 'õ', 'ọ'},
	'ô': {'ô', 'ố', 'ồ', 'ổ', 'ỗ', 'ộ'},
	'ơ': {'ơ', 'ớ', 'ờ', 'ở', 'ỡ', 'ợ'},
	'u': {'u', 'ú', 'ù', 'ủ', 'ũ', 'ụ'},
	'ư': {'ư', 'ứ', 'ừ', 'ử', 'ữ', 'ự'},
	'y': {'y', 'ý', 'ỳ', 'ỷ', 'ỹ', 'ỵ'},
}

// decomposeTable is built from markTable and toneTable at init time and
// maps every precomposed lowercase rune back to (base, mark, tone).
var decomposeTable map[rune]struct {
	base rune
	mark Mark
	tone Tone
}

func init() {
	decomposeTable = make(map[rune]struct {
		base rune
		mark Mark
		tone Tone
	})

	markOf := map[rune]struct {
		base rune
		mark Mark
	}{}
	for base, marks := range markTable {
		for m, r := range marks {
			markOf[r] = struct {
				base rune
				mark Mark
			}{base, m}
		}
	}

	for v, tones := range toneTable {
		base, mark := v, MarkNone
		if bm, ok := markOf[v]; ok {
			base, mark = bm.base, bm.mark
		}
		for t, r := range tones {
			decomposeTable[r] = struct {
				base rune
				mark Mark
				tone Tone
			}{base, mark, Tone(t)}
		}
	}
	decomposeTable['đ'] = struct {
		base rune
		mark Mark
		tone Tone
	}{'d', MarkStroke, ToneNone}
}

// ApplyMark returns the marked form of base. The second result reports
// whether the mark applies to this letter at all.
func ApplyMark(base rune, m Mark) (rune, bool) {
	if m == MarkNone {
		return base, true
	}
	if marks, ok := markTable[base]; ok {
		if r, ok := marks[m]; ok {
			return r, true
		}
	}
	return base, false
}

// CanTakeMark reports whether the mark applies to the base letter.
func CanTakeMark(base rune, m Mark) bool {
	_, ok := ApplyMark(base, m)
	return ok
}

// ApplyTone returns the toned form of a (possibly marked) vowel, or the
// input unchanged when it cannot carry a tone.
func ApplyTone(v rune, t Tone) rune {
	if tones, ok := toneTable[v]; ok {
		return tones[t]
	}
	return v
}

// Compose builds the display rune for a base letter with the given mark,
// tone and case. Impossible combinations degrade to the closest legal
// rune rather than failing.
func Compose(base rune, m Mark, t Tone, caps bool) rune {
	r := base
	if m != MarkNone {
		if marked, ok := ApplyMark(base, m); ok {
			r = marked
		}
	}
	if t != ToneNone {
		r = ApplyTone(r, t)
	}
	if caps {
		r = unicode.ToUpper(r)
	}
	return r
}

// Decompose splits a precomposed Vietnamese rune into base letter, mark,
// tone and case. Plain ASCII letters decompose to themselves.
func Decompose(r rune) (base rune, m Mark, t Tone, caps bool) {
	caps = unicode.IsUpper(r)
	lower := unicode.ToLower(r)
	if d, ok := decomposeTable[lower]; ok {
		return d.base, d.mark, d.tone, caps
	}
	return lower, MarkNone, ToneNone, caps
}

// IsVowel reports whether the rune is a Vietnamese vowel in any marked
// or toned form.
func IsVowel(r rune) bool {
	base, _, _, _ := Decompose(r)
	switch base {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// IsMarkedVowel reports whether the rune carries a vowel mark
// (circumflex, horn or breve), ignoring tone.
func IsMarkedVowel(r rune) bool {
	_, m, _, _ := Decompose(r)
	return m == MarkCircumflex || m == MarkHorn || m == MarkBreve
}
