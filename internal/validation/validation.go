// Package validation decides whether a composition buffer is a
// phonotactically legal Vietnamese syllable, and detects foreign-looking
// letter patterns for English-word protection.
package validation

import (
	"strings"

	"github.com/vnkb/vietkey/internal/buffer"
	"github.com/vnkb/vietkey/internal/chars"
	"github.com/vnkb/vietkey/internal/syllable"
)

// Reason codes returned with an invalid result.
const (
	ReasonOK            = ""
	ReasonNoVowel       = "no_vowel"
	ReasonStructure     = "invalid_structure"
	ReasonInitial       = "invalid_initial"
	ReasonNucleus       = "invalid_nucleus"
	ReasonFinal         = "invalid_final"
	ReasonSpelling      = "spelling_rule_violation"
	ReasonToneStopFinal = "tone_incompatible_final"
)

// Result reports the outcome of a validity check.
type Result struct {
	Valid  bool
	Reason string
}

// Options selects which checks run.
type Options struct {
	WithTones    bool // also check tone/final compatibility
	AllowForeign bool // accept f, j, w, z as initials
}

// validInitials are the Vietnamese initial consonant clusters.
var validInitials = map[string]bool{
	"b": true, "c": true, "d": true, "đ": true, "g": true, "h": true,
	"k": true, "l": true, "m": true, "n": true, "p": true, "q": true,
	"r": true, "s": true, "t": true, "v": true, "x": true,
	"ch": true, "gh": true, "gi": true, "kh": true, "ng": true,
	"nh": true, "ph": true, "qu": true, "th": true, "tr": true,
	"ngh": true,
}

// foreignInitials are accepted in addition when AllowForeign is set.
var foreignInitials = map[string]bool{
	"f": true, "j": true, "w": true, "z": true,
}

// validFinals are the Vietnamese final consonant clusters.
var validFinals = map[string]bool{
	"c": true, "ch": true, "m": true, "n": true,
	"ng": true, "nh": true, "p": true, "t": true,
}

// stopFinals admit only sắc and nặng.
var stopFinals = map[string]bool{
	"c": true, "ch": true, "p": true, "t": true,
}

// validNuclei lists the permitted vowel sequences, including the plain
// precursors (ie, uo, ...) a syllable passes through while being typed.
var validNuclei = map[string]bool{
	// single vowels
	"a": true, "ă": true, "â": true, "e": true, "ê": true, "i": true,
	"o": true, "ô": true, "ơ": true, "u": true, "ư": true, "y": true,
	// two-vowel clusters
	"ai": true, "ao": true, "au": true, "ay": true, "âu": true, "ây": true,
	"eo": true, "êu": true, "ia": true, "ie": true, "iê": true, "iu": true,
	"oa": true, "oă": true, "oe": true, "oi": true, "ôi": true, "ơi": true,
	"ua": true, "uâ": true, "uê": true, "ui": true, "uo": true, "uô": true,
	"uơ": true, "uy": true, "ưa": true, "ưi": true, "ươ": true, "ưu": true,
	"ye": true, "yê": true,
	// three-vowel clusters
	"ieu": true, "iêu": true, "oai": true, "oay": true, "oeo": true,
	"uây": true, "uoi": true, "uôi": true, "uya": true, "uye": true,
	"uyê": true, "uyu": true, "ươi": true, "ươu": true, "yeu": true,
	"yêu": true,
}

// spellingRules are initial+vowel junctions Vietnamese forbids; the
// orthography demands a different initial (c/k, g/gh, ng/ngh).
var spellingRules = map[string]bool{
	"ce": true, "cê": true, "ci": true, "cy": true,
	"ka": true, "kă": true, "kâ": true, "ko": true, "kô": true, "kơ": true, "ku": true, "kư": true,
	"ge": true, "gê": true,
	"nge": true, "ngê": true, "ngi": true,
	"gha": true, "ghă": true, "ghâ": true, "gho": true, "ghô": true, "ghơ": true, "ghu": true, "ghư": true,
	"ngha": true, "nghă": true, "nghâ": true, "ngho": true, "nghô": true, "nghơ": true, "nghu": true, "nghư": true,
}

// IsValid checks whether the buffer is a legal Vietnamese syllable.
func IsValid(b *buffer.Buffer, opts Options) Result {
	s := syllable.Parse(b)
	if !s.OK {
		return Result{Reason: ReasonStructure}
	}
	if !s.HasNucleus() {
		return Result{Reason: ReasonNoVowel}
	}

	initial := strings.ReplaceAll(syllable.InitialString(b, s), "đ", "d")
	if initial != "" && !validInitials[initial] {
		if !opts.AllowForeign || !foreignInitials[initial] {
			return Result{Reason: ReasonInitial}
		}
	}

	nucleus := syllable.NucleusString(b, s)
	if !validNuclei[nucleus] {
		return Result{Reason: ReasonNucleus}
	}

	final := syllable.FinalString(b, s)
	if final != "" && !validFinals[final] {
		return Result{Reason: ReasonFinal}
	}

	if initial != "" {
		junction := initial + string([]rune(nucleus)[0])
		if spellingRules[junction] {
			return Result{Reason: ReasonSpelling}
		}
	}

	if opts.WithTones {
		if tone, _ := syllable.CurrentTone(b); tone != chars.ToneNone {
			if stopFinals[final] && tone != chars.ToneSac && tone != chars.ToneNang {
				return Result{Reason: ReasonToneStopFinal}
			}
		}
	}

	return Result{Valid: true, Reason: ReasonOK}
}

// invalidOnsets are English initial clusters Vietnamese never uses.
var invalidOnsets = []string{
	"bl", "br", "cl", "cr", "dr", "fl", "fr", "gl", "gr",
	"pl", "pr", "sc", "sk", "sl", "sm", "sn", "sp", "st",
}

// IsForeignPattern reports whether the raw letters look like an English
// word rather than a Vietnamese syllable: a forbidden initial cluster,
// an ou/yo vowel sequence, a consonant+r junction after the vowel, or
// an s-to-vowel junction like rs+vowel.
func IsForeignPattern(raw string) bool {
	w := strings.ToLower(raw)
	if len(w) < 2 {
		return false
	}

	for _, onset := range invalidOnsets {
		if strings.HasPrefix(w, onset) {
			return true
		}
	}

	if strings.Contains(w, "ou") || strings.Contains(w, "yo") {
		return true
	}

	runes := []rune(w)
	sawVowel := false
	for i, r := range runes {
		if isPlainVowel(r) {
			sawVowel = true
			continue
		}
		if !sawVowel || i == 0 {
			continue
		}
		// metric, control, abstract: consonant+r after the nucleus
		if r == 'r' {
			switch runes[i-1] {
			case 'b', 'c', 'd', 'g', 'p', 't':
				return true
			}
		}
		// verse+vowel junctions: rs, ns, ls followed by a vowel
		if r == 's' && i+1 < len(runes) && isPlainVowel(runes[i+1]) {
			switch runes[i-1] {
			case 'r', 'n', 'l':
				return true
			}
		}
	}
	return false
}

func isPlainVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
