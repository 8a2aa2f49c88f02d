package transform

import (
	"testing"

	"github.com/vnkb/vietkey/internal/buffer"
	"github.com/vnkb/vietkey/internal/chars"
	"github.com/vnkb/vietkey/internal/input"
	"github.com/vnkb/vietkey/internal/keys"
	"github.com/vnkb/vietkey/internal/syllable"
)

func typedBuf(s string) *buffer.Buffer {
	var b buffer.Buffer
	for _, r := range s {
		base, mark, tone, caps := chars.Decompose(r)
		b.Append(buffer.Char{
			Key:  keys.FromChar(base),
			Base: base,
			Caps: caps,
			Mark: mark,
			Tone: tone,
		})
	}
	return &b
}

func apply(t *testing.T, b *buffer.Buffer, method *input.Method, key uint16) Result {
	t.Helper()
	return Apply(b, method, key, false, Options{ModernTone: true})
}

func TestToneApply(t *testing.T) {
	tests := []struct {
		word string
		key  uint16
		want string
		kind Kind
	}{
		{"ba", keys.S, "bá", KindTone},
		{"ba", keys.F, "bà", KindTone},
		{"toan", keys.S, "toán", KindTone},
		{"tien", keys.F, "tiền", KindTone}, // promoted ê carries the tone
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			b := typedBuf(tt.word)
			res := apply(t, b, input.Telex, tt.key)
			if res.Kind != tt.kind {
				t.Fatalf("kind = %d, want %d", res.Kind, tt.kind)
			}
			if got := syllable.Display(b); got != tt.want {
				t.Errorf("buffer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToneReplace(t *testing.T) {
	b := typedBuf("bá")
	res := apply(t, b, input.Telex, keys.F)
	if res.Kind != KindTone {
		t.Fatalf("kind = %d, want KindTone", res.Kind)
	}
	if got := syllable.Display(b); got != "bà" {
		t.Errorf("buffer = %q, want %q", got, "bà")
	}
}

func TestToneRevert(t *testing.T) {
	b := typedBuf("bá")
	res := apply(t, b, input.Telex, keys.S)
	if res.Kind != KindRevert {
		t.Fatalf("kind = %d, want KindRevert", res.Kind)
	}
	if got := syllable.Display(b); got != "bas" {
		t.Errorf("buffer = %q, want %q", got, "bas")
	}
}

func TestToneNoTarget(t *testing.T) {
	b := typedBuf("b")
	res := apply(t, b, input.Telex, keys.S)
	if res.Kind != KindNone {
		t.Errorf("kind = %d, want KindNone", res.Kind)
	}
}

func TestToneClear(t *testing.T) {
	b := typedBuf("bá")
	res := apply(t, b, input.Telex, keys.Z)
	if res.Kind != KindToneClear {
		t.Fatalf("kind = %d, want KindToneClear", res.Kind)
	}
	if got := syllable.Display(b); got != "ba" {
		t.Errorf("buffer = %q, want %q", got, "ba")
	}
	// No tone left: z is a plain letter now.
	if res := apply(t, b, input.Telex, keys.Z); res.Kind != KindNone {
		t.Errorf("second z kind = %d, want KindNone", res.Kind)
	}
}

func TestMarks(t *testing.T) {
	tests := []struct {
		word string
		key  uint16
		want string
		kind Kind
	}{
		{"a", keys.A, "â", KindMark},
		{"e", keys.E, "ê", KindMark},
		{"o", keys.O, "ô", KindMark},
		{"a", keys.W, "ă", KindMark},
		{"o", keys.W, "ơ", KindMark},
		{"u", keys.W, "ư", KindMark},
		{"â", keys.A, "aa", KindRevert},
		{"ă", keys.W, "aw", KindRevert},
		{"hoa", keys.A, "hoâ", KindMark}, // delayed: last matching vowel
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			b := typedBuf(tt.word)
			res := apply(t, b, input.Telex, tt.key)
			if res.Kind != tt.kind {
				t.Fatalf("kind = %d, want %d", res.Kind, tt.kind)
			}
			if got := syllable.Display(b); got != tt.want {
				t.Errorf("buffer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUOPair(t *testing.T) {
	b := typedBuf("nguoi")
	res := apply(t, b, input.Telex, keys.W)
	if res.Kind != KindMark {
		t.Fatalf("kind = %d, want KindMark", res.Kind)
	}
	if got := syllable.Display(b); got != "ngươi" {
		t.Errorf("buffer = %q, want %q", got, "ngươi")
	}

	// Fully horned pair: no target left, not a revert.
	res = apply(t, b, input.Telex, keys.W)
	if res.Kind != KindNone {
		t.Errorf("second w kind = %d, want KindNone", res.Kind)
	}
}

func TestWShortcut(t *testing.T) {
	var b buffer.Buffer
	res := Apply(&b, input.Telex, keys.W, false, Options{ModernTone: true})
	if res.Kind != KindMark {
		t.Fatalf("kind = %d, want KindMark", res.Kind)
	}
	if got := syllable.Display(&b); got != "ư" {
		t.Errorf("buffer = %q, want %q", got, "ư")
	}

	// Second w reverts the shortcut to a literal w.
	res = Apply(&b, input.Telex, keys.W, false, Options{ModernTone: true})
	if res.Kind != KindRevert {
		t.Fatalf("revert kind = %d", res.Kind)
	}
	if got := syllable.Display(&b); got != "w" {
		t.Errorf("buffer = %q, want %q", got, "w")
	}
}

func TestWShortcutSkipped(t *testing.T) {
	var b buffer.Buffer
	res := Apply(&b, input.Telex, keys.W, false, Options{ModernTone: true, SkipWShortcut: true})
	if res.Kind != KindNone {
		t.Errorf("kind = %d, want KindNone with SkipWShortcut", res.Kind)
	}
}

func TestStroke(t *testing.T) {
	// Adjacent dd.
	b := typedBuf("d")
	if res := apply(t, b, input.Telex, keys.D); res.Kind != KindStroke {
		t.Fatalf("kind = %d, want KindStroke", res.Kind)
	}
	if got := syllable.Display(b); got != "đ" {
		t.Errorf("buffer = %q, want %q", got, "đ")
	}
	// Third d reverts.
	if res := apply(t, b, input.Telex, keys.D); res.Kind != KindRevert {
		t.Fatal("third d must revert")
	}
	if got := syllable.Display(b); got != "dd" {
		t.Errorf("buffer = %q, want %q", got, "dd")
	}

	// Delayed stroke across the vowels.
	b = typedBuf("dau")
	if res := apply(t, b, input.Telex, keys.D); res.Kind != KindStroke {
		t.Fatal("delayed stroke must fire")
	}
	if got := syllable.Display(b); got != "đau" {
		t.Errorf("buffer = %q, want %q", got, "đau")
	}
}

func TestVniStroke(t *testing.T) {
	b := typedBuf("d")
	if res := apply(t, b, input.Vni, keys.N9); res.Kind != KindStroke {
		t.Fatal("VNI 9 must stroke d")
	}
	if got := syllable.Display(b); got != "đ" {
		t.Errorf("buffer = %q, want %q", got, "đ")
	}
}

func TestAppendLiteral(t *testing.T) {
	var b buffer.Buffer
	AppendLiteral(&b, keys.A, true)
	AppendLiteral(&b, keys.N7, false)
	if got := b.String(); got != "A7" {
		t.Errorf("buffer = %q, want %q", got, "A7")
	}
}

func TestCandidateIsolation(t *testing.T) {
	// Apply on a copy must leave the original untouched.
	orig := typedBuf("ba")
	cand := *orig
	apply(t, &cand, input.Telex, keys.S)
	if got := syllable.Display(orig); got != "ba" {
		t.Errorf("original mutated to %q", got)
	}
	if got := syllable.Display(&cand); got != "bá" {
		t.Errorf("candidate = %q, want bá", got)
	}
}
