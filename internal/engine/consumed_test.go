package engine

// Regression tests for the key-consumption contract. A transformation
// must set FlagKeyConsumed or the OS types the literal key after the
// engine's output (tiengs → tiếngs). The inverse holds too: a Send that
// changes nothing on screen must not consume, or the host caret
// desynchronizes.

import (
	"testing"

	"github.com/vnkb/vietkey/internal/keys"
)

func pressWord(e *Engine, s string) {
	for _, c := range s {
		if key := keys.FromChar(c); key != keys.None {
			e.OnKey(key, c >= 'A' && c <= 'Z', false)
		}
	}
}

func TestTelexToneSetsConsumedFlag(t *testing.T) {
	e := New()
	pressWord(e, "ba")
	r := e.OnKey(keys.S, false, false)
	if r.Action == ActionNone {
		t.Fatal("tone should produce output")
	}
	if !r.KeyConsumed() {
		t.Error("tone transformation must set FlagKeyConsumed")
	}
}

func TestTelexMarkSetsConsumedFlag(t *testing.T) {
	e := New()
	pressWord(e, "a")
	r := e.OnKey(keys.A, false, false)
	if r.Action == ActionNone {
		t.Fatal("mark should produce output")
	}
	if !r.KeyConsumed() {
		t.Error("mark transformation must set FlagKeyConsumed")
	}
}

func TestTelexStrokeSetsConsumedFlag(t *testing.T) {
	e := New()
	pressWord(e, "d")
	r := e.OnKey(keys.D, false, false)
	if r.Action == ActionNone {
		t.Fatal("stroke should produce output")
	}
	if !r.KeyConsumed() {
		t.Error("stroke transformation must set FlagKeyConsumed")
	}
}

func TestVniToneSetsConsumedFlag(t *testing.T) {
	e := New()
	e.SetMethod(1)
	pressWord(e, "a")
	r := e.OnKey(keys.N1, false, false)
	if r.Action == ActionNone {
		t.Fatal("VNI tone should produce output")
	}
	if !r.KeyConsumed() {
		t.Error("VNI tone must set FlagKeyConsumed")
	}
}

func TestOnKeyWithCharSetsConsumedFlag(t *testing.T) {
	e := New()
	e.OnKeyWithChar(keys.B, false, false, false, 'b')
	e.OnKeyWithChar(keys.A, false, false, false, 'a')
	r := e.OnKeyWithChar(keys.S, false, false, false, 's')
	if r.Action == ActionNone {
		t.Fatal("tone via char API should work")
	}
	if !r.KeyConsumed() {
		t.Error("OnKeyWithChar must also set FlagKeyConsumed")
	}
}

func TestRegressionDoubleTyping(t *testing.T) {
	e := New()
	pressWord(e, "tieng")
	r := e.OnKey(keys.S, false, false)
	if !r.KeyConsumed() {
		t.Error("without consumption the trailing s double-types (tiếngs)")
	}
}

func TestAllTelexToneKeysConsumed(t *testing.T) {
	for _, key := range []uint16{keys.S, keys.F, keys.R, keys.X, keys.J} {
		e := New()
		pressWord(e, "ba")
		r := e.OnKey(key, false, false)
		if !r.KeyConsumed() {
			t.Errorf("tone key %d must be consumed", key)
		}
	}
}

func TestEmptyOutputNotConsumed(t *testing.T) {
	// nguoi + w → ngươi; a second w has no target left and must pass
	// through so the OS types the literal w.
	e := New()
	pressWord(e, "nguoi")
	e.OnKey(keys.W, false, false)
	r := e.OnKey(keys.W, false, false)
	if r.KeyConsumed() && r.Count == 0 && r.Backspace == 0 {
		t.Error("empty output must not consume the key")
	}
}

func TestConsumptionLaw(t *testing.T) {
	// For arbitrary sequences: consumed ⇔ Send with a visible change.
	inputs := []string{
		"vieets", "tiengs", "ddau", "aaa", "ww", "tesst",
		"class", "nguoiww", "a", "asz", "hoaf",
	}
	for _, in := range inputs {
		e := New()
		for _, c := range in {
			key := keys.FromChar(c)
			if key == keys.None {
				continue
			}
			r := e.OnKey(key, false, false)
			visible := r.Action == ActionSend && (r.Backspace > 0 || r.Count > 0)
			if r.KeyConsumed() != visible {
				t.Errorf("%q: consumed=%v but visible-change=%v (action=%d bs=%d count=%d)",
					in, r.KeyConsumed(), visible, r.Action, r.Backspace, r.Count)
			}
		}
	}
}
