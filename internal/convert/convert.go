// Package convert adapts the keystroke engine into a streaming
// golang.org/x/text transformer, so whole documents typed in literal
// Telex or VNI can be converted to accented Vietnamese in one pass.
package convert

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vnkb/vietkey/internal/engine"
	"github.com/vnkb/vietkey/internal/keys"
)

// Transformer feeds input runes through an Engine and emits each word
// once it is sealed by a break character. It implements
// transform.Transformer; wrap it with New to get NFC-clean input.
type Transformer struct {
	eng  *engine.Engine
	word []rune // screen state of the unfinished word
}

// NewTransformer returns the bare engine-backed transformer for the
// given method id (0 Telex, 1 VNI).
func NewTransformer(method int) *Transformer {
	e := engine.New()
	e.SetMethod(method)
	return &Transformer{eng: e}
}

// New returns the full conversion pipeline: input is normalized to NFC
// first, so decomposed accents from other tools do not reach the
// engine as bogus keystrokes.
func New(method int) transform.Transformer {
	return transform.Chain(norm.NFC, NewTransformer(method))
}

// Convert runs a whole string through the pipeline.
func Convert(s string, method int) (string, error) {
	out, _, err := transform.String(New(method), s)
	return out, err
}

// Reset implements transform.Transformer.
func (t *Transformer) Reset() {
	t.eng.Clear()
	t.word = t.word[:0]
}

// Transform implements transform.Transformer. Output is held back one
// word at a time: characters of the word in progress stay buffered
// until a break key seals them, because a later modifier may still
// rewrite them.
func (t *Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		ch, size := utf8.DecodeRune(src[nSrc:])
		if ch == utf8.RuneError && size == 1 && !atEOF {
			err = transform.ErrShortSrc
			break
		}

		key := keys.FromChar(ch)
		if key == keys.None {
			// Not a typeable key: seal the word and copy the rune.
			t.eng.Clear()
			n, copyErr := t.flush(dst[nDst:], t.word, ch)
			if copyErr != nil {
				err = copyErr
				break
			}
			t.word = t.word[:0]
			nDst += n
			nSrc += size
			continue
		}

		isBreak := keys.IsBreakExt(key, keys.NeedsShift(ch))
		if isBreak {
			// A break flushes and may rewrite the word (auto-restore),
			// so demand worst-case room before touching engine state.
			if len(dst)-nDst < (len(t.word)+engine.MaxChars+1)*utf8.UTFMax {
				err = transform.ErrShortDst
				break
			}
		}

		r := t.eng.OnKeyWithChar(key, false, false, false, ch)
		t.applyResult(r, ch, key)

		if isBreak {
			n, copyErr := t.flush(dst[nDst:], t.word, 0)
			if copyErr != nil {
				err = copyErr
				break
			}
			t.word = t.word[:0]
			nDst += n
		}
		nSrc += size
	}

	if err == nil && atEOF && len(t.word) > 0 {
		n, copyErr := t.flush(dst[nDst:], t.word, 0)
		if copyErr != nil {
			return nDst, nSrc, copyErr
		}
		t.word = t.word[:0]
		nDst += n
	}
	return nDst, nSrc, err
}

// applyResult replays an engine edit onto the buffered word.
func (t *Transformer) applyResult(r engine.Result, ch rune, key uint16) {
	if r.Action == engine.ActionSend {
		for i := 0; i < int(r.Backspace) && len(t.word) > 0; i++ {
			t.word = t.word[:len(t.word)-1]
		}
		t.word = append(t.word, []rune(r.Text())...)
		if !r.KeyConsumed() {
			t.word = append(t.word, ch)
		}
		return
	}
	t.word = append(t.word, ch)
}

// flush copies a sealed word (plus an optional trailing rune) to dst.
func (t *Transformer) flush(dst []byte, word []rune, extra rune) (int, error) {
	need := 0
	for _, r := range word {
		need += utf8.RuneLen(r)
	}
	if extra != 0 {
		need += utf8.RuneLen(extra)
	}
	if need > len(dst) {
		return 0, transform.ErrShortDst
	}
	n := 0
	for _, r := range word {
		n += utf8.EncodeRune(dst[n:], r)
	}
	if extra != 0 {
		n += utf8.EncodeRune(dst[n:], extra)
	}
	return n, nil
}
