// Package engine implements the per-keystroke state machine that turns
// Telex or VNI key sequences into accented Vietnamese syllables.
//
// The engine is called synchronously from the host's keyboard hook. It
// owns a composition buffer and a raw-input log for the current word,
// and answers every key with an edit command: how many characters to
// backspace, what to insert, and whether the physical key must be
// swallowed. It never calls back into the host.
package engine

import (
	"strings"
	"unicode"

	"github.com/vnkb/vietkey/internal/buffer"
	"github.com/vnkb/vietkey/internal/input"
	"github.com/vnkb/vietkey/internal/keys"
	"github.com/vnkb/vietkey/internal/shortcut"
	"github.com/vnkb/vietkey/internal/syllable"
	"github.com/vnkb/vietkey/internal/transform"
	"github.com/vnkb/vietkey/internal/validation"
)

// Engine is one independent composition instance. Hosts that process
// several fields instantiate several engines; there is no global state.
type Engine struct {
	method *input.Method
	buf    buffer.Buffer

	// display mirrors what the host currently shows for the word.
	display []rune

	enabled            bool
	modernTone         bool
	englishAutoRestore bool
	allowForeign       bool
	skipWShortcut      bool
	autoCapitalize     bool

	// protected marks a word restored to its literal English form;
	// no further transforms run until the next word break.
	protected   bool
	pendingCaps bool

	shortcuts *shortcut.Table
	english   validation.WordSet
}

// New returns an engine with Telex, modern tone placement and every
// protection heuristic off.
func New() *Engine {
	return &Engine{
		method:      input.Telex,
		enabled:     true,
		modernTone:  true,
		pendingCaps: true,
		shortcuts:   shortcut.NewTable(),
		english:     validation.DefaultEnglishWords(),
	}
}

// Clear resets the composition state atomically.
func (e *Engine) Clear() {
	e.resetWord()
}

// SetMethod selects the typing convention: 0 Telex, 1 VNI.
func (e *Engine) SetMethod(id int) { e.method = input.Get(id) }

// Method returns the active method id.
func (e *Engine) Method() int { return e.method.ID }

// SetEnabled toggles the engine; when disabled every key passes through.
func (e *Engine) SetEnabled(on bool) {
	e.enabled = on
	if !on {
		e.resetWord()
	}
}

// IsEnabled reports whether the engine is processing keys.
func (e *Engine) IsEnabled() bool { return e.enabled }

// SetModernTone selects modern (hoà) or traditional (hòa) placement.
func (e *Engine) SetModernTone(on bool) { e.modernTone = on }

// ModernTone reports the active placement rule.
func (e *Engine) ModernTone() bool { return e.modernTone }

// SetEnglishAutoRestore toggles restoring English-looking words to
// their literal keystrokes.
func (e *Engine) SetEnglishAutoRestore(on bool) { e.englishAutoRestore = on }

// EnglishAutoRestore reports whether auto-restore is active.
func (e *Engine) EnglishAutoRestore() bool { return e.englishAutoRestore }

// SetAllowForeignConsonants accepts f, j, w, z as initials.
func (e *Engine) SetAllowForeignConsonants(on bool) { e.allowForeign = on }

// AllowForeignConsonants reports whether foreign initials are accepted.
func (e *Engine) AllowForeignConsonants() bool { return e.allowForeign }

// SetSkipWShortcut keeps a word-initial w literal instead of ư.
func (e *Engine) SetSkipWShortcut(on bool) { e.skipWShortcut = on }

// SkipWShortcut reports whether the ư shortcut is suppressed.
func (e *Engine) SkipWShortcut() bool { return e.skipWShortcut }

// SetAutoCapitalize uppercases the first letter after sentence-ending
// punctuation.
func (e *Engine) SetAutoCapitalize(on bool) { e.autoCapitalize = on }

// AutoCapitalize reports whether auto-capitalization is active.
func (e *Engine) AutoCapitalize() bool { return e.autoCapitalize }

// SetShortcuts installs the expansion table consulted at word breaks.
func (e *Engine) SetShortcuts(t *shortcut.Table) {
	if t != nil {
		e.shortcuts = t
	}
}

// SetEnglishWords replaces the English protection word set.
func (e *Engine) SetEnglishWords(w validation.WordSet) {
	if w != nil {
		e.english = w
	}
}

// BufferString returns the composed form of the current word.
func (e *Engine) BufferString() string {
	return syllable.Display(&e.buf)
}

// OnKey processes one keystroke.
func (e *Engine) OnKey(key uint16, caps, ctrl bool) Result {
	return e.OnKeyExt(key, caps, ctrl, false)
}

// OnKeyExt processes one keystroke with the shift state, so shifted
// digits and symbols break words instead of acting as VNI modifiers.
func (e *Engine) OnKeyExt(key uint16, caps, ctrl, shift bool) Result {
	if !e.enabled {
		return Result{}
	}
	if ctrl {
		e.resetWord()
		return Result{}
	}

	switch {
	case key == keys.Delete:
		return e.onDelete()
	case key == keys.Esc:
		// Flush as typed: the screen already shows the composed form.
		e.resetWord()
		return Result{}
	case keys.IsBreakExt(key, shift):
		return e.onBreak(key, shift)
	case keys.IsDigit(key):
		if e.method.ID == input.TelexID {
			// Digits are never modifiers under Telex.
			return e.onBreak(key, shift)
		}
		return e.onKeyPress(key, caps, shift)
	case keys.IsLetter(key):
		return e.onKeyPress(key, caps, shift)
	default:
		// Unknown keys flush the word and pass through.
		return e.onBreak(key, shift)
	}
}

// OnKeyWithChar is the layout-independent path: when the host supplies
// the OS-resolved character it overrides the keysym translation.
func (e *Engine) OnKeyWithChar(key uint16, caps, ctrl, shift bool, ch rune) Result {
	if ch != 0 {
		if k := keys.FromChar(ch); k != keys.None {
			key = k
			caps = unicode.IsUpper(ch)
			shift = keys.NeedsShift(ch)
		}
	}
	return e.OnKeyExt(key, caps, ctrl, shift)
}

func (e *Engine) transformOpts() transform.Options {
	return transform.Options{
		ModernTone:    e.modernTone,
		SkipWShortcut: e.skipWShortcut,
	}
}

func (e *Engine) onKeyPress(key uint16, caps, shift bool) Result {
	if e.buf.Full() || e.buf.RawFull() {
		// BufferFull: flush the composed form and start fresh.
		e.resetWord()
	}
	atWordStart := e.buf.Len() == 0
	e.buf.RawAppend(buffer.RawKey{Key: key, Caps: caps, Shift: shift})

	// The host echoes the key with the case it was typed in.
	typedCaps := caps
	if e.autoCapitalize && e.pendingCaps && atWordStart && keys.IsLetter(key) {
		caps = true
	}
	if keys.IsLetter(key) {
		e.pendingCaps = false
	}

	cand := e.buf
	res := transform.Result{Kind: transform.KindNone, Pos: -1}
	if !e.protected {
		res = transform.Apply(&cand, e.method, key, caps, e.transformOpts())
	}

	accepted := false
	switch res.Kind {
	case transform.KindNone:
	case transform.KindRevert, transform.KindToneClear:
		accepted = true
	default:
		v := validation.IsValid(&cand, validation.Options{
			WithTones:    true,
			AllowForeign: e.allowForeign,
		})
		accepted = v.Valid
		// A stroke on a vowel-less prefix (dd before the nucleus) is a
		// legal in-progress shape.
		if !accepted && res.Kind == transform.KindStroke && v.Reason == validation.ReasonNoVowel {
			accepted = true
		}
	}

	if !accepted {
		cand = e.buf
		transform.AppendLiteral(&cand, key, caps)
		if e.englishAutoRestore && !e.protected && cand.RawLen() >= 5 {
			v := validation.IsValid(&cand, validation.Options{AllowForeign: e.allowForeign})
			if !v.Valid && e.englishLike(&cand) {
				return e.restoreMidWord()
			}
		}
	}

	syllable.NormalizeTone(&cand, e.modernTone)
	e.buf = cand
	return e.emit(key, typedCaps, shift)
}

// emit compares the new composed form with the host's screen. When the
// key's own echo completes the word no edit is needed and the key
// passes through; otherwise the engine sends the difference and the key
// is consumed.
func (e *Engine) emit(key uint16, caps, shift bool) Result {
	newDisp := []rune(syllable.Display(&e.buf))
	echo, hasEcho := keys.ToCharExt(key, caps, shift)
	if hasEcho &&
		len(newDisp) == len(e.display)+1 &&
		newDisp[len(newDisp)-1] == echo &&
		runesHavePrefix(newDisp, e.display) {
		e.display = append(e.display, echo)
		return Result{}
	}
	return e.sendDiff(newDisp)
}

// sendDiff emits the minimal backspace+insert edit that turns the
// host's screen into target. An empty edit never consumes.
func (e *Engine) sendDiff(target []rune) Result {
	p := 0
	for p < len(e.display) && p < len(target) && e.display[p] == target[p] {
		p++
	}
	bs := len(e.display) - p
	ins := target[p:]
	if bs == 0 && len(ins) == 0 {
		return Result{}
	}

	r := Result{
		Action:    ActionSend,
		Backspace: uint8(bs),
		Count:     uint8(len(ins)),
		Flags:     FlagKeyConsumed,
	}
	for i, ch := range ins {
		if i >= MaxChars {
			break
		}
		r.Chars[i] = uint32(ch)
	}
	e.display = append(e.display[:0], target...)
	return r
}

func (e *Engine) onDelete() Result {
	if e.buf.Len() == 0 {
		e.resetWord()
		return Result{}
	}
	e.buf.Pop()
	e.buf.RawPop()
	syllable.NormalizeTone(&e.buf, e.modernTone)

	newDisp := []rune(syllable.Display(&e.buf))
	if len(e.display) > 0 &&
		len(newDisp) == len(e.display)-1 &&
		runesHavePrefix(e.display, newDisp) {
		// The host's own backspace removes exactly the last character.
		e.display = e.display[:len(e.display)-1]
		return Result{}
	}
	return e.sendDiff(newDisp)
}

func (e *Engine) onBreak(key uint16, shift bool) Result {
	breakCh, hasCh := keys.ToCharExt(key, false, shift)
	var r Result

	if e.buf.Len() > 0 && hasCh {
		if e.englishAutoRestore && !e.protected && e.englishLike(&e.buf) {
			target := append([]rune(e.buf.RawString()), breakCh)
			r = e.sendDiff(target)
		} else if repl, ok := e.shortcuts.Lookup(string(e.display), shortcut.AtWordBreak); ok {
			target := append([]rune(repl), breakCh)
			r = e.sendDiff(target)
		}
	}

	e.resetWord()
	e.updatePendingCaps(key, breakCh)
	return r
}

// englishLike reports whether the buffer's raw history looks like an
// English word the user did not want transformed.
func (e *Engine) englishLike(b *buffer.Buffer) bool {
	raw := b.RawString()
	if raw == "" || syllable.Display(b) == raw {
		return false
	}
	if e.allowForeign {
		if c, ok := b.Get(0); ok {
			switch c.Base {
			case 'f', 'j', 'w', 'z':
				return false
			}
		}
	}
	lower := strings.ToLower(raw)
	return e.english.Contains(lower) || validation.IsForeignPattern(lower)
}

// restoreMidWord rewrites the composed word back to the literal raw
// keystrokes and freezes transforms until the next break.
func (e *Engine) restoreMidWord() Result {
	r := e.sendDiff([]rune(e.buf.RawString()))
	e.buf.ResetComposed()
	for i := 0; i < e.buf.RawLen(); i++ {
		k, _ := e.buf.RawAt(i)
		transform.AppendLiteral(&e.buf, k.Key, k.Caps)
	}
	e.protected = true
	return r
}

func (e *Engine) resetWord() {
	e.buf.Clear()
	e.display = e.display[:0]
	e.protected = false
}

func (e *Engine) updatePendingCaps(key uint16, breakCh rune) {
	switch {
	case key == keys.Return:
		e.pendingCaps = true
	case breakCh == '.' || breakCh == '!' || breakCh == '?':
		e.pendingCaps = true
	case breakCh == ' ' || breakCh == '\t' || breakCh == 0:
		// whitespace and caret movement keep the pending state
	default:
		e.pendingCaps = false
	}
}

func runesHavePrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}
