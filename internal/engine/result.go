package engine

// Action values for Result.Action.
const (
	ActionNone uint8 = 0 // pass the key through untouched
	ActionSend uint8 = 1 // apply the edit to the focused field
)

// MaxChars is the fixed capacity of Result.Chars. An English restore
// re-emits the whole raw log plus the break character, so it tracks the
// raw-log bound with headroom.
const MaxChars = 48

// FlagKeyConsumed tells the host to swallow the physical keystroke.
const FlagKeyConsumed uint32 = 1 << 0

// Result is the edit command returned for every key. The layout is
// bit-exact across the FFI surface: the host deletes Backspace
// characters left of the caret, then inserts Chars[:Count].
type Result struct {
	Action    uint8
	Backspace uint8
	Count     uint8
	Chars     [MaxChars]uint32
	Flags     uint32
}

// KeyConsumed reports whether the host must swallow the physical key.
func (r Result) KeyConsumed() bool {
	return r.Flags&FlagKeyConsumed != 0
}

// Text decodes the inserted characters. Test and logging helper.
func (r Result) Text() string {
	runes := make([]rune, 0, r.Count)
	for i := 0; i < int(r.Count); i++ {
		runes = append(runes, rune(r.Chars[i]))
	}
	return string(runes)
}
