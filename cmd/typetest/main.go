// Command typetest is an interactive terminal harness for the engine:
// it runs a one-line editor where every keystroke goes through the IME
// pipeline exactly the way a platform hook would drive it.
//
// Keys: F2 toggles Telex/VNI, F3 toggles English auto-restore,
// F4 toggles the tone placement rule, Ctrl+C quits.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/vnkb/vietkey/internal/engine"
	"github.com/vnkb/vietkey/internal/keys"
)

type app struct {
	screen tcell.Screen
	eng    *engine.Engine
	line   []rune
}

func (a *app) draw() {
	a.screen.Clear()
	style := tcell.StyleDefault

	col := 0
	for _, r := range a.line {
		a.screen.SetContent(col, 1, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	a.screen.ShowCursor(col, 1)

	method := "Telex"
	if a.eng.Method() == 1 {
		method = "VNI"
	}
	status := fmt.Sprintf(" %s | auto-restore:%v | modern-tone:%v | buffer:%q ",
		method, a.eng.EnglishAutoRestore(), a.eng.ModernTone(), a.eng.BufferString())
	bar := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		a.screen.SetContent(i, 3, r, nil, bar)
	}
	a.screen.Show()
}

// apply replays an engine Result onto the edit line the way a host
// field would.
func (a *app) apply(r engine.Result, echo rune) {
	if r.Action == engine.ActionSend {
		for i := 0; i < int(r.Backspace) && len(a.line) > 0; i++ {
			a.line = a.line[:len(a.line)-1]
		}
		a.line = append(a.line, []rune(r.Text())...)
		if !r.KeyConsumed() && echo != 0 {
			a.line = append(a.line, echo)
		}
		return
	}
	if echo != 0 {
		a.line = append(a.line, echo)
	}
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyF2:
		a.eng.SetMethod(1 - a.eng.Method())
		a.eng.Clear()
	case tcell.KeyF3:
		a.eng.SetEnglishAutoRestore(!a.eng.EnglishAutoRestore())
	case tcell.KeyF4:
		a.eng.SetModernTone(!a.eng.ModernTone())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		r := a.eng.OnKey(keys.Delete, false, false)
		if r.Action == engine.ActionSend {
			a.apply(r, 0)
		} else if len(a.line) > 0 {
			a.line = a.line[:len(a.line)-1]
		}
	case tcell.KeyEscape:
		a.eng.OnKey(keys.Esc, false, false)
	case tcell.KeyEnter:
		r := a.eng.OnKey(keys.Return, false, false)
		a.apply(r, 0)
		a.line = a.line[:0]
	case tcell.KeyRune:
		ch := ev.Rune()
		key := keys.FromChar(ch)
		if key == keys.None {
			a.line = append(a.line, ch)
			break
		}
		r := a.eng.OnKeyWithChar(key, false, false, false, ch)
		a.apply(r, ch)
	}
	return true
}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "typetest:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "typetest:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	a := &app{screen: screen, eng: engine.New()}
	a.draw()

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if !a.handleKey(ev) {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
		a.draw()
	}
}
