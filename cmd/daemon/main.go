// Command daemon exposes the Vietnamese input engine on the session
// D-Bus, where platform front-ends (Fcitx5 hooks, test harnesses) call
// it for every keystroke and apply the returned edit commands.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/godbus/dbus/v5"

	"github.com/vnkb/vietkey/internal/engine"
	"github.com/vnkb/vietkey/internal/keys"
)

const (
	serviceName = "com.github.vnkb.vietkey"
	objectPath  = "/Engine"
)

// InputEngine is the D-Bus object receiving key events from the
// front-end hook.
type InputEngine struct {
	engine *engine.Engine
	logger *log.Logger
}

// NewInputEngine creates the D-Bus object with default settings.
func NewInputEngine(logger *log.Logger) *InputEngine {
	return &InputEngine{
		engine: engine.New(),
		logger: logger,
	}
}

// OnKey handles one keystroke.
// Output: action, backspace count, inserted characters, flags.
func (e *InputEngine) OnKey(key uint16, caps, ctrl, shift bool) (uint8, uint8, []uint32, uint32, *dbus.Error) {
	r := e.engine.OnKeyExt(key, caps, ctrl, shift)

	if e.logger != nil {
		e.logger.Printf("Key: %-10s | Action: %d | Bs: %d | Insert: %-12q | Consumed: %v",
			keyName(key, caps, shift), r.Action, r.Backspace, r.Text(), r.KeyConsumed())
	}

	return r.Action, r.Backspace, r.Chars[:r.Count], r.Flags, nil
}

// OnKeyWithChar handles one keystroke with the OS-resolved character,
// the layout-independent path.
func (e *InputEngine) OnKeyWithChar(key uint16, caps, ctrl, shift bool, ch uint32) (uint8, uint8, []uint32, uint32, *dbus.Error) {
	r := e.engine.OnKeyWithChar(key, caps, ctrl, shift, rune(ch))
	return r.Action, r.Backspace, r.Chars[:r.Count], r.Flags, nil
}

// Clear resets the composition state.
func (e *InputEngine) Clear() *dbus.Error {
	e.engine.Clear()
	return nil
}

// SetMethod selects the typing convention: 0 Telex, 1 VNI.
func (e *InputEngine) SetMethod(id int32) *dbus.Error {
	e.engine.SetMethod(int(id))
	return nil
}

// SetEnabled toggles the engine.
func (e *InputEngine) SetEnabled(on bool) *dbus.Error {
	e.engine.SetEnabled(on)
	return nil
}

// SetModernTone selects the tone placement rule.
func (e *InputEngine) SetModernTone(on bool) *dbus.Error {
	e.engine.SetModernTone(on)
	return nil
}

// SetEnglishAutoRestore toggles English word protection.
func (e *InputEngine) SetEnglishAutoRestore(on bool) *dbus.Error {
	e.engine.SetEnglishAutoRestore(on)
	return nil
}

// GetBuffer returns the composed form of the current word.
func (e *InputEngine) GetBuffer() (string, *dbus.Error) {
	return e.engine.BufferString(), nil
}

// keyName renders a keysym for the log.
func keyName(key uint16, caps, shift bool) string {
	if ch, ok := keys.ToCharExt(key, caps, shift); ok {
		return fmt.Sprintf("%q", ch)
	}
	switch key {
	case keys.Delete:
		return "Backspace"
	case keys.Esc:
		return "Esc"
	case keys.Left:
		return "Left"
	case keys.Right:
		return "Right"
	case keys.Up:
		return "Up"
	case keys.Down:
		return "Down"
	case keys.Home:
		return "Home"
	case keys.End:
		return "End"
	case keys.PgUp:
		return "PgUp"
	case keys.PgDn:
		return "PgDn"
	}
	return fmt.Sprintf("0x%x", key)
}

func main() {
	conn, err := dbus.SessionBus()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to connect to session bus:", err)
		os.Exit(1)
	}
	defer conn.Close()

	reply, err := conn.RequestName(serviceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to request name:", err)
		os.Exit(1)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		fmt.Fprintln(os.Stderr, "Name already taken - another instance may be running")
		os.Exit(1)
	}

	var logger *log.Logger
	logFile, err := os.OpenFile("typing.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		defer logFile.Close()
		logger = log.New(logFile, "", log.LstdFlags)
		fmt.Println(">>> [vietkey] Logging to typing.log")
	} else {
		fmt.Fprintf(os.Stderr, ">>> [vietkey] Failed to open log file: %v\n", err)
	}

	inputEngine := NewInputEngine(logger)
	if err := conn.Export(inputEngine, dbus.ObjectPath(objectPath), serviceName); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to export object:", err)
		os.Exit(1)
	}

	fmt.Println("================================================")
	fmt.Println("vietkey backend is running")
	fmt.Println("================================================")
	fmt.Printf("  Service:     %s\n", serviceName)
	fmt.Printf("  Object Path: %s\n", objectPath)
	fmt.Println("  Method:      Telex")
	fmt.Println("------------------------------------------------")
	fmt.Println("Waiting for key events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\n>>> [vietkey] Shutting down...")
}
