// Package clipboardx moves text between the editor and the system
// clipboard, falling back to helper commands, OSC 52 and an in-process
// register when the system clipboard is unreachable.
package clipboardx

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

type command struct {
	name string
	args []string
}

var (
	writeCommands = []command{
		{name: "wl-copy"},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
		{name: "pbcopy"},
		{name: "clip.exe"},
	}
	readCommands = []command{
		{name: "wl-paste", args: []string{"--no-newline"}},
		{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--output"}},
		{name: "pbpaste"},
		{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}},
	}
)

// Clipboard is the editor's copy/paste target. The zero value is not
// usable; call New or NewInternal.
type Clipboard struct {
	// System disables every external mechanism when false.
	System bool
	// Terminal receives OSC 52 sequences; nil disables them.
	Terminal io.Writer

	internal string
}

// New returns a clipboard backed by the system clipboard and OSC 52 on
// stdout when stdout is a terminal.
func New() *Clipboard {
	c := &Clipboard{System: true}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		c.Terminal = os.Stdout
	}
	return c
}

// NewInternal returns a clipboard that never leaves the process.
func NewInternal() *Clipboard {
	return &Clipboard{}
}

// Write stores text and reports whether any external mechanism accepted it.
// The in-process copy is always kept.
func (c *Clipboard) Write(text string) bool {
	c.internal = text
	if !c.System {
		return false
	}
	ok := false
	if err := clipboard.WriteAll(text); err == nil {
		ok = true
	} else if writeWithCommands(text) {
		ok = true
	}
	if c.writeOSC52(text) {
		ok = true
	}
	return ok
}

// Read returns the clipboard text, preferring the system clipboard.
func (c *Clipboard) Read() string {
	if c.System {
		if text, err := clipboard.ReadAll(); err == nil && text != "" {
			return normalize(text)
		}
		if text, ok := readWithCommands(); ok && text != "" {
			return normalize(text)
		}
	}
	return c.internal
}

func normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func writeWithCommands(text string) bool {
	for _, cmdCfg := range writeCommands {
		if _, err := exec.LookPath(cmdCfg.name); err != nil {
			continue
		}
		cmd := exec.Command(cmdCfg.name, cmdCfg.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return true
		}
	}
	return false
}

func readWithCommands() (string, bool) {
	for _, cmdCfg := range readCommands {
		if _, err := exec.LookPath(cmdCfg.name); err != nil {
			continue
		}
		out, err := exec.Command(cmdCfg.name, cmdCfg.args...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

func (c *Clipboard) writeOSC52(text string) bool {
	if text == "" || c.Terminal == nil {
		return false
	}
	_, err := fmt.Fprint(c.Terminal, OSC52(text))
	return err == nil
}

// OSC52 returns the escape sequence asking the terminal to set its
// clipboard to text.
func OSC52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
}
