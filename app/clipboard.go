package app

import (
	"fmt"
	"log"

	fallback "github.com/atotto/clipboard"
	"golang.design/x/clipboard"
)

var clipboardReady bool

// InitClipboard initializes the system clipboard. Failure is not fatal,
// copy operations fall back to a slower portable implementation.
func InitClipboard() {
	if err := clipboard.Init(); err != nil {
		log.Printf("[CLIPBOARD] Init failed: %v, using fallback", err)
		return
	}
	clipboardReady = true
}

// WriteClipboard copies text to the system clipboard.
func WriteClipboard(text string) error {
	if clipboardReady {
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	}
	return fallback.WriteAll(text)
}

// ReadClipboard returns the current clipboard text.
func ReadClipboard() (string, error) {
	if clipboardReady {
		return string(clipboard.Read(clipboard.FmtText)), nil
	}
	return fallback.ReadAll()
}

// CopyIconReference puts an icon reference of the form ":prefix-name:"
// on the clipboard, with the .svg extension stripped from the name.
func CopyIconReference(prefix, iconName string) error {
	name := iconName
	if len(name) > 4 && name[len(name)-4:] == ".svg" {
		name = name[:len(name)-4]
	}
	return WriteClipboard(fmt.Sprintf(":%s-%s:", prefix, name))
}
