package editor

import "github.com/atotto/clipboard"

// Clipboard is the system copy/paste buffer
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// systemClipboard goes through the platform clipboard tools
type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard returns the platform clipboard, nil when no backend exists
func SystemClipboard() Clipboard {
	if clipboard.Unsupported {
		return nil
	}
	return systemClipboard{}
}
