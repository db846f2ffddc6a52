package copytree

import "github.com/atotto/clipboard"

// SystemClipboard is the default ClipboardWriter, backed by the system
// clipboard (spec.md §5 "copy" writes to stdout or the clipboard).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
