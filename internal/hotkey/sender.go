package hotkey

import (
	"github.com/micmonay/keybd_event"
)

// KeySender issues synthetic copy/paste chords to the OS. The capture
// sequence needs to press Ctrl+C in the focused application to pull the
// current selection through the clipboard.
type KeySender interface {
	SendCopy() error
	SendPaste() error
}

type systemSender struct {
	copyKb  keybd_event.KeyBonding
	pasteKb keybd_event.KeyBonding
}

// NewSystemSender prepares synthetic Ctrl+C / Ctrl+V key bondings.
func NewSystemSender() (KeySender, error) {
	copyKb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, err
	}
	copyKb.SetKeys(keybd_event.VK_C)
	copyKb.HasCTRL(true)

	pasteKb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, err
	}
	pasteKb.SetKeys(keybd_event.VK_V)
	pasteKb.HasCTRL(true)

	return &systemSender{copyKb: copyKb, pasteKb: pasteKb}, nil
}

func (s *systemSender) SendCopy() error {
	return s.copyKb.Launching()
}

func (s *systemSender) SendPaste() error {
	return s.pasteKb.Launching()
}
