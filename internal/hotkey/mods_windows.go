//go:build windows

package hotkey

import "golang.design/x/hotkey"

// ctrlAlt is the Ctrl+Alt modifier pair on Windows.
var ctrlAlt = []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModAlt}
