//go:build darwin

package hotkey

import "golang.design/x/hotkey"

// ctrlAlt maps to Ctrl+Option on macOS.
var ctrlAlt = []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModOption}
