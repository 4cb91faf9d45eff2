//go:build linux

package hotkey

import "golang.design/x/hotkey"

// ctrlAlt is the Ctrl+Alt modifier pair. X11 exposes Alt as Mod1.
var ctrlAlt = []hotkey.Modifier{hotkey.ModCtrl, hotkey.Mod1}
