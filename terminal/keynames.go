package terminal

import "strings"

// keyToName maps special keys to canonical config string names
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",
}

// nameToKey is the reverse lookup, built from keyToName plus ctrl_<letter>
var nameToKey map[string]Key

func init() {
	nameToKey = make(map[string]Key, len(keyToName)+26)
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	for i := 0; i < 26; i++ {
		k := KeyCtrlA + Key(i)
		name := "ctrl_" + string(rune('a'+i))
		keyToName[k] = name
		nameToKey[name] = k
	}
	// Aliases
	nameToKey["shift_tab"] = KeyBacktab
	nameToKey["esc"] = KeyEscape
	nameToKey["return"] = KeyEnter
	nameToKey["space"] = KeyRune(' ')
}

// KeyName returns the canonical string name for a special key
// Returns empty string for KeyNone and printable runes
func KeyName(k Key) string {
	return keyToName[k]
}

// KeyByName resolves a config name to a key
// Single characters resolve to their rune code; names are case-insensitive
func KeyByName(name string) (Key, bool) {
	if r := []rune(name); len(r) == 1 && KeyRune(r[0]).IsRune() {
		return KeyRune(r[0]), true
	}
	k, ok := nameToKey[strings.ToLower(name)]
	return k, ok
}
