package tui

// Action is what a key press asks the model to do.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionReroll
	ActionQuit
)

// ActionFor classifies a key name produced by ParseKeys.
func ActionFor(key string) Action {
	switch key {
	case "n", "N", "space", "enter", "right":
		return ActionNext
	case "r", "R":
		return ActionReroll
	case "q", "Q", "ctrl+c", "ctrl+d":
		return ActionQuit
	default:
		return ActionNone
	}
}

// ParseKeys decodes raw terminal input into key messages. CR LF is one
// enter. Arrow keys arrive as ESC [ A..D; any other escape sequence is reported as "esc" followed by
// its remaining bytes.
func ParseKeys(p []byte) []KeyMsg {
	keys := make([]KeyMsg, 0, len(p))
	for i := 0; i < len(p); i++ {
		b := p[i]
		switch {
		case b == 0x1b && i+2 < len(p) && p[i+1] == '[':
			if name, ok := arrowKeys[p[i+2]]; ok {
				keys = append(keys, KeyMsg{Key: name})
				i += 2
				continue
			}
			keys = append(keys, KeyMsg{Key: "esc"})
		case b == 0x1b:
			keys = append(keys, KeyMsg{Key: "esc"})
		case b == '\r' || b == '\n':
			if b == '\r' && i+1 < len(p) && p[i+1] == '\n' {
				i++
			}
			keys = append(keys, KeyMsg{Key: "enter"})
		case b == ' ':
			keys = append(keys, KeyMsg{Key: "space"})
		case b == 0x03:
			keys = append(keys, KeyMsg{Key: "ctrl+c"})
		case b == 0x04:
			keys = append(keys, KeyMsg{Key: "ctrl+d"})
		case b == 0x7f || b == 0x08:
			keys = append(keys, KeyMsg{Key: "backspace"})
		case b >= 0x20 && b < 0x7f:
			keys = append(keys, KeyMsg{Key: string(rune(b))})
		}
	}
	return keys
}

var arrowKeys = map[byte]string{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
}
