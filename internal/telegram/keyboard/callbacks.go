package keyboard

import (
	"fmt"
	"strings"
)

// Callback actions carried in inline keyboard data as "action:value".
const (
	ActionSelectForm = "form"
	ActionAccept     = "accept"
	ActionOriginal   = "original"
	ActionRevise     = "revise"
	ActionAsk        = "ask"
	ActionReturn     = "return"
	ActionRetry      = "retry"
)

// EncodeCallback packs an action and value into callback data.
func EncodeCallback(action, value string) string {
	if value == "" {
		return action
	}
	return fmt.Sprintf("%s:%s", action, value)
}

// ParseCallback splits callback data back into action and value.
func ParseCallback(data string) (action, value string) {
	action, value, _ = strings.Cut(data, ":")
	return action, value
}
