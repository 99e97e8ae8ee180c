package scriptgen

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	jsonFenceRe    = regexp.MustCompile("(?s)```json(.*?)```")
	genericFenceRe = regexp.MustCompile("(?s)```(.*?)```")
)

// ExtractSceneArray pulls the JSON scene array out of a free-form model
// reply. Models wrap JSON in markdown fences and surround it with prose, so
// extraction tries, in order: a fenced block labeled json, any fenced block,
// and finally the span between the first '[' and the last ']'.
func ExtractSceneArray(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyScript
	}

	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	} else if m := genericFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	text = strings.TrimSpace(text)

	if !(strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")) {
		start := strings.Index(text, "[")
		end := strings.LastIndex(text, "]")
		if start == -1 || end == -1 || end < start {
			return "", fmt.Errorf("%w: no JSON array found in reply", ErrScriptUnparsable)
		}
		text = text[start : end+1]
	}

	return text, nil
}
