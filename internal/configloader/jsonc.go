package configloader

import (
	"encoding/json"
	"fmt"
)

// parseJSONC decodes JSON that may carry // and /* */ comments.
func parseJSONC(content []byte, target any) error {
	if json.Unmarshal(content, target) == nil {
		return nil
	}
	if err := json.Unmarshal(stripJSONComments(content), target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

type jsoncState int

const (
	jsoncCode jsoncState = iota
	jsoncString
	jsoncLineComment
	jsoncBlockComment
)

// stripJSONComments drops comments outside string literals. Line comments
// keep their terminating newline.
func stripJSONComments(content []byte) []byte {
	out := make([]byte, 0, len(content))
	state := jsoncCode

	for i := 0; i < len(content); i++ {
		c := content[i]
		next := byte(0)
		if i+1 < len(content) {
			next = content[i+1]
		}

		switch state {
		case jsoncLineComment:
			if c == '\n' {
				out = append(out, c)
				state = jsoncCode
			}
		case jsoncBlockComment:
			if c == '*' && next == '/' {
				i++
				state = jsoncCode
			}
		case jsoncString:
			out = append(out, c)
			switch {
			case c == '\\' && next != 0:
				out = append(out, next)
				i++
			case c == '"':
				state = jsoncCode
			}
		case jsoncCode:
			switch {
			case c == '/' && next == '/':
				i++
				state = jsoncLineComment
			case c == '/' && next == '*':
				i++
				state = jsoncBlockComment
			default:
				if c == '"' {
					state = jsoncString
				}
				out = append(out, c)
			}
		}
	}
	return out
}
