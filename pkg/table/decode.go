package table

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// DecodeText turns raw bytes into UTF-8 text, invalid sequences are replaced with U+FFFD.
// Every other value, text included, is returned unchanged so applying it twice is the same as applying it once.
func DecodeText(v interface{}) interface{} {
	b, ok := v.([]byte)
	if !ok {
		return v
	}

	decoded, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}

	return string(decoded)
}

// DecodeString is DecodeText for values that must end up as text, such as headers and sheet names.
func DecodeString(v interface{}) string {
	switch s := DecodeText(v).(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
