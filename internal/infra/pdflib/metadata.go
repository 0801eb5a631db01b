package pdflib

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/unicode"
)

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)

func decodeInfoValue(obj types.Object) any {
	switch v := obj.(type) {
	case types.StringLiteral:
		if s, err := types.StringLiteralToString(v); err == nil {
			return s
		}
	case types.HexLiteral:
		if s, err := types.HexLiteralToString(v); err == nil {
			return s
		}
	}
	return obj
}

// encodeInfoValue returns a text string object for s. Printable ASCII is
// stored as is; anything else goes out as UTF-16BE with a byte order mark.
// Hex form avoids escaping parentheses and backslashes.
func encodeInfoValue(s string) (types.Object, error) {
	if isPrintableASCII(s) {
		return types.NewHexLiteral([]byte(s)), nil
	}
	enc, err := utf16BE.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}
	return types.NewHexLiteral([]byte(enc)), nil
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
