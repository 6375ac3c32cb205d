// Package ingest reads changelog files from disk and feeds them to the
// release notes parser. Files exported from Word or older editors arrive in
// a mix of encodings, so bytes are decoded before parsing.
package ingest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names the encoding Decode settled on.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingUTF16LE     Encoding = "utf-16le"
	EncodingUTF16BE     Encoding = "utf-16be"
	EncodingWindows1252 Encoding = "windows-1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw file bytes to a UTF-8 string. A byte order mark
// selects UTF-8 or UTF-16. Without one the bytes are read as UTF-8 unless
// too many sequences are invalid, in which case they are read as
// Windows-1252.
func Decode(data []byte) (string, Encoding, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), EncodingUTF8, nil
	case bytes.HasPrefix(data, bomUTF16LE):
		s, err := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder(), data)
		return s, EncodingUTF16LE, err
	case bytes.HasPrefix(data, bomUTF16BE):
		s, err := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder(), data)
		return s, EncodingUTF16BE, err
	}

	if invalidUTF8(data) > replacementBudget(len(data)) {
		s, err := decodeWith(charmap.Windows1252.NewDecoder(), data)
		return s, EncodingWindows1252, err
	}
	return strings.ToValidUTF8(string(data), "�"), EncodingUTF8, nil
}

func decodeWith(t transform.Transformer, data []byte) (string, error) {
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", fmt.Errorf("decoding input: %w", err)
	}
	return string(out), nil
}

// replacementBudget is how many invalid sequences a UTF-8 file may carry.
func replacementBudget(n int) int {
	return max(3, n/200)
}

func invalidUTF8(data []byte) int {
	bad := 0
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			bad++
		}
		data = data[size:]
	}
	return bad
}

// ReadFile reads and decodes one file.
func ReadFile(path string) (string, Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	text, enc, err := Decode(data)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", path, err)
	}
	return text, enc, nil
}
