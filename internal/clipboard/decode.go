package clipboard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"

	"textp2srt/internal/config"
)

// Decoder turns raw clipboard bytes into text.
type Decoder struct {
	Preferred string
	Fallbacks []string
}

// Decoded is the outcome of one Decode call.
type Decoded struct {
	Text string
	// Encoding names the encoding that produced Text.
	Encoding string
	// Fallback is set when Text came from a fallback encoding.
	Fallback bool
	// Lossy is set when every encoding failed and invalid bytes were replaced.
	Lossy bool
}

var replacementChar = string(utf8.RuneError)

// Decode tries the preferred encoding, then each fallback in order, and
// finally decodes with the preferred encoding replacing invalid input.
func (d Decoder) Decode(raw []byte) Decoded {
	preferred := config.NormalizeEncoding(d.Preferred)
	if preferred == "" {
		preferred = "utf-8"
	}
	if text, ok := decodeStrict(preferred, raw); ok {
		return Decoded{Text: text, Encoding: preferred}
	}
	for _, name := range d.Fallbacks {
		name = config.NormalizeEncoding(name)
		if name == "" || name == preferred {
			continue
		}
		if text, ok := decodeStrict(name, raw); ok {
			return Decoded{Text: text, Encoding: name, Fallback: true}
		}
	}
	return Decoded{Text: decodeLossy(preferred, raw), Encoding: preferred, Lossy: true}
}

func lookup(name string) (encoding.Encoding, error) {
	switch name {
	case "utf-16-le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "shift_jis":
		return japanese.ShiftJIS, nil
	case "mac_roman":
		return charmap.Macintosh, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// decodeStrict reports failure when the input is not valid in the named
// encoding. The x/text decoders substitute U+FFFD for invalid sequences, so
// a replacement rune that the input does not itself encode marks a failure.
func decodeStrict(name string, raw []byte) (string, bool) {
	if name == "utf-8" {
		if !utf8.Valid(raw) {
			return "", false
		}
		return string(raw), true
	}
	if name == "utf-16-le" && len(raw)%2 != 0 {
		return "", false
	}
	enc, err := lookup(name)
	if err != nil {
		return "", false
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	text := string(out)
	if strings.Contains(text, replacementChar) && !encodesReplacement(enc, raw) {
		return "", false
	}
	return text, true
}

func encodesReplacement(enc encoding.Encoding, raw []byte) bool {
	encoded, err := enc.NewEncoder().Bytes([]byte(replacementChar))
	if err != nil || len(encoded) == 0 {
		return false
	}
	return strings.Contains(string(raw), string(encoded))
}

func decodeLossy(name string, raw []byte) string {
	if name == "utf-8" {
		return strings.ToValidUTF8(string(raw), replacementChar)
	}
	enc, err := lookup(name)
	if err != nil {
		return strings.ToValidUTF8(string(raw), replacementChar)
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), replacementChar)
	}
	return string(out)
}
