package openqcat

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Producers emit the EDUCATION type flag without a value (<EDUCATION type>),
// with an empty value, or self-closing without a value. None of these survive
// a parse/build cycle, so the raw text is patched before parsing and again
// after building.
var legacyEducationType = regexp.MustCompile(`(<EDUCATION\b[^<>]*?\s)type(?:\s*=\s*(?:""|''))?(\s*/?>|\s+[A-Za-z_])`)

// FixLegacyAttributes rewrites every valueless or empty EDUCATION type
// attribute to type="false".
func FixLegacyAttributes(text string) string {
	return legacyEducationType.ReplaceAllString(text, `${1}type="false"${2}`)
}

// Supported input charsets.
const (
	CharsetLatin9 = "ISO-8859-15"
	CharsetUTF8   = "UTF-8"
)

// Decode turns raw catalog bytes into text. Catalog files are Latin-9 unless
// configured otherwise; output is always UTF-8.
func Decode(raw []byte, charset string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(charset)) {
	case "", CharsetLatin9, "LATIN-9", "LATIN9":
		b, err := charmap.ISO8859_15.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("openqcat: decode %s: %w", CharsetLatin9, err)
		}
		return string(b), nil
	case CharsetUTF8, "UTF8":
		return strings.TrimPrefix(string(raw), "\uFEFF"), nil
	default:
		return "", fmt.Errorf("openqcat: unsupported charset %q", charset)
	}
}
