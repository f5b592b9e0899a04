// Package textnorm canonicalizes text for typing practice. OCR output and
// ebook exports carry dozens of Unicode punctuation variants that a keyboard
// cannot produce; Normalize folds them all to their ASCII equivalents so that
// what the user sees is what the user can type.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// punctFold maps typographic punctuation variants to typeable ASCII.
var punctFold = map[rune]rune{
	// Apostrophe-like code points.
	'’': '\'', // right single quotation mark
	'‘': '\'', // left single quotation mark
	'`':      '\'',
	'ʼ': '\'', // modifier letter apostrophe
	'ˈ': '\'', // modifier letter vertical line
	'ʻ': '\'', // modifier letter turned comma
	'´': '\'', // acute accent
	'ˊ': '\'',
	'ˋ': '\'',
	'′': '\'', // prime
	'‛': '\'',
	'‚': '\'',
	'ʹ': '\'',
	'ʺ': '\'',
	'‵': '\'',
	'‶': '\'',
	'″': '\'',
	'‸': '\'',
	'‹': '\'',
	'›': '\'',

	// Quote-like code points.
	'“': '"',
	'”': '"',
	'„': '"',
	'«': '"',
	'»': '"',

	// Dash-like code points.
	'–': '-', // en dash
	'—': '-', // em dash
	'―': '-', // horizontal bar
	'‒': '-', // figure dash
	'⸺': '-', // two-em dash
	'⸻': '-', // three-em dash

	'•': '*', // bullet
	'·': '*', // middle dot
}

// digraphFold handles letters that NFD decomposition leaves intact.
var digraphFold = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'đ': "d",
	'ð': "d",
	'þ': "th",
	'ł': "l",
	'ı': "i",
	'Æ': "AE",
	'Œ': "OE",
	'Ø': "O",
	'Đ': "D",
	'Ð': "D",
	'Þ': "TH",
	'Ł': "L",
}

// Normalize folds typographic punctuation to ASCII and applies NFKC
// compatibility normalization. It is idempotent: Normalize(Normalize(s)) ==
// Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '…' { // horizontal ellipsis
			b.WriteString("...")
			continue
		}
		if folded, ok := punctFold[r]; ok {
			b.WriteRune(folded)
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFKC.String(b.String())
}

var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.In(unicode.Mc)),
	norm.NFC,
)

// StripAccents removes combining marks and folds digraph letters (ß→ss, æ→ae,
// ø→o, …) so that accented and plain spellings compare equal. It is used for
// character-level comparison only, never for display.
func StripAccents(text string) string {
	if text == "" {
		return ""
	}
	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; fall back to the
		// input so comparisons degrade to exact matching.
		stripped = text
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if rep, ok := digraphFold[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FoldForCompare lowercases and strips accents, producing the canonical form
// used to decide whether a typed word matches the expected word.
func FoldForCompare(text string) string {
	return strings.ToLower(StripAccents(text))
}

// JoinHyphenatedLineBreaks repairs OCR line-wrap artifacts where a hyphenated
// word was split across lines: "ele-\nphant" becomes "ele-phant". Only a
// hyphen directly followed by whitespace and another word character is joined.
func JoinHyphenatedLineBreaks(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '-' && i > 0 && isWordRune(runes[i-1]) {
			// Skip whitespace after the hyphen when it is followed by the
			// continuation of the word.
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j > i+1 && j < len(runes) && isWordRune(runes[j]) {
				b.WriteRune('-')
				i = j - 1
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
