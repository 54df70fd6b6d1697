package kansou

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
	"golang.org/x/text/unicode/norm"
)

// builtinCandidates holds the words tested against the stopwords library for
// each supported language. The library does not export its lists, so a word
// counts as a stopword when cleaning removes it.
var builtinCandidates = map[string][]string{
	"ja": {
		"の", "は", "を", "に", "が", "と", "で", "て", "も", "から", "まで",
		"へ", "や", "か", "など", "ね", "よ", "わ", "さ", "これ", "それ",
		"あれ", "この", "その", "あの", "ここ", "そこ", "あそこ", "こう",
		"そう", "ああ", "いる", "ある", "する", "なる", "れる", "られる",
		"せる", "させる", "ます", "です", "だ", "である", "でも",
		"しかし", "また", "および", "または", "あるいは", "なお", "ただし",
	},
	"en": {
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "from",
		"has", "have", "in", "is", "it", "its", "not", "of", "on", "or", "that",
		"the", "they", "this", "to", "was", "we", "will", "with", "you",
	},
}

// BuiltinStopwords returns the stopwords the bundled library recognizes for
// lang (ISO 639-1), sorted.
func BuiltinStopwords(lang string) ([]string, error) {
	candidates, ok := builtinCandidates[lang]
	if !ok {
		return nil, FormatLanguageError(lang)
	}
	var out []string
	for _, word := range candidates {
		if strings.TrimSpace(stopwords.CleanString(word, lang, false)) == "" {
			out = append(out, word)
		}
	}
	sort.Strings(out)
	return out, nil
}

// SupportedStopwordLanguages lists the languages BuiltinStopwords accepts.
func SupportedStopwordLanguages() []string {
	langs := make([]string, 0, len(builtinCandidates))
	for l := range builtinCandidates {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// FormatLanguageError creates a formatted error for unsupported languages.
func FormatLanguageError(lang string) error {
	return fmt.Errorf("kansou: language %q is not supported. Supported languages: %v",
		lang, SupportedStopwordLanguages())
}

// NormalizeText folds full-width ASCII, half-width katakana and other
// compatibility characters (NFKC) and trims surrounding space.
func NormalizeText(text string) string {
	return strings.TrimSpace(norm.NFKC.String(text))
}
