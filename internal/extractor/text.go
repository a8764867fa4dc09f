package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	numberRegex     = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)
)

// blockPhrases mark interstitial and anti-bot pages whose text must never
// be treated as product data.
var blockPhrases = []string{
	"enter the characters you see below",
	"robot check",
	"are you a human",
	"automated access",
	"captcha",
	"access denied",
}

// cleanText decodes entities, drops stray tags and collapses whitespace
func cleanText(s string) string {
	s = html.UnescapeString(s)
	s = tagRegex.ReplaceAllString(s, " ")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// trimDecoration strips leading and trailing punctuation such as bullets,
// pipes and separators while keeping closing brackets and quotes.
func trimDecoration(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '(' && r != '"' && r != '['
	})
	return strings.TrimRightFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ')' && r != '"' && r != ']' && r != '.'
	})
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// truncate cuts s to at most n runes, ending with an ellipsis when shortened
func truncate(s string, n int) string {
	if runeLen(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return strings.TrimSpace(string([]rune(s)[:n-3])) + "..."
}

func isBlockedText(s string) bool {
	lower := strings.ToLower(s)
	for _, phrase := range blockPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// firstNumber returns the first number in s with thousands separators removed
func firstNumber(s string) (string, bool) {
	m := numberRegex.FindString(s)
	if m == "" {
		return "", false
	}
	return strings.ReplaceAll(m, ",", ""), true
}

// words splits text into lowercase alphanumeric tokens
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
