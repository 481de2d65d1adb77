// Package translation separates a model answer into its English body and its
// Chinese translation.
package translation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// FallbackTranslation is used when no translation could be located
	FallbackTranslation = "（未能可靠地提取中文翻译，请参考上面的英文内容。）"

	// ShortAnswerText and ShortAnswerTranslation replace answers that are too short to be useful
	ShortAnswerText        = "Sorry, I couldn't generate a proper answer this time. Please try asking your question again."
	ShortAnswerTranslation = "抱歉，这次未能生成合适的回答。请再试一次提问。"

	minAnswerLength   = 10
	minLastLineLength = 5
	minLinesForGuess  = 3
)

var (
	markerPattern = regexp.MustCompile(`(?s)<div class=["']translation["']>(.*?)</div>`)
	labels        = []string{"翻译：", "Translation:"}
)

// Split returns the English and Chinese parts of raw. The first rule that
// matches wins: a translation div, a label line, a CJK last line. When none
// matches the whole text is English and the translation is FallbackTranslation.
func Split(raw string) (english, chinese string) {
	if english, chinese, ok := splitMarker(raw); ok {
		return english, chinese
	}
	if english, chinese, ok := splitLabel(raw); ok {
		return english, chinese
	}
	if english, chinese, ok := splitLastLine(raw); ok {
		return english, chinese
	}
	return strings.TrimSpace(raw), FallbackTranslation
}

// Normalize trims both parts and swaps in the apology pair when the English
// part is shorter than ten characters. An empty translation becomes
// FallbackTranslation.
func Normalize(english, chinese string) (string, string) {
	english = strings.TrimSpace(english)
	chinese = strings.TrimSpace(chinese)
	if utf8.RuneCountInString(english) < minAnswerLength {
		return ShortAnswerText, ShortAnswerTranslation
	}
	if chinese == "" {
		chinese = FallbackTranslation
	}
	return english, chinese
}

func splitMarker(raw string) (string, string, bool) {
	loc := markerPattern.FindStringSubmatchIndex(raw)
	if loc == nil {
		return "", "", false
	}
	english := raw[:loc[0]] + raw[loc[1]:]
	chinese := raw[loc[2]:loc[3]]
	return strings.TrimSpace(english), strings.TrimSpace(chinese), true
}

func splitLabel(raw string) (string, string, bool) {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		for _, label := range labels {
			_, after, found := strings.Cut(line, label)
			if !found {
				continue
			}
			// markdown emphasis around the label, e.g. "**Translation:** 你好"
			rest := append([]string{strings.TrimLeft(after, "* ")}, lines[i+1:]...)
			english := strings.Join(lines[:i], "\n")
			chinese := strings.Join(rest, "\n")
			return strings.TrimSpace(english), strings.TrimSpace(chinese), true
		}
	}
	return "", "", false
}

func splitLastLine(raw string) (string, string, bool) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < minLinesForGuess {
		return "", "", false
	}
	last := strings.TrimSpace(lines[len(lines)-1])
	if !containsHan(last) || utf8.RuneCountInString(last) <= minLastLineLength {
		return "", "", false
	}
	english := strings.Join(lines[:len(lines)-1], "\n")
	return strings.TrimSpace(english), last, true
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
