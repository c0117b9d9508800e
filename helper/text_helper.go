package helper

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gosimple/slug"
)

const defaultExcerptLength = 160

var (
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldRe       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.*?)\*`)
	linkRe       = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	codeBlockRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`(.*?)`")
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// GenerateSlug derives a URL-safe slug from an article title.
func GenerateSlug(title string) string {
	return slug.Make(title)
}

// ExtractExcerpt strips Markdown syntax from article content and truncates
// the plain text for use as a listing excerpt.
func ExtractExcerpt(content string) string {
	plain := codeBlockRe.ReplaceAllString(content, "")
	plain = headingRe.ReplaceAllString(plain, "")
	plain = boldRe.ReplaceAllString(plain, "$1")
	plain = italicRe.ReplaceAllString(plain, "$1")
	plain = linkRe.ReplaceAllString(plain, "$1")
	plain = inlineCodeRe.ReplaceAllString(plain, "$1")
	plain = whitespaceRe.ReplaceAllString(plain, " ")
	plain = strings.TrimSpace(plain)

	return TruncateText(plain, defaultExcerptLength)
}

// TruncateText shortens text to maxLength runes, appending an ellipsis when
// anything was cut.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}

// Underscore converts a CamelCase struct field name to snake_case,
// keeping acronym runs like "ID" together.
func Underscore(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			startsWord := i > 0 && !unicode.IsUpper(runes[i-1])
			endsAcronym := i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && !unicode.IsUpper(runes[i+1])
			if startsWord || endsAcronym {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
