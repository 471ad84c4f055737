package util

import (
	"strings"
)

// MakeTextList joins items into an oxford-comma human list, e.g. "a, b, or c"
// for diagnostics such as the parser's "expected X" message.
func MakeTextList(items []string, conjunction string) string {
	if conjunction == "" {
		conjunction = "or"
	}
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " " + conjunction + " " + items[1]
	default:
		var sb strings.Builder
		for i, it := range items {
			if i == len(items)-1 {
				sb.WriteString(conjunction)
				sb.WriteRune(' ')
				sb.WriteString(it)
			} else {
				sb.WriteString(it)
				sb.WriteString(", ")
			}
		}
		return sb.String()
	}
}

// ArticleFor returns "a" or "an" for the given noun, respecting a leading
// vowel sound, with optional pluralization (plural nouns take no article).
func ArticleFor(noun string, plural bool) string {
	if plural || noun == "" {
		return ""
	}
	switch strings.ToLower(noun)[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	default:
		return "a"
	}
}
