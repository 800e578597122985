package search

import (
	"regexp"
	"strings"
)

// MatchKeywords checks which keywords appear in the document as whole
// words. "java" does not match inside "javascript". Both sides are
// lowercased before matching, so a provider that skips canonicalization
// cannot zero the exact score.
func MatchKeywords(document string, keywords []string) (found, missing []string) {
	doc := strings.ToLower(document)

	found = make([]string, 0, len(keywords))
	missing = make([]string, 0)

	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if wholeWordPattern(kw).MatchString(doc) {
			found = append(found, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	return found, missing
}

// wholeWordPattern compiles a boundary-anchored pattern for a keyword.
// Keywords like "c++" end in non-word characters where \b misbehaves, so
// the trailing boundary is only applied when the keyword ends in a word
// character.
func wholeWordPattern(keyword string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(keyword)

	pattern := quoted
	if startsWithWordChar(keyword) {
		pattern = `\b` + pattern
	}
	if endsWithWordChar(keyword) {
		pattern = pattern + `\b`
	}

	return regexp.MustCompile(pattern)
}

func startsWithWordChar(s string) bool {
	return len(s) > 0 && isWordChar(s[0])
}

func endsWithWordChar(s string) bool {
	return len(s) > 0 && isWordChar(s[len(s)-1])
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
