// Package extract finds URL-like substrings in page text.
package extract

import (
	"regexp"
	"strings"

	"github.com/nikbrunner/linkscan/internal/model"
)

// nonSpace matches one character that is not whitespace. It covers the
// Unicode space separators and BOM as well, since innerText commonly
// carries non-breaking spaces.
const nonSpace = `[^\s\v\p{Z}\x{FEFF}]`

// linkPattern matches a scheme-prefixed URL or a bare www. host, each
// running until the next whitespace character.
var linkPattern = regexp.MustCompile(`https?://` + nonSpace + `+|www\.` + nonSpace + `+`)

const wwwPrefix = "www."

// URLs returns the distinct URLs found in text, in first-occurrence order.
// Matches beginning with "www." are rewritten to "https://www.". An input
// without matches yields an empty slice.
func URLs(text string) []string {
	matches := linkPattern.FindAllString(text, -1)

	urls := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		u := Normalize(m)
		if seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}

	return urls
}

// Normalize prepends https:// to a www. match and returns other matches unchanged.
func Normalize(match string) string {
	if strings.HasPrefix(match, wwwPrefix) {
		return "https://" + match
	}
	return match
}

// Items extracts URLs from text as unchecked link items.
func Items(text string) []model.LinkItem {
	urls := URLs(text)
	items := make([]model.LinkItem, len(urls))
	for i, u := range urls {
		items[i] = model.LinkItem{URL: u}
	}
	return items
}
