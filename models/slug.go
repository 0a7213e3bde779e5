package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify derives a URL-safe identifier from a display name: accents are
// folded to ASCII, letters are lowercased and every run of other characters
// becomes a single hyphen. "Gold Rings" becomes "gold-rings".
func Slugify(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range norm.NFKD.String(name) {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from decomposition
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingSep = true
		}
	}
	return b.String()
}

// assignSlug sets the slug from the name only when none was supplied.
// It runs once, before the first insert; edits never re-derive it.
func assignSlug(slug *string, name string) {
	*slug = strings.TrimSpace(*slug)
	if *slug == "" {
		*slug = Slugify(name)
	}
}
