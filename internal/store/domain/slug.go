package domain

import "strings"

// DeriveSlug turns a human-readable store name into a URL-safe slug.
// The name is lower-cased, every maximal run of characters outside
// ASCII letters, digits and the Arabic block (U+0600..U+06FF) collapses
// into a single hyphen, and edge hyphens are trimmed. Arabic characters
// are kept as-is rather than transliterated so Arabic store names stay
// readable in URLs.
//
// The result may be empty when the name contains no eligible characters;
// callers reject that case before touching storage.
func DeriveSlug(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if !slugRune(r) {
			if b.Len() > 0 {
				pendingHyphen = true
			}
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

func slugRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 0x0600 && r <= 0x06FF:
		return true
	default:
		return false
	}
}
