package classifier

import "strings"

// Slugify derives a URL-safe path segment from a town display name:
// lowercase, "&" becomes "and", any run of non-alphanumeric characters
// collapses to a single hyphen, and no leading or trailing hyphen survives.
//
//	Slugify("Stratford-upon-Avon") == "stratford-upon-avon"
//	Slugify("A & B Town")          == "a-and-b-town"
//
// A name with no alphanumeric characters at all slugs to "town" so the
// result is always a usable path segment.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "&", "and")

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "town"
	}
	return b.String()
}
