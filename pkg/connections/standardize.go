package connections

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespacePattern  = regexp.MustCompile(`\s+`)

	// RE2 \b only knows ASCII word characters, so the boundaries are spelled
	// out to keep "éhead" intact. The edge characters are captured and put back.
	seniorityPattern = regexp.MustCompile(`(^|[^\p{L}\p{N}_])(?:senior|jr|junior|lead|head|chief|principal)([^\p{L}\p{N}_]|$)`)
)

// CleanCompanyName lowercases a company name, strips punctuation and
// collapses runs of whitespace: "  Acme, Inc. " becomes "acme inc".
func CleanCompanyName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = punctuationPattern.ReplaceAllString(name, "")
	name = whitespacePattern.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// StandardizePositionTitle lowercases a title and removes seniority
// qualifiers as whole words before stripping punctuation:
// "Senior Software Engineer" becomes "software engineer".
func StandardizePositionTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	title = stripSeniority(title)
	title = punctuationPattern.ReplaceAllString(title, "")
	title = whitespacePattern.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}

// stripSeniority removes seniority words until none is left. Adjacent words
// share a boundary character, so one pass can leave the second of a pair.
func stripSeniority(title string) string {
	for {
		next := seniorityPattern.ReplaceAllString(title, "${1}${2}")
		if next == title {
			return title
		}
		title = next
	}
}

// NodeID derives a stable UUID (version 5, DNS namespace) from the given
// fields. Empty fields are ignored; the rest are trimmed, lowercased and
// have spaces replaced by underscores before being joined with "_".
func NodeID(parts ...string) string {
	keep := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		keep = append(keep, strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p)), " ", "_"))
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(strings.Join(keep, "_"))).String()
}
