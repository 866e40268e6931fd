package content

import (
	"regexp"
	"strings"
)

// bareDomainPattern matches strings like "allaboutbirds.org" or
// "ebird.org/species/amerob" that authors paste without a scheme.
var bareDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)+(/\S*)?$`)

// ClassifyInfo splits a record's supplementary info into display text and an
// optional link. Explicit info_text / info_url fields are authoritative;
// otherwise the raw info string is classified heuristically: full URLs,
// "www." prefixes, and bare domains become links, anything else is treated
// as descriptive text.
func ClassifyInfo(record QuestionRecord) (text, link string) {
	text = record.InfoText
	link = record.InfoURL
	if text != "" || link != "" {
		return text, link
	}

	raw := strings.TrimSpace(record.Info)
	if raw == "" {
		return "", ""
	}

	switch {
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return "", raw
	case strings.HasPrefix(raw, "www."):
		return "", "https://" + raw
	case !strings.ContainsAny(raw, " \t") && bareDomainPattern.MatchString(raw):
		return "", "https://" + raw
	default:
		return raw, ""
	}
}
