package partials

import (
	"strings"

	"github.com/a-h/templ"
)

// TelURL builds a tel: link from a displayed phone number such as 010-3661-5336
func TelURL(phone string) templ.SafeURL {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' {
			b.WriteRune(r)
		}
	}
	return templ.SafeURL("tel:" + b.String())
}

// ExternalURL returns href for an outbound link, "#" when href is empty
func ExternalURL(href string) templ.SafeURL {
	if href == "" {
		return "#"
	}
	return templ.URL(href)
}
