// Package locale picks the storefront language from an Accept-Language header.
package locale

import (
	"golang.org/x/text/language"
)

const (
	English = "en"
	French  = "fr"
)

// Supported lists the storefront languages, the first one being the fallback.
var Supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(Supported)

// Negotiate returns "en" or "fr" for an Accept-Language header value.
// Empty or unparseable headers yield English.
func Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	base, _ := Supported[idx].Base()
	return base.String()
}

// Parse normalizes an explicit language value such as "fr-CA" or "FR".
func Parse(s string) (string, bool) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	base, _ := Supported[idx].Base()
	return base.String(), true
}
