package lib

import (
	"net/url"
	"strings"
)

// RefererRule maps a hostname substring to an inferred traffic source.
type RefererRule struct {
	Pattern string
	Source  string
	Medium  string
}

// refererRules is evaluated top to bottom, first match wins. Order is
// priority data (google.com shadows maps.google for maps.google.com hosts),
// so keep it a slice, never a map.
var refererRules = []RefererRule{
	{"tiktok.com", "tiktok", "social"},
	{"instagram.com", "instagram", "social"},
	{"facebook.com", "facebook", "social"},
	{"fb.com", "facebook", "social"},
	{"twitter.com", "twitter", "social"},
	{"x.com", "twitter", "social"},
	{"t.co", "twitter", "social"},
	{"youtube.com", "youtube", "social"},
	{"youtu.be", "youtube", "social"},
	{"linkedin.com", "linkedin", "social"},
	{"pinterest.com", "pinterest", "social"},
	{"reddit.com", "reddit", "social"},
	{"snapchat.com", "snapchat", "social"},
	{"whatsapp.com", "whatsapp", "social"},
	{"wa.me", "whatsapp", "social"},
	{"telegram.org", "telegram", "social"},
	{"t.me", "telegram", "social"},
	{"google.com", "google", "organic"},
	{"google.de", "google", "organic"},
	{"bing.com", "bing", "organic"},
	{"duckduckgo.com", "duckduckgo", "organic"},
	{"yahoo.com", "yahoo", "organic"},
	{"ecosia.org", "ecosia", "organic"},
	{"maps.google", "google_maps", "listing"},
	{"maps.app.goo.gl", "google_maps", "listing"},
	{"yelp.com", "yelp", "review"},
	{"tripadvisor.com", "tripadvisor", "review"},
	{"lieferando.de", "lieferando", "referral"},
	{"uber.com", "uber_eats", "referral"},
}

// InferSourceFromReferer classifies a referer URL into a (source, medium)
// pair by matching its hostname against the ordered rule table. Returns
// ok=false when the URL does not parse or no pattern matches. Explicit UTM
// parameters always take precedence over this inference; callers only use it
// to fill fields UTM left unset.
func InferSourceFromReferer(referer string) (source, medium string, ok bool) {
	u, err := url.Parse(referer)
	if err != nil || u.Hostname() == "" {
		return "", "", false
	}

	hostname := strings.ToLower(u.Hostname())
	for _, rule := range refererRules {
		if strings.Contains(hostname, rule.Pattern) {
			return rule.Source, rule.Medium, true
		}
	}

	return "", "", false
}
