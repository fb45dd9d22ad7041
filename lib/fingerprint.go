package lib

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"saraylidoener_server/structs"
	"strconv"
	"strings"
)

// VisitorSignals is the fixed tuple of request and browser signals a visitor
// id is derived from. The three header-derived fields are always present
// (possibly empty); the nine client signals come from the fingerprint cookie
// and may be absent.
type VisitorSignals struct {
	IP             string
	UserAgent      string
	AcceptLanguage string
	Client         structs.ClientFingerprint
}

// GenerateVisitorID derives a deterministic 64-hex-char visitor id from the
// signal tuple. Fields are joined in a fixed order with '|'; absent optional
// fields serialize as empty strings so the separator count never changes.
// Same tuple in, same id out; analytics joins depend on it.
//
// This is an unkeyed identifier, not a security token. Never use it for
// authentication.
func GenerateVisitorID(signals VisitorSignals) string {
	c := signals.Client

	parts := []string{
		signals.IP,
		signals.UserAgent,
		signals.AcceptLanguage,
		intOrEmpty(c.ScreenWidth),
		intOrEmpty(c.ScreenHeight),
		strOrEmpty(c.Timezone),
		strOrEmpty(c.Platform),
		strOrEmpty(c.Language),
		intOrEmpty(c.ColorDepth),
		floatOrEmpty(c.DevicePixelRatio),
		intOrEmpty(c.MaxTouchPoints),
		intOrEmpty(c.HardwareConcurrency),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// ParseClientFingerprint parses the _vfp cookie value: URL-decoded, then JSON.
// Malformed or non-object payloads degrade to zero optional signals; tracking
// must never block page delivery.
func ParseClientFingerprint(cookieValue string) structs.ClientFingerprint {
	if cookieValue == "" {
		return structs.ClientFingerprint{}
	}

	decoded, err := url.QueryUnescape(cookieValue)
	if err != nil {
		return structs.ClientFingerprint{}
	}

	var fp structs.ClientFingerprint
	if err := json.Unmarshal([]byte(decoded), &fp); err != nil {
		return structs.ClientFingerprint{}
	}

	return fp
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
