package lib

import (
	"net/url"
	"testing"

	"saraylidoener_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func TestGenerateVisitorIDDeterministic(t *testing.T) {
	signals := VisitorSignals{
		IP:             "203.0.113.7",
		UserAgent:      "Mozilla/5.0",
		AcceptLanguage: "de-DE,de;q=0.9",
		Client: structs.ClientFingerprint{
			ScreenWidth:  intPtr(1920),
			ScreenHeight: intPtr(1080),
			Timezone:     strPtr("Europe/Berlin"),
		},
	}

	first := GenerateVisitorID(signals)
	second := GenerateVisitorID(signals)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", first)
}

func TestGenerateVisitorIDSensitiveToEachField(t *testing.T) {
	base := VisitorSignals{
		IP:             "203.0.113.7",
		UserAgent:      "Mozilla/5.0",
		AcceptLanguage: "de-DE",
	}
	baseId := GenerateVisitorID(base)

	changed := base
	changed.IP = "203.0.113.8"
	assert.NotEqual(t, baseId, GenerateVisitorID(changed))

	changed = base
	changed.Client.DevicePixelRatio = floatPtr(2)
	assert.NotEqual(t, baseId, GenerateVisitorID(changed))
}

func TestGenerateVisitorIDAbsentOptionalsStable(t *testing.T) {
	// An absent optional and an explicitly empty one must hash identically,
	// since both serialize to the empty string.
	withNil := VisitorSignals{IP: "1.2.3.4"}
	withEmpty := VisitorSignals{
		IP:     "1.2.3.4",
		Client: structs.ClientFingerprint{Timezone: strPtr("")},
	}

	assert.Equal(t, GenerateVisitorID(withNil), GenerateVisitorID(withEmpty))
}

func TestParseClientFingerprint(t *testing.T) {
	payload := `{"sw":1920,"sh":1080,"tz":"Europe/Berlin","dpr":1.5,"hc":8}`
	encoded := url.QueryEscape(payload)

	fp := ParseClientFingerprint(encoded)

	require.NotNil(t, fp.ScreenWidth)
	assert.Equal(t, 1920, *fp.ScreenWidth)
	require.NotNil(t, fp.Timezone)
	assert.Equal(t, "Europe/Berlin", *fp.Timezone)
	require.NotNil(t, fp.DevicePixelRatio)
	assert.Equal(t, 1.5, *fp.DevicePixelRatio)
	assert.Nil(t, fp.Platform)
}

func TestParseClientFingerprintMalformed(t *testing.T) {
	cases := []string{
		"",
		"not json",
		"%zz",          // broken url encoding
		`"just a str"`, // valid JSON, not an object
		"[1,2,3]",
	}

	for _, raw := range cases {
		fp := ParseClientFingerprint(raw)
		assert.Equal(t, structs.ClientFingerprint{}, fp, "input %q should degrade to zero struct", raw)
	}
}
