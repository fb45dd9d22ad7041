package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"saraylidoener_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
)

func newIngestRequest(t *testing.T, body string, consent bool) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body))
	if consent {
		r.AddCookie(&http.Cookie{Name: lib.ConsentCookieName, Value: "granted"})
	}
	return r
}

func TestIngestEventsRejections(t *testing.T) {
	erm := NewEventRoutesManager(gecho.NewDefaultLogger(), nil)

	entries := make([]string, 51)
	for i := range entries {
		entries[i] = `{"type":"click","page":"/de"}`
	}
	oversized := `{"events":[` + strings.Join(entries, ",") + `]}`

	tests := []struct {
		name       string
		body       string
		consent    bool
		wantStatus int
		wantCode   string
	}{
		{"no consent", `{"events":[{"type":"click","page":"/de"}]}`, false, http.StatusForbidden, "consent_required"},
		{"broken json", `{"events":`, true, http.StatusBadRequest, "invalid_json"},
		{"missing events array", `{}`, true, http.StatusBadRequest, "missing_events_array"},
		{"empty events array", `{"events":[]}`, true, http.StatusBadRequest, "missing_events_array"},
		{"oversized batch", oversized, true, http.StatusBadRequest, "too_many_events"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			erm.IngestEvents(w, newIngestRequest(t, tt.body, tt.consent))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}

func TestIngestEventsConsentCookieMustBeGranted(t *testing.T) {
	erm := NewEventRoutesManager(gecho.NewDefaultLogger(), nil)

	r := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"events":[]}`))
	r.AddCookie(&http.Cookie{Name: lib.ConsentCookieName, Value: "denied"})

	w := httptest.NewRecorder()
	erm.IngestEvents(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "consent_required")
}
