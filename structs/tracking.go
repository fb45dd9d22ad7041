package structs

// ClientFingerprint is the JSON payload of the _vfp cookie. All fields are
// optional; a malformed cookie degrades to none of them being set.
type ClientFingerprint struct {
	ScreenWidth         *int     `json:"sw,omitempty"`
	ScreenHeight        *int     `json:"sh,omitempty"`
	Timezone            *string  `json:"tz,omitempty"`
	Platform            *string  `json:"pl,omitempty"`
	Language            *string  `json:"lang,omitempty"`
	ColorDepth          *int     `json:"cd,omitempty"`
	DevicePixelRatio    *float64 `json:"dpr,omitempty"`
	MaxTouchPoints      *int     `json:"tp,omitempty"`
	HardwareConcurrency *int     `json:"hc,omitempty"`
}

type IncomingEvent struct {
	Type     string         `json:"type"`
	Page     string         `json:"page"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type EventsRequest struct {
	Events []IncomingEvent `json:"events"`
}
