package entity

import "encoding/json"

const (
	SearchMaxSteps  = 25
	MessageMaxSteps = 100
)

type BrowseRequest struct {
	Command  string `json:"cmd"`
	StartURL string `json:"url"`
	MaxSteps int    `json:"maxSteps"`
}

// BrowseResponse mirrors what the automation service sent back. Only Result
// is interpreted by the search path; Raw keeps the body untouched.
type BrowseResponse struct {
	Result    string          `json:"result"`
	Message   string          `json:"message,omitempty"`
	Status    string          `json:"status,omitempty"`
	URL       string          `json:"url,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
	Raw       json.RawMessage `json:"-"`
}

const DefaultMarketplaceURL = "https://www.facebook.com/marketplace/sanfrancisco"
