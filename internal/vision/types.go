package vision

import "time"

const DefaultModel = "gemini-2.0-flash"

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	// BaseURL overrides the Gemini API endpoint, for tests.
	BaseURL string
}

// Frame is a single camera frame as submitted by the client. Data is opaque
// to this package; no decoding or inspection happens server-side.
type Frame struct {
	SessionID string
	Timestamp int64
	Data      []byte
}
