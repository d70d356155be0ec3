package obstacle

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

const analysisPrompt = `You are analyzing a single frame from a phone camera held by a blind pedestrian. Alert ONLY when something is (1) directly in front and centered, AND (2) very close — within about 2 meters (arm's reach, could bump into it soon).

STRICT RULES:
- "obstacle_detected" must be true ONLY if the object is in the CENTER of the frame (middle third of the image, especially the lower center). If it is to the left or right side, say false.
- "distance" must be "near" ONLY if the object appears within ~2 meters (large in frame, immediate proximity). If it is farther away (smaller in frame, more than 2 meters), use "none" or "far" and set obstacle_detected to false so we do NOT alert.
- Do NOT report: the road, pavement, sidewalk, or ground. Do NOT report things that are far away or off to the side. When in doubt, say no obstacle (prefer fewer false alarms).
- ONLY set obstacle_detected true + distance "near" when something (pole, person, object, door) is directly in front, centered, and very close — within 2 meters.

Reply with JSON only, no other text, with these exact keys:
- "obstacle_detected": true or false
- "distance": one of "none", "far", "medium", "near" (use "near" only when within ~2 m and centered)
- "description": short phrase (e.g. "pole", "person") or empty if none`

// ModelClient is the vision model boundary: one synchronous call carrying the
// frame and the instruction prompt, returning the model's raw text.
type ModelClient interface {
	GenerateJSON(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
}

// Analyzer turns a frame into a Result. It never fails: every error mode
// collapses to the default-false result, optionally with Error set.
type Analyzer struct {
	client ModelClient
	logger *slog.Logger
}

// NewAnalyzer builds an Analyzer. A nil client means no credential was
// configured; Analyze then short-circuits without dispatching.
func NewAnalyzer(client ModelClient, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		client: client,
		logger: logger.With("component", "obstacle-analyzer"),
	}
}

func (a *Analyzer) Analyze(ctx context.Context, image []byte) Result {
	if a.client == nil {
		return errorResult("GOOGLE_API_KEY not set")
	}

	text, err := a.client.GenerateJSON(ctx, image, "image/jpeg", analysisPrompt)
	if err != nil {
		a.logger.Warn("obstacle analysis failed", "error", err)
		return errorResult(err.Error())
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultResult()
	}

	// The model is asked for bare JSON but may still wrap it in a code
	// fence; keep only the first { .. last } span before decoding.
	if strings.Contains(text, "```") {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start >= 0 && end > start {
			text = text[start : end+1]
		}
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		a.logger.Warn("obstacle response is not valid JSON", "error", err)
		return DefaultResult()
	}

	raw, ok := decoded.(map[string]any)
	if !ok {
		return DefaultResult()
	}

	return Normalize(raw)
}
