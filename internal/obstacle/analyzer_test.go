package obstacle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type fakeModel struct {
	text  string
	err   error
	calls int

	lastMIME   string
	lastPrompt string
}

func (f *fakeModel) GenerateJSON(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	f.calls++
	f.lastMIME = mimeType
	f.lastPrompt = prompt
	return f.text, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyzer_NoCredential(t *testing.T) {
	a := NewAnalyzer(nil, discardLogger())

	got := a.Analyze(context.Background(), []byte("jpeg"))
	want := Result{ObstacleDetected: false, Distance: DistanceNone, Description: "", Error: "GOOGLE_API_KEY not set"}
	if got != want {
		t.Errorf("Analyze() = %+v, want %+v", got, want)
	}
}

func TestAnalyzer_ValidResponse(t *testing.T) {
	model := &fakeModel{text: `{"obstacle_detected": true, "distance": "near", "description": "pole"}`}
	a := NewAnalyzer(model, discardLogger())

	got := a.Analyze(context.Background(), []byte("jpeg"))
	want := Result{ObstacleDetected: true, Distance: DistanceNear, Description: "pole"}
	if got != want {
		t.Errorf("Analyze() = %+v, want %+v", got, want)
	}
	if model.lastMIME != "image/jpeg" {
		t.Errorf("mime type = %q, want image/jpeg", model.lastMIME)
	}
	if model.lastPrompt == "" {
		t.Error("prompt should be sent with the frame")
	}
}

func TestAnalyzer_FencedResponse(t *testing.T) {
	model := &fakeModel{text: "```json\n{\"obstacle_detected\": true, \"distance\": \"near\", \"description\": \"pole\"}\n```"}
	a := NewAnalyzer(model, discardLogger())

	got := a.Analyze(context.Background(), []byte("jpeg"))
	want := Result{ObstacleDetected: true, Distance: DistanceNear, Description: "pole"}
	if got != want {
		t.Errorf("Analyze() = %+v, want %+v", got, want)
	}
}

func TestAnalyzer_EmptyResponse(t *testing.T) {
	a := NewAnalyzer(&fakeModel{text: "  \n "}, discardLogger())

	got := a.Analyze(context.Background(), []byte("jpeg"))
	if got != DefaultResult() {
		t.Errorf("empty model text should yield the default result, got %+v", got)
	}
	if got.Error != "" {
		t.Error("empty model text is not a failure")
	}
}

func TestAnalyzer_MalformedJSON(t *testing.T) {
	a := NewAnalyzer(&fakeModel{text: "not json at all"}, discardLogger())

	got := a.Analyze(context.Background(), []byte("jpeg"))
	if got != DefaultResult() {
		t.Errorf("malformed JSON should yield the default result, got %+v", got)
	}
	if got.Error != "" {
		t.Error("malformed JSON must not set error")
	}
}

func TestAnalyzer_NonObjectJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"array", `["obstacle"]`},
		{"string", `"pole"`},
		{"number", `42`},
		{"bool", `true`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalyzer(&fakeModel{text: tt.text}, discardLogger())
			if got := a.Analyze(context.Background(), []byte("jpeg")); got != DefaultResult() {
				t.Errorf("non-object JSON should yield the default result, got %+v", got)
			}
		})
	}
}

func TestAnalyzer_ModelError(t *testing.T) {
	a := NewAnalyzer(&fakeModel{err: errors.New("connection refused")}, discardLogger())

	got := a.Analyze(context.Background(), []byte("jpeg"))
	if got.ObstacleDetected || got.Distance != DistanceNone || got.Description != "" {
		t.Errorf("model error should keep default fields, got %+v", got)
	}
	if got.Error != "connection refused" {
		t.Errorf("error = %q, want the call error text", got.Error)
	}
}

func TestAnalyzer_NormalizationApplied(t *testing.T) {
	model := &fakeModel{text: `{"obstacle_detected": "yes", "distance": "FAR", "description": null}`}
	a := NewAnalyzer(model, discardLogger())

	got := a.Analyze(context.Background(), []byte("jpeg"))
	want := Result{ObstacleDetected: true, Distance: DistanceFar, Description: ""}
	if got != want {
		t.Errorf("Analyze() = %+v, want %+v", got, want)
	}
}
