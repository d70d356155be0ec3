package obstacle

import (
	"strconv"
	"strings"
)

// Normalize maps an untrusted decoded JSON object onto the Result contract.
// It is total: any input shape produces a well-formed Result. It never sets
// the Error field.
func Normalize(raw map[string]any) Result {
	detected := normalizeDetected(raw["obstacle_detected"])

	return Result{
		ObstacleDetected: detected,
		Distance:         normalizeDistance(raw["distance"], detected),
		Description:      normalizeDescription(raw["description"]),
	}
}

func normalizeDetected(v any) bool {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes":
			return true
		}
		return false
	}
	return truthy(v)
}

// normalizeDistance keeps a valid bucket as-is. An invalid or missing bucket
// falls back to "none", except when the model asserted a detection: then
// "medium" honors the signal without promoting it to "near".
func normalizeDistance(v any, detected bool) Distance {
	if s, ok := v.(string); ok {
		d := Distance(strings.ToLower(strings.TrimSpace(s)))
		switch d {
		case DistanceFar, DistanceMedium, DistanceNear:
			return d
		}
	}
	if detected {
		return DistanceMedium
	}
	return DistanceNone
}

func normalizeDescription(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	case bool:
		if d {
			return "true"
		}
		return ""
	case float64:
		if d == 0 {
			return ""
		}
		return strconv.FormatFloat(d, 'f', -1, 64)
	default:
		return ""
	}
}

// truthy applies a truthiness rule over decoded JSON values: empty, zero and
// false-like values are false, everything else is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
