package obstacle

type Distance string

const (
	DistanceNone   Distance = "none"
	DistanceFar    Distance = "far"
	DistanceMedium Distance = "medium"
	DistanceNear   Distance = "near"
)

// Result is the closed output contract of the obstacle endpoint. The three
// required fields are always present and well-typed; Error augments them on
// failure paths, it never replaces them.
type Result struct {
	ObstacleDetected bool     `json:"obstacle_detected"`
	Distance         Distance `json:"distance"`
	Description      string   `json:"description"`
	Error            string   `json:"error,omitempty"`
}

// DefaultResult is the safe fallback: no obstacle, nothing to report. Every
// failure mode maps onto this so the client reads ambiguity as "no obstacle".
func DefaultResult() Result {
	return Result{
		ObstacleDetected: false,
		Distance:         DistanceNone,
		Description:      "",
	}
}

func errorResult(msg string) Result {
	r := DefaultResult()
	r.Error = msg
	return r
}
