/*
Package profile derives a cognitive archetype from final session metrics.

Classification is a pure function over the move, time, and hesitation
counters: three 0-100 scores are computed, a fixed table of threshold
rules flags behavioral biases, and a priority-ordered rule list picks one
of five archetypes. The same package serves as the local fallback when
the remote analysis peer is unavailable, so its output shape matches the
peer's profile response exactly.
*/
package profile

import (
	"fmt"
	"math"
)

// Bias severity levels. The reference policy flags everything low.
const (
	SeverityLow = "low"
)

// Canonical bias rule thresholds.
const (
	paralysisMoveThreshold     = 50
	anxietyHesitationThreshold = 10
	impulsivityTimeCeiling     = 30
	impulsivityMoveFloor       = 40
	perfectionismMoveCeiling   = 30
	perfectionismTimeFloor     = 120
	confirmationDecisionFloor  = 50
	confirmationHesitationCap  = 5

	explorerMoveFloor = 40
)

// Archetype is the categorical play-style label.
type Archetype struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
}

// Bias is a behavioral pattern flagged by a threshold rule.
type Bias struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Scores holds the raw counters and the derived 0-100 scores.
type Scores struct {
	Moves            int `json:"moves"`
	TimeTakenSeconds int `json:"timeTaken"`
	Hesitations      int `json:"hesitations"`
	Decisions        int `json:"decisions"`
	Efficiency       int `json:"efficiency"`
	TimeEfficiency   int `json:"timeEfficiency"`
	Confidence       int `json:"confidence"`
	OverallScore     int `json:"overallScore"`
}

// Profile is the full analysis result for one completed session.
type Profile struct {
	Archetype       Archetype `json:"archetype"`
	Metrics         Scores    `json:"metrics"`
	Biases          []Bias    `json:"biases"`
	Insights        []string  `json:"insights"`
	Recommendations []string  `json:"recommendations"`
}

// Classify maps final session metrics to a Profile. Deterministic and
// stateless.
func Classify(moves, timeTakenSeconds, hesitations, decisions int) Profile {
	efficiency := clamp(round(float64(100-moves) * 100 / 150))
	confidence := clamp(100 - hesitations*5)
	timeEfficiency := clamp(round(float64(300-timeTakenSeconds) * 100 / 300))
	overall := round(float64(efficiency+timeEfficiency+confidence) / 3)

	scores := Scores{
		Moves:            moves,
		TimeTakenSeconds: timeTakenSeconds,
		Hesitations:      hesitations,
		Decisions:        decisions,
		Efficiency:       efficiency,
		TimeEfficiency:   timeEfficiency,
		Confidence:       confidence,
		OverallScore:     overall,
	}

	return Profile{
		Archetype:       pickArchetype(scores),
		Metrics:         scores,
		Biases:          detectBiases(scores),
		Insights:        insights(scores),
		Recommendations: recommendations(scores),
	}
}

// detectBiases evaluates every bias rule independently; more than one
// can fire for the same session.
func detectBiases(s Scores) []Bias {
	biases := []Bias{}

	if s.Moves > paralysisMoveThreshold {
		biases = append(biases, Bias{
			Name:        "analysis_paralysis",
			Description: "High move count suggests over-deliberation at junctions",
			Severity:    SeverityLow,
		})
	}
	if s.Hesitations > anxietyHesitationThreshold {
		biases = append(biases, Bias{
			Name:        "decision_anxiety",
			Description: "Frequent long pauses before committing to a direction",
			Severity:    SeverityLow,
		})
	}
	if s.TimeTakenSeconds < impulsivityTimeCeiling && s.Moves > impulsivityMoveFloor {
		biases = append(biases, Bias{
			Name:        "impulsivity",
			Description: "Many moves in very little time, acting before evaluating",
			Severity:    SeverityLow,
		})
	}
	if s.Moves < perfectionismMoveCeiling && s.TimeTakenSeconds > perfectionismTimeFloor {
		biases = append(biases, Bias{
			Name:        "perfectionism",
			Description: "Few moves over a long stretch, optimizing each step",
			Severity:    SeverityLow,
		})
	}
	if s.Decisions > confirmationDecisionFloor && s.Hesitations < confirmationHesitationCap {
		biases = append(biases, Bias{
			Name:        "confirmation_bias",
			Description: "Many decisions with almost no reconsideration",
			Severity:    SeverityLow,
		})
	}

	return biases
}

// pickArchetype applies the priority-ordered rule list. Conditions are
// not mutually exclusive; the first match wins.
func pickArchetype(s Scores) Archetype {
	switch {
	case s.Efficiency > 80 && s.TimeEfficiency > 80:
		return Archetype{
			Type:        "strategist",
			Name:        "The Strategist",
			Description: "Plans ahead and executes with precision, wasting neither moves nor time",
			Confidence:  s.OverallScore,
		}
	case s.Efficiency < 60 && s.Moves > explorerMoveFloor:
		return Archetype{
			Type:        "explorer",
			Name:        "The Explorer",
			Description: "Prefers covering ground to planning, learning the space by walking it",
			Confidence:  s.OverallScore,
		}
	case s.TimeEfficiency > 90:
		return Archetype{
			Type:        "intuitive",
			Name:        "The Intuitive",
			Description: "Commits quickly and trusts first impressions over deliberation",
			Confidence:  s.OverallScore,
		}
	case s.Confidence < 70:
		return Archetype{
			Type:        "analytical",
			Name:        "The Analytical",
			Description: "Weighs options carefully before every commitment",
			Confidence:  s.OverallScore,
		}
	default:
		return Archetype{
			Type:        "balanced",
			Name:        "The Balanced Thinker",
			Description: "Blends planning and action without leaning on either extreme",
			Confidence:  s.OverallScore,
		}
	}
}

func insights(s Scores) []string {
	out := []string{
		fmt.Sprintf("Solved in %d moves over %d seconds with %d hesitations", s.Moves, s.TimeTakenSeconds, s.Hesitations),
	}
	if s.Efficiency >= 80 {
		out = append(out, "Route choices were close to optimal")
	} else if s.Efficiency < 50 {
		out = append(out, "A large share of moves retraced already-explored corridors")
	}
	if s.Confidence >= 90 {
		out = append(out, "Direction changes were committed to without pausing")
	} else if s.Confidence < 70 {
		out = append(out, "Long pauses preceded a notable share of moves")
	}
	return out
}

func recommendations(s Scores) []string {
	var out []string
	if s.Efficiency < 60 {
		out = append(out, "Scan a junction's branches before stepping into one")
	}
	if s.Confidence < 70 {
		out = append(out, "Set a small time budget per decision and commit when it runs out")
	}
	if s.TimeEfficiency < 50 {
		out = append(out, "Favor steady progress over exhaustive evaluation of each branch")
	}
	if len(out) == 0 {
		out = append(out, "Try a larger maze to stretch the same habits further")
	}
	return out
}

// round rounds half away from zero, matching the reference scoring.
func round(v float64) int {
	return int(math.Round(v))
}

// clamp bounds a score to the 0-100 range.
func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
