// Package clinical holds the fixed clinical rule tables: assessment scoring
// bands, recommendation text, the risk keyword scan and the alert lifecycle.
// Everything here is pure; callers own persistence.
package clinical

import (
	"fmt"

	"github.com/yungbote/youthcare-backend/internal/domain/assessment"
)

// Band is a closed score interval [Min, Max]. Max < 0 means unbounded.
type Band struct {
	Min      int
	Max      int
	Severity string
}

func (b Band) contains(total int) bool {
	return total >= b.Min && (b.Max < 0 || total <= b.Max)
}

// BandTable maps a total score to a severity; totals outside every band
// score "none".
type BandTable []Band

func (t BandTable) Severity(total int) string {
	for _, b := range t {
		if b.contains(total) {
			return b.Severity
		}
	}
	return assessment.SeverityNone
}

var (
	PHQ9Bands = BandTable{
		{Min: 5, Max: 9, Severity: assessment.SeverityMild},
		{Min: 10, Max: 14, Severity: assessment.SeverityModerate},
		{Min: 15, Max: 19, Severity: assessment.SeverityModeratelySevere},
		{Min: 20, Max: -1, Severity: assessment.SeveritySevere},
	}
	GAD7Bands = BandTable{
		{Min: 5, Max: 9, Severity: assessment.SeverityMild},
		{Min: 10, Max: 14, Severity: assessment.SeverityModerate},
		{Min: 15, Max: 21, Severity: assessment.SeverityModeratelySevere},
	}
)

// Scale bundles everything needed to score one assessment type.
type Scale struct {
	Type            string
	Bands           BandTable
	Recommendations map[string][]string
	XP              int
}

type Scales map[string]Scale

// DefaultScales is the production rule set. mood-quick has no bands, so it
// always scores "none".
var DefaultScales = Scales{
	assessment.TypePHQ9: {
		Type:  assessment.TypePHQ9,
		Bands: PHQ9Bands,
		Recommendations: map[string][]string{
			assessment.SeverityMild:             {"Consider mindfulness or relaxation techniques", "Try journaling about your feelings"},
			assessment.SeverityModerate:         {"Connect with a coach for support", "Explore coping strategies through missions"},
			assessment.SeverityModeratelySevere: {"Seek professional help from a clinician", "Contact a mental health crisis line if needed"},
			assessment.SeveritySevere:           {"Seek professional help from a clinician", "Contact a mental health crisis line if needed"},
		},
		XP: 150,
	},
	assessment.TypeGAD7: {
		Type:  assessment.TypeGAD7,
		Bands: GAD7Bands,
		Recommendations: map[string][]string{
			assessment.SeverityMild:             {"Practice deep breathing exercises", "Engage in physical activity"},
			assessment.SeverityModerate:         {"Work with a coach on anxiety management", "Try grounding techniques"},
			assessment.SeverityModeratelySevere: {"Consult with a mental health professional", "Learn anxiety management strategies"},
			assessment.SeveritySevere:           {"Consult with a mental health professional", "Learn anxiety management strategies"},
		},
		XP: 150,
	},
	assessment.TypeMoodQuick: {
		Type: assessment.TypeMoodQuick,
		XP:   50,
	},
}

// ErrUnknownType is returned for assessment types with no scale.
type ErrUnknownType struct{ Type string }

func (e ErrUnknownType) Error() string { return fmt.Sprintf("unknown assessment type %q", e.Type) }

type Result struct {
	TotalScore       int
	Severity         string
	FlaggedForReview bool
	Recommendations  []string
}

func (s Scales) Lookup(kind string) (Scale, error) {
	sc, ok := s[kind]
	if !ok {
		return Scale{}, ErrUnknownType{Type: kind}
	}
	return sc, nil
}

// Score sums response scores (nil counts as 0) and classifies the total.
func (s Scales) Score(kind string, responses []assessment.Response) (Result, error) {
	sc, err := s.Lookup(kind)
	if err != nil {
		return Result{}, err
	}
	total := 0
	for _, r := range responses {
		if r.Score != nil {
			total += *r.Score
		}
	}
	severity := sc.Bands.Severity(total)
	recs := append([]string(nil), sc.Recommendations[severity]...)
	return Result{
		TotalScore:       total,
		Severity:         severity,
		FlaggedForReview: Flagged(severity),
		Recommendations:  recs,
	}, nil
}

func Flagged(severity string) bool {
	return severity == assessment.SeveritySevere || severity == assessment.SeverityModeratelySevere
}
