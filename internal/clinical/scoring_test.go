package clinical

import (
	"reflect"
	"testing"

	"github.com/yungbote/youthcare-backend/internal/domain/assessment"
)

func scores(vals ...int) []assessment.Response {
	out := make([]assessment.Response, 0, len(vals))
	for i := range vals {
		v := vals[i]
		out = append(out, assessment.Response{QuestionID: "q", Score: &v})
	}
	return out
}

func TestPHQ9Bands(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{0, "none"},
		{4, "none"},
		{5, "mild"},
		{9, "mild"},
		{10, "moderate"},
		{14, "moderate"},
		{15, "moderately-severe"},
		{19, "moderately-severe"},
		{20, "severe"},
		{30, "severe"},
	}
	for _, tc := range cases {
		if got := PHQ9Bands.Severity(tc.total); got != tc.want {
			t.Fatalf("PHQ9Bands.Severity(%d)=%q, want %q", tc.total, got, tc.want)
		}
	}
}

func TestGAD7Bands(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{4, "none"},
		{5, "mild"},
		{10, "moderate"},
		{15, "moderately-severe"},
		{21, "moderately-severe"},
		{22, "none"},
	}
	for _, tc := range cases {
		if got := GAD7Bands.Severity(tc.total); got != tc.want {
			t.Fatalf("GAD7Bands.Severity(%d)=%q, want %q", tc.total, got, tc.want)
		}
	}
}

func TestScore(t *testing.T) {
	t.Run("missing score counts as zero", func(t *testing.T) {
		resp := append(scores(3, 3, 3, 3, 3), assessment.Response{QuestionID: "blank"})
		got, err := DefaultScales.Score(assessment.TypePHQ9, resp)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if got.TotalScore != 15 || got.Severity != "moderately-severe" || !got.FlaggedForReview {
			t.Fatalf("Score=%+v", got)
		}
		want := []string{"Seek professional help from a clinician", "Contact a mental health crisis line if needed"}
		if !reflect.DeepEqual(got.Recommendations, want) {
			t.Fatalf("Recommendations=%v, want %v", got.Recommendations, want)
		}
	})

	t.Run("moderate is not flagged", func(t *testing.T) {
		got, err := DefaultScales.Score(assessment.TypeGAD7, scores(2, 2, 2, 2, 2))
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if got.Severity != "moderate" || got.FlaggedForReview {
			t.Fatalf("Score=%+v", got)
		}
	})

	t.Run("mood-quick is always none", func(t *testing.T) {
		got, err := DefaultScales.Score(assessment.TypeMoodQuick, scores(10, 10, 10))
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if got.TotalScore != 30 || got.Severity != "none" || got.FlaggedForReview || len(got.Recommendations) != 0 {
			t.Fatalf("Score=%+v", got)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := DefaultScales.Score("BDI", nil)
		if _, ok := err.(ErrUnknownType); !ok {
			t.Fatalf("Score(BDI) err=%v, want ErrUnknownType", err)
		}
	})
}
