package clinical

import (
	"reflect"
	"testing"
)

func TestKeywordScan(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		keywords []string
		severity string
	}{
		{"non acute", "I want to die and feel hopeless", []string{"die", "hopeless"}, "high"},
		{"acute", "I want to kill myself", []string{"kill myself"}, "critical"},
		{"case folded", "Thinking about SUICIDE", []string{"suicide"}, "critical"},
		{"table order kept", "worthless. I might cut myself", []string{"cut myself", "worthless"}, "critical"},
		{"both spellings", "self harm and self-harm", []string{"self harm", "self-harm"}, "high"},
		{"clean", "Had a great day at the park", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DefaultKeywords.Scan(tc.text)
			if !reflect.DeepEqual(got.Keywords, tc.keywords) {
				t.Fatalf("Scan(%q).Keywords=%v, want %v", tc.text, got.Keywords, tc.keywords)
			}
			if got.Severity != tc.severity {
				t.Fatalf("Scan(%q).Severity=%q, want %q", tc.text, got.Severity, tc.severity)
			}
			if got.Matched() != (len(tc.keywords) > 0) {
				t.Fatalf("Scan(%q).Matched()=%v", tc.text, got.Matched())
			}
		})
	}
}

func TestKeywordScanInjectedTable(t *testing.T) {
	table := KeywordTable{Keywords: []string{"alpha", "beta"}, Acute: []string{"beta"}}
	if got := table.Scan("alpha only"); got.Severity != "high" {
		t.Fatalf("Scan(alpha)=%+v, want high", got)
	}
	if got := table.Scan("alpha beta"); got.Severity != "critical" {
		t.Fatalf("Scan(alpha beta)=%+v, want critical", got)
	}
}
