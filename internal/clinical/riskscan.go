package clinical

import (
	"strings"

	"github.com/yungbote/youthcare-backend/internal/domain/alert"
)

// KeywordTable is an ordered list of crisis phrases plus the subset that
// escalates an alert to critical.
type KeywordTable struct {
	Keywords []string
	Acute    []string
}

var DefaultKeywords = KeywordTable{
	Keywords: []string{
		"suicide",
		"kill myself",
		"self harm",
		"self-harm",
		"die",
		"dying",
		"poison",
		"end it all",
		"hurt myself",
		"cut myself",
		"hopeless",
		"worthless",
	},
	Acute: []string{"suicide", "kill myself", "end it all", "hurt myself", "cut myself"},
}

type ScanResult struct {
	Keywords []string
	Severity string
}

func (r ScanResult) Matched() bool { return len(r.Keywords) > 0 }

// Scan lower-cases text and reports every keyword contained in it, in table
// order. Matching is plain substring containment, so "die" also fires on
// "diet".
func (t KeywordTable) Scan(text string) ScanResult {
	lower := strings.ToLower(text)
	var found []string
	acute := false
	for _, kw := range t.Keywords {
		if !strings.Contains(lower, kw) {
			continue
		}
		found = append(found, kw)
		if t.isAcute(kw) {
			acute = true
		}
	}
	if len(found) == 0 {
		return ScanResult{}
	}
	sev := alert.SeverityHigh
	if acute {
		sev = alert.SeverityCritical
	}
	return ScanResult{Keywords: found, Severity: sev}
}

func (t KeywordTable) isAcute(kw string) bool {
	for _, a := range t.Acute {
		if a == kw {
			return true
		}
	}
	return false
}
