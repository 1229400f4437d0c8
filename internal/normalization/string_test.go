package normalization

import (
	"reflect"
	"testing"
)

func TestEmail(t *testing.T) {
	if got := Email("  Ana.Lopez@Example.COM "); got != "ana.lopez@example.com" {
		t.Fatalf("Email=%q, want %q", got, "ana.lopez@example.com")
	}
}

func TestName(t *testing.T) {
	cases := map[string]string{
		"  Ana  ":      "Ana",
		"Mary   Ann":   "Mary Ann",
		"":             "",
		" \t van  Dyk": "van Dyk",
		"Jose\u0301":   "Jos\u00e9",
	}
	for in, want := range cases {
		if got := Name(in); got != want {
			t.Fatalf("Name(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestList(t *testing.T) {
	got := List([]string{" calm ", "", "  ", "focused"})
	want := []string{"calm", "focused"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List=%v, want %v", got, want)
	}
	if got := ParseInputStringPtr(nil); got != nil {
		t.Fatalf("ParseInputStringPtr(nil)=%v, want nil", got)
	}
}
