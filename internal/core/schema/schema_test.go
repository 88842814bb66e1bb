package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	got := r.Domains()
	want := []string{"electronics", "books", "home"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Domains = %v, want %v", got, want)
	}

	el, ok := r.Lookup("Electronics")
	if !ok {
		t.Fatalf("Lookup electronics missing")
	}
	high := el.ByPriority(High)
	if len(high) == 0 || high[0].Name != "use_case" {
		t.Fatalf("first HIGH slot = %+v, want use_case", high)
	}
	if el.Category != "Electronics" {
		t.Fatalf("category = %q", el.Category)
	}
}

func TestLookup_Absent(t *testing.T) {
	r := MustDefault()
	if _, ok := r.Lookup("groceries"); ok {
		t.Fatalf("expected miss for unregistered domain")
	}
	var nilReg *Registry
	if _, ok := nilReg.Lookup("electronics"); ok {
		t.Fatalf("nil registry should miss")
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	r := MustDefault()
	a, _ := r.Lookup("electronics")
	a.Slots[0].Name = "mutated"
	a.Slots[0].ExampleReplies[0] = "mutated"

	b, _ := r.Lookup("electronics")
	if b.Slots[0].Name != "use_case" || b.Slots[0].ExampleReplies[0] == "mutated" {
		t.Fatalf("registry was mutated through a lookup result: %+v", b.Slots[0])
	}
}

func TestByPriority_PreservesOrder(t *testing.T) {
	s := Schema{Domain: "x", Slots: []Slot{
		{Name: "a", Priority: Medium, ExampleQuestion: "?"},
		{Name: "b", Priority: High, ExampleQuestion: "?"},
		{Name: "c", Priority: Medium, ExampleQuestion: "?"},
	}}
	med := s.ByPriority(Medium)
	if len(med) != 2 || med[0].Name != "a" || med[1].Name != "c" {
		t.Fatalf("ByPriority(Medium) = %+v", med)
	}
}

func TestNew_Validation(t *testing.T) {
	ok := Slot{Name: "a", Priority: High, ExampleQuestion: "?"}
	cases := []struct {
		name string
		in   []Schema
		msg  string
	}{
		{"empty domain", []Schema{{Slots: []Slot{ok}}}, "empty domain"},
		{"no slots", []Schema{{Domain: "x"}}, "no slots"},
		{"dup slot", []Schema{{Domain: "x", Slots: []Slot{ok, ok}}}, "duplicate slot"},
		{"no priority", []Schema{{Domain: "x", Slots: []Slot{{Name: "a", ExampleQuestion: "?"}}}}, "no priority"},
		{"bad filter key", []Schema{{Domain: "x", Slots: []Slot{{Name: "a", Priority: High, ExampleQuestion: "?", FilterKey: "nope"}}}}, "unknown filter key"},
		{"dup domain", []Schema{{Domain: "x", Slots: []Slot{ok}}, {Domain: "X", Slots: []Slot{ok}}}, "duplicate domain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.in...)
			if err == nil || !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("New err = %v, want containing %q", err, tc.msg)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte("domains: []")); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
	if _, err := Parse([]byte("domains:\n  - domain: x\n    bogus: 1\n")); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	bad := "domains:\n  - domain: x\n    slots:\n      - name: a\n        priority: urgent\n        example_question: q\n"
	if _, err := Parse([]byte(bad)); err == nil || !strings.Contains(err.Error(), "unknown priority") {
		t.Fatalf("expected priority error, got %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "catalog.yaml")
	body := "domains:\n  - domain: toys\n    category: Toys\n    slots:\n      - name: age\n        priority: high\n        example_question: How old is the child?\n"
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	r, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, ok := r.Lookup("toys")
	if !ok || s.Slots[0].Priority != High {
		t.Fatalf("toys schema = %+v ok=%v", s, ok)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
	if r, err := Load(""); err != nil || len(r.Domains()) != 3 {
		t.Fatalf("Load(\"\") should return built-in catalog, err=%v", err)
	}
}

func TestPriorityString(t *testing.T) {
	if High.String() != "HIGH" || Medium.String() != "MEDIUM" || Low.String() != "LOW" || Priority(9).String() != "UNKNOWN" {
		t.Fatalf("unexpected priority names")
	}
}
