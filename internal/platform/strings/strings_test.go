package strings

import (
	"slices"
	"testing"

	"shopguide/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET"}
	if got := IfEmpty(nil, def); !slices.Equal(got, def) {
		t.Fatalf("nil: %v", got)
	}
	if got := IfEmpty([]string{"POST"}, def); !slices.Equal(got, []string{"POST"}) {
		t.Fatalf("set: %v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("stats", "name"); got != "stats" {
		t.Fatalf("got %q", got)
	}
	testkit.MustPanic(t, func() { MustString(" \t", "name") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"meta":        "/meta",
		"/discovery/": "/discovery",
		" //stats// ": "/stats",
		"/api/v1":     "/api/v1",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", " / "} {
		testkit.MustPanic(t, func() { MustPrefix(in) })
	}
}
