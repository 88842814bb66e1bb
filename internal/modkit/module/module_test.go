package module

import (
	"testing"

	phttp "shopguide/internal/platform/net/http"
	"shopguide/internal/platform/testkit"
)

type searcher interface{ Search(q string) int }
type scorer interface{ Score(q string) float64 }

type fakeSearch struct{}

func (fakeSearch) Search(q string) int { return len(q) }

type portSet struct {
	Search  searcher
	private scorer
}

type stub struct{ ports any }

func (stub) Name() string             { return "stub" }
func (stub) MountRoutes(phttp.Router) {}
func (s stub) Ports() any             { return s.ports }

func TestPortsOf(t *testing.T) {
	cases := []struct {
		name  string
		ports any
		found bool
	}{
		{"nil", nil, false},
		{"direct", fakeSearch{}, true},
		{"struct field", portSet{Search: fakeSearch{}}, true},
		{"pointer to struct", &portSet{Search: fakeSearch{}}, true},
		{"nil pointer", (*portSet)(nil), false},
		{"unset field", portSet{}, false},
		{"scalar", 7, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PortsOf[searcher](stub{tc.ports})
			if ok != tc.found {
				t.Fatalf("ok = %v, want %v", ok, tc.found)
			}
			if ok && got.Search("abc") != 3 {
				t.Fatalf("wrong port %T", got)
			}
		})
	}
}

func TestPortsOf_SkipsUnexportedFields(t *testing.T) {
	if _, ok := PortsOf[scorer](stub{portSet{Search: fakeSearch{}}}); ok {
		t.Fatalf("unexported field should not be visible")
	}
}

func TestMustPortsOf(t *testing.T) {
	if got := MustPortsOf[searcher](stub{portSet{Search: fakeSearch{}}}); got == nil {
		t.Fatalf("nil port")
	}
	testkit.MustPanic(t, func() { MustPortsOf[scorer](stub{portSet{}}) })
}

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Register("search", portSet{Search: fakeSearch{}})

	if p, ok := PortsAs[portSet]("search"); !ok || p.Search == nil {
		t.Fatalf("PortsAs = %+v, %v", p, ok)
	}
	if _, ok := PortsAs[int]("search"); ok {
		t.Fatalf("wrong type should miss")
	}
	Register("meta", nil)
	if got := Names(); len(got) != 2 || got[0] != "meta" || got[1] != "search" {
		t.Fatalf("Names = %v", got)
	}
	Reset()
	if _, ok := PortsAs[portSet]("search"); ok {
		t.Fatalf("reset did not clear")
	}
}
