package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"shopguide/internal/modkit/httpkit"
	phttp "shopguide/internal/platform/net/http"
	"shopguide/internal/platform/testkit"
)

func header(k, v string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(k, v)
			next.ServeHTTP(w, r)
		})
	}
}

func TestBuild_LaterOptionsWin(t *testing.T) {
	b := Build(WithName("meta"), WithPrefix("/meta"), WithName("stats"), WithPorts(42))
	if b.Name != "stats" || b.Prefix != "/meta" || b.Ports != 42 {
		t.Fatalf("built = %+v", b)
	}
}

func TestBuilt_Mount(t *testing.T) {
	b := Build(
		WithPrefix("stats/"),
		WithMiddlewares(header("X-Mw", "a"), header("X-Mw", "b")),
		WithRoutes(func(r httpkit.Router) {
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		}),
	)
	r := phttp.AdaptChi(chi.NewRouter())
	b.Mount(r, func(r httpkit.Router) {
		r.Get("/steps", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})

	cases := []struct {
		path string
		code int
	}{
		{"/stats/steps", http.StatusOK},
		{"/stats/extra", http.StatusAccepted},
		{"/steps", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.code {
			t.Fatalf("%s: code = %d, want %d", tc.path, rec.Code, tc.code)
		}
		if tc.code != http.StatusNotFound {
			if got := rec.Header().Values("X-Mw"); len(got) != 2 || got[0] != "a" {
				t.Fatalf("%s: middleware order %v", tc.path, got)
			}
		}
	}
}

func TestBuilt_MountRequiresPrefix(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	testkit.MustPanic(t, func() { Build().Mount(r, nil) })
}
