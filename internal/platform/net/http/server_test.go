package http_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"shopguide/internal/platform/config"
	phttp "shopguide/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

func TestServer_RunUntilCancelled(t *testing.T) {
	addr := freeAddr(t)
	t.Setenv("PORT", addr)
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	hooked := false
	srv := phttp.NewServer(config.New(), func(*chi.Mux) { hooked = true })
	if !hooked || srv.Addr() != addr {
		t.Fatalf("hook=%v addr=%q", hooked, srv.Addr())
	}
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		if resp, err = http.Get("http://" + addr + "/ping"); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never answered: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestServer_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	t.Setenv("PORT", ln.Addr().String())
	if err := phttp.NewServer(config.New()).Run(context.Background()); err == nil {
		t.Fatalf("expected address in use error")
	}
}

func TestServer_InvalidPortUsesDefault(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:notaport")
	if got := phttp.NewServer(config.New()).Addr(); got != ":4000" {
		t.Fatalf("addr = %q", got)
	}
	t.Setenv("PORT", "8088")
	if got := phttp.NewServer(config.New()).Addr(); got != ":8088" {
		t.Fatalf("bare port addr = %q", got)
	}
}
