package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "test.env")
	if err := os.WriteFile(p, []byte("DOTENV_A=from_file\nDOTENV_B=file_b\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_B", "from_env")
	t.Cleanup(func() { _ = os.Unsetenv("DOTENV_A") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), p); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("DOTENV_A"); got != "from_file" {
		t.Fatalf("DOTENV_A = %q", got)
	}
	if got := os.Getenv("DOTENV_B"); got != "from_env" {
		t.Fatalf("existing env must win, got %q", got)
	}
}
