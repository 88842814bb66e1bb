package ch

import (
	"os"
	"strings"

	"shopguide/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo tags clickhouse sessions so system.query_log can tell
// the api apart from the cli, e.g. role "api" or "chat"
func BuildClientInfo(role string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	b := version.Info()

	type kv = struct{ Name, Version string }
	return clickhouse.ClientInfo{Products: []kv{
		{Name: b.Service, Version: clean(b.Version)},
		{Name: "role", Version: clean(role)},
		{Name: "commit", Version: clean(b.Commit)},
		{Name: "go", Version: clean(b.Go)},
		{Name: "host", Version: clean(host)},
	}}
}

// clean keeps the client_name header on one line
func clean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' {
			return '_'
		}
		return r
	}, s)
}
