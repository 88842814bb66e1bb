// Package config reads shopguide settings from the environment
//
// Settings are grouped by prefix: CORE_API_ for the listener, SERVICE_PGSQL_,
// SERVICE_CLICKHOUSE_ and SERVICE_REDIS_ for backends, INTERVIEW_,
// SPECIFICITY_ and SEARCH_ for discovery policy, LLM_ for the chat model.
// Every accessor takes a default; a value that does not parse is logged at
// Warn and the default is used, so a typo never stops the API from booting.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"shopguide/internal/platform/logger"
)

// Conf is a prefixed view over the environment, e.g. New().Prefix("SEARCH_")
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// may parses key with parse, returning def when unset or when parse fails
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Err(err).
			Interface("default", def).Msg("invalid setting; using default")
		return def
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

// MayInt reads an integer such as SERVICE_REDIS_DB
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, strconv.Atoi)
}

// MayCount reads an integer that must be at least 1, such as SEARCH_BANDS
// or SEARCH_POOL_CAP where zero would empty every result page
func (c Conf) MayCount(key string, def int) int {
	return may(c, key, def, func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err == nil && n < 1 {
			err = fmt.Errorf("%d is below 1", n)
		}
		return n, err
	})
}

// MayFloat64 reads a weight such as SPECIFICITY_THRESHOLD
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayRatio reads a fraction in [0, 1] such as SEARCH_FLOOR_RATIO
func (c Conf) MayRatio(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil && (f < 0 || f > 1) {
			err = fmt.Errorf("%g is outside 0..1", f)
		}
		return f, err
	})
}

// MayBool reads a flag such as INTERVIEW_FAST_PATH
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, strconv.ParseBool)
}

// MayDuration reads a Go duration such as INTERVIEW_CAPABILITY_TIMEOUT=8s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayAddr reads a listen address; a bare port like "4000" becomes ":4000"
func (c Conf) MayAddr(key, def string) string {
	return may(c, key, def, func(s string) (string, error) {
		if !strings.Contains(s, ":") {
			s = ":" + s
		}
		_, port, err := net.SplitHostPort(s)
		if err != nil {
			return "", err
		}
		if p, err := strconv.Atoi(port); err != nil || p < 1 || p > 65535 {
			return "", fmt.Errorf("port %q outside 1..65535", port)
		}
		return s, nil
	})
}

// MayURL reads an absolute http(s) URL such as LLM_BASE_URL
func (c Conf) MayURL(key, def string) string {
	return may(c, key, def, func(s string) (string, error) {
		u, err := url.Parse(s)
		if err != nil {
			return "", err
		}
		if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("not an absolute http url")
		}
		return s, nil
	})
}

// MayKV parses "electronics=50,books=5" into a map with lower case keys
// malformed pairs are logged and skipped; def when nothing usable is set
func (c Conf) MayKV(key string, def map[string]string) map[string]string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	out := map[string]string{}
	for _, p := range strings.Split(s, ",") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		k, v, ok := strings.Cut(p, "=")
		k, v = strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			logger.Get().Warn().Str("key", c.key(key)).Str("pair", p).Msg("invalid key=value pair; skipped")
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return def
	}
	return out
}
