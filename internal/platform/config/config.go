// Package config is the env-backed settings view for the tally job and the
// read API. May* keys fall back with a warning and Must* ones panic. The
// checked readers (Int, Bool, Duration, Enum) return a validation error
// for a malformed value so a job can refuse to start.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	perr "dltally/internal/platform/errors"
	"dltally/internal/platform/logger"
)

// Conf reads variables under a prefix such as "DLT_" or "PG_"
type Conf struct{ prefix string }

// New is the unprefixed root
func New() Conf { return Conf{} }

// Prefix scopes c further, e.g. root.Prefix("DLT_").Prefix("BACKFILL_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// parsed reads k through parse. Unset keys give def silently, malformed
// ones give def with a warning.
func parsed[T any](c Conf, k string, def T, parse func(string) (T, error)) T {
	s := c.lookup(k)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", c.key(k)).Str("value", s).Interface("default", def).Msg("unparseable env, using default")
		return def
	}
	return v
}

// required is parsed for keys the process cannot start without
func required[T any](c Conf, k string, parse func(string) (T, error)) T {
	s := c.lookup(k)
	if s == "" {
		logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", c.key(k)).Str("value", s).Msg("invalid required env")
	}
	return v
}

// checked reads k through parse; unset gives def, malformed an error naming the key
func checked[T any](c Conf, k string, def T, parse func(string) (T, error)) (T, error) {
	s := c.lookup(k)
	if s == "" {
		return def, nil
	}
	v, err := parse(s)
	if err != nil {
		return def, perr.WithField(perr.Wrapf(err, perr.ErrorCodeValidation, "%s=%q is invalid", c.key(k), s), c.key(k))
	}
	return v, nil
}

func str(s string) (string, error) { return s, nil }

func port(s string) (string, error) {
	p, err := strconv.Atoi(s)
	if err == nil && (p < 1 || p > 65535) {
		err = strconv.ErrRange
	}
	return ":" + s, err
}

func day(s string) (time.Time, error) { return time.ParseInLocation(time.DateOnly, s, time.UTC) }

func float(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// MustString is a required string
func (c Conf) MustString(k string) string { return required(c, k, str) }

// MustInt is a required int
func (c Conf) MustInt(k string) int { return required(c, k, strconv.Atoi) }

// MustPort is a required TCP port rendered as a listen address (":4000")
func (c Conf) MustPort(k string) string { return required(c, k, port) }

// MayString is k or def
func (c Conf) MayString(k, def string) string { return parsed(c, k, def, str) }

// MayInt is k as an int, or def
func (c Conf) MayInt(k string, def int) int { return parsed(c, k, def, strconv.Atoi) }

// MayFloat64 is k as a float, or def
func (c Conf) MayFloat64(k string, def float64) float64 { return parsed(c, k, def, float) }

// MayBool is k per strconv.ParseBool, or def
func (c Conf) MayBool(k string, def bool) bool { return parsed(c, k, def, strconv.ParseBool) }

// MayDuration is k per time.ParseDuration, or def
func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	return parsed(c, k, def, time.ParseDuration)
}

// MayDate is a YYYY-MM-DD UTC day, or def. A malformed day panics.
func (c Conf) MayDate(k string, def time.Time) time.Time {
	if c.lookup(k) == "" {
		return def
	}
	return required(c, k, day)
}

// MayCSV splits k on commas, dropping blanks; def when nothing is left
func (c Conf) MayCSV(k string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(k), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// Int is k as an int, or def
func (c Conf) Int(k string, def int) (int, error) { return checked(c, k, def, strconv.Atoi) }

// Bool is k per strconv.ParseBool, or def
func (c Conf) Bool(k string, def bool) (bool, error) { return checked(c, k, def, strconv.ParseBool) }

// Duration is k per time.ParseDuration, or def
func (c Conf) Duration(k string, def time.Duration) (time.Duration, error) {
	return checked(c, k, def, time.ParseDuration)
}

// Enum is k lowercased, which must match one of allowed in any case, or def
func (c Conf) Enum(k, def string, allowed ...string) (string, error) {
	return checked(c, k, def, func(s string) (string, error) {
		for _, a := range allowed {
			if strings.EqualFold(s, a) {
				return strings.ToLower(a), nil
			}
		}
		return "", fmt.Errorf("want one of %s", strings.Join(allowed, ", "))
	})
}
