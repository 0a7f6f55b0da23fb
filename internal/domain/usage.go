package domain

import (
	"fmt"
	"net/url"
)

// Usage is a traffic counter against an optional limit, both in bytes. A
// zero Limit means unlimited.
type Usage struct {
	Used  int64
	Limit int64
}

func (u Usage) Unlimited() bool {
	return u.Limit <= 0
}

func (u Usage) Remaining() int64 {
	if u.Unlimited() {
		return 0
	}
	if u.Used >= u.Limit {
		return 0
	}
	return u.Limit - u.Used
}

// Percent returns the used share of the limit in [0, 100], or 0 when unlimited.
func (u Usage) Percent() float64 {
	if u.Unlimited() {
		return 0
	}
	percent := float64(u.Used) / float64(u.Limit) * 100
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}

func (u Usage) UsedCompact() string {
	return CompactBytes(u.Used)
}

func CompactBytes(v int64) string {
	if v < 1_000 {
		return fmt.Sprintf("%dB", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("%.1fKB", float64(v)/1_000)
	}

	if v < 1_000_000_000 {
		return fmt.Sprintf("%.1fMB", float64(v)/1_000_000)
	}

	return fmt.Sprintf("%.1fGB", float64(v)/1_000_000_000)
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return parsed.Host
}
