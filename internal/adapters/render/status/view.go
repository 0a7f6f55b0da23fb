package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/guardcore-cli/internal/application"
	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

type RenderOptions struct {
	Now time.Time
}

func renderView(d application.Dashboard, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Guardcore Admin"),
		s.header.Render(fmt.Sprintf("profile: %s (%s)", d.Profile.ID, hostLabel(d.Profile))),
	}

	lines = append(lines, s.section.Render(renderAdmin(d, opts, s)))
	lines = append(lines, s.section.Render(renderSubscriptions(d, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func hostLabel(profile domain.Profile) string {
	label := profile.Label()
	if label == string(profile.ID) {
		return profile.BaseURL
	}
	return label
}

func renderAdmin(d application.Dashboard, opts RenderOptions, s styles) string {
	title := s.admin.Render(fmt.Sprintf("%s (%s)", d.Admin.Username, d.Admin.Role))
	if !d.Admin.Enabled {
		title += " " + s.warning.Render("[disabled]")
	}

	parts := []string{
		title,
		usageLine("traffic:", d.AdminUsage(), domain.CompactBytes, s),
		usageLine("subscriptions:", d.AdminCount(), func(v int64) string { return fmt.Sprintf("%d", v) }, s),
	}

	if d.Admin.LastLoginAt != nil {
		parts = append(parts, s.meta.Render("last login "+formatRelative(*d.Admin.LastLoginAt, opts.Now)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func usageLine(label string, usage domain.Usage, format func(int64) string, s styles) string {
	key := s.key.Render(fmt.Sprintf("%-14s", label))
	if usage.Unlimited() {
		return lipgloss.JoinHorizontal(lipgloss.Top, key, " ", s.detail.Render(format(usage.Used)+" (unlimited)"))
	}

	leftPercent := 100 - usage.Percent()
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(leftPercent, 0, 100))
	meta := percentStyle.Render(fmt.Sprintf("%2.0f%% used", usage.Percent()))
	amounts := s.meta.Render(fmt.Sprintf("(%s of %s)", format(usage.Used), format(usage.Limit)))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		key,
		" ",
		renderProgressBar(usage.Percent(), barWidth, s),
		" ",
		meta,
		" ",
		amounts,
	)
}

func renderSubscriptions(d application.Dashboard, s styles) string {
	st := d.Stats
	counters := []string{
		fmt.Sprintf("total %d", st.Total),
		fmt.Sprintf("active %d", st.Active),
		fmt.Sprintf("disabled %d", st.Disabled),
		fmt.Sprintf("expired %d", st.Expired),
		fmt.Sprintf("limited %d", st.Limited),
		fmt.Sprintf("pending %d", st.Pending),
	}
	online := []string{
		fmt.Sprintf("online %d", st.Online),
		fmt.Sprintf("offline %d", st.Offline),
		fmt.Sprintf("24h online %d", st.Last24hOnline),
		fmt.Sprintf("24h usage %s", domain.CompactBytes(st.Last24hUsage)),
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.key.Render("Subscriptions"),
		s.detail.Render(strings.Join(counters, " | ")),
		s.detail.Render(strings.Join(online, " | ")),
	)
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	filled := int(math.Round(float64(width) * used / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatRelative(at, now time.Time) string {
	if now.IsZero() {
		return at.UTC().Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	default:
		return plural(int(elapsed.Hours()/24), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	colorCode := int(240.0 + 15.0*normalized)
	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
