// Package usage plots usage logs as an ASCII line chart.
package usage

import (
	"fmt"
	"sort"
	"time"

	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	minWidth  = 20
	minHeight = 3
)

type Point struct {
	At    time.Time
	Bytes int64
}

type Options struct {
	Width   int
	Height  int
	Caption string
}

var (
	emptyStyle   = lipgloss.NewStyle().Faint(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func FromAdminLogs(logs []types.AdminUsageLog) []Point {
	points := make([]Point, 0, len(logs))
	for _, log := range logs {
		points = append(points, Point{At: log.CreatedAt, Bytes: log.Usage})
	}
	return points
}

func FromSubscriptionLogs(logs []types.SubscriptionUsageLog) []Point {
	points := make([]Point, 0, len(logs))
	for _, log := range logs {
		points = append(points, Point{At: log.CreatedAt, Bytes: log.Usage})
	}
	return points
}

// Render plots points in chronological order, scaled to megabytes, with a
// one-line total underneath.
func Render(points []Point, opts Options) string {
	if len(points) == 0 {
		return emptyStyle.Render("No usage recorded.")
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	width := opts.Width
	if width < minWidth {
		width = minWidth
	}
	height := opts.Height
	if height < minHeight {
		height = minHeight
	}

	series := make([]float64, len(sorted))
	var total int64
	for i, point := range sorted {
		series[i] = float64(point.Bytes) / 1_000_000
		total += point.Bytes
	}
	// asciigraph needs two samples to draw a line.
	if len(series) == 1 {
		series = append(series, series[0])
	}

	plotOpts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
	}
	if opts.Caption != "" {
		plotOpts = append(plotOpts, asciigraph.Caption(opts.Caption))
	}

	graph := asciigraph.Plot(series, plotOpts...)
	summary := summaryStyle.Render(fmt.Sprintf(
		"total %s over %d samples (%s to %s)",
		domain.CompactBytes(total),
		len(sorted),
		sorted[0].At.UTC().Format("2006-01-02 15:04"),
		sorted[len(sorted)-1].At.UTC().Format("2006-01-02 15:04"),
	))

	return lipgloss.JoinVertical(lipgloss.Left, graph, summary)
}
