package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/isaacglide/lighthouse/tti"
)

var (
	rgbBlue   = lipgloss.Color("45")
	rgbPink   = lipgloss.Color("201")
	rgbGreen  = lipgloss.Color("46")
	rgbGrey   = lipgloss.Color("246")
	rgbYellow = lipgloss.Color("220")

	reportTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(rgbPink)

	metricValueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(rgbGreen)

	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(rgbBlue)

	periodStyle = lipgloss.NewStyle().
		Foreground(rgbGrey)

	matchedPeriodStyle = lipgloss.NewStyle().
		Foreground(rgbYellow)
)

// RenderReport formats the computed metric and its supporting quiet
// periods as a styled terminal report.
func RenderReport(metric tti.Metric, info *tti.QuietPeriodInfo) string {
	var b strings.Builder

	b.WriteString(reportTitleStyle.Render("Consistently Interactive"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n",
		metricValueStyle.Render(formatMillis(metric.Timing)),
		periodStyle.Render("after navigation start")))
	b.WriteString(periodStyle.Render(fmt.Sprintf("  at timestamp %.1f ms", metric.Timestamp)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("CPU quiet periods"))
	b.WriteString("\n")
	writePeriods(&b, info.CPUQuietPeriods, info.CPUQuietPeriod)

	b.WriteString(sectionStyle.Render("Network quiet periods"))
	b.WriteString("\n")
	writePeriods(&b, info.NetworkQuietPeriods, info.NetworkQuietPeriod)

	return b.String()
}

func writePeriods(b *strings.Builder, periods []tti.TimePeriod, matched tti.TimePeriod) {
	for _, p := range periods {
		line := fmt.Sprintf("  %10.1f – %10.1f ms  (%s)", p.Start, p.End, formatMillis(p.Duration()))
		if p == matched {
			b.WriteString(matchedPeriodStyle.Render(line + "  ← matched"))
		} else {
			b.WriteString(periodStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func formatMillis(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.1f s", ms/1000)
	}
	return fmt.Sprintf("%.0f ms", ms)
}
