package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kohljary/driftwatch/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(24)

	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func scoreStyle(v float64) lipgloss.Style {
	switch {
	case v > 0.8:
		return goodStyle
	case v > 0.4:
		return warnStyle
	default:
		return badStyle
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func renderClassification(c model.ContextClassification) string {
	lines := []string{
		headerStyle.Render("context"),
		row("primary", string(c.PrimaryContext)),
		row("confidence", scoreStyle(c.Confidence).Render(fmt.Sprintf("%.2f", c.Confidence))),
	}
	for _, s := range c.SecondaryContexts {
		lines = append(lines, row("  also "+string(s.Context), fmt.Sprintf("%.2f", s.Score)))
	}
	return strings.Join(lines, "\n")
}

func renderMarkers(m model.BehavioralMarkers) string {
	lines := []string{
		headerStyle.Render("markers"),
		row("words", fmt.Sprint(m.ResponseLength)),
		row("sentences", fmt.Sprint(m.SentenceCount)),
		row("follow-up questions", fmt.Sprint(m.FollowUpQuestions)),
		row("tools used", fmt.Sprint(m.ToolUsageCount)),
	}
	for _, metric := range model.ProfiledMetrics {
		if metric == model.MetricResponseLength {
			continue
		}
		lines = append(lines, row(metric.Label(), fmt.Sprintf("%.2f", metric.Value(m))))
	}
	return strings.Join(lines, "\n")
}

func renderProfile(p model.ContextProfile) string {
	lines := []string{
		titleStyle.Render(string(p.Context)) + fmt.Sprintf("  %d samples, updated %s", p.SampleCount, p.UpdatedAt.Format("2006-01-02 15:04")),
		row("response length", fmt.Sprintf("%.1f ± %.1f", p.AvgResponseLength, p.StdResponseLength)),
		row("hedging language", fmt.Sprintf("%.2f ± %.2f", p.AvgHedgingRate, p.StdHedgingRate)),
		row("certainty language", fmt.Sprintf("%.2f ± %.2f", p.AvgCertaintyRate, p.StdCertaintyRate)),
	}
	for _, metric := range model.ProfiledMetrics {
		switch metric {
		case model.MetricResponseLength, model.MetricHedgingRate, model.MetricCertaintyRate:
			continue
		}
		lines = append(lines, row(metric.Label(), fmt.Sprintf("%.2f", p.Mean(metric))))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderReport(r model.ConsistencyScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %d profiles\n",
		titleStyle.Render("consistency "+scoreStyle(r.OverallScore).Render(fmt.Sprintf("%.3f", r.OverallScore))),
		r.Timestamp.Format("2006-01-02 15:04"), r.ProfilesAnalyzed)
	b.WriteString(r.Assessment)

	if len(r.MetricConsistency) > 0 {
		b.WriteString("\n\n" + headerStyle.Render("per metric"))
		for _, metric := range model.ConsistencyMetrics {
			v, ok := r.MetricConsistency[metric]
			if !ok {
				continue
			}
			b.WriteString("\n" + row(metric.Label(), scoreStyle(v).Render(fmt.Sprintf("%.3f", v))))
		}
	}
	if len(r.Anomalies) > 0 {
		b.WriteString("\n\n" + headerStyle.Render("anomalies"))
		for _, a := range r.Anomalies {
			fmt.Fprintf(&b, "\n  %s %s: %.2f vs mean %.2f (%s)",
				a.Context, a.Metric.Label(), a.Value, a.Mean, badStyle.Render(fmt.Sprintf("%.0f%%", a.DeviationPercent)))
		}
	}
	if len(r.ContextDivergences) > 0 {
		b.WriteString("\n\n" + headerStyle.Render("divergent pairs"))
		for _, d := range r.ContextDivergences {
			names := make([]string, 0, len(d.DivergentMetrics))
			for _, dm := range d.DivergentMetrics {
				names = append(names, fmt.Sprintf("%s %.2f", dm.Metric.Label(), dm.RelativeDifference))
			}
			fmt.Fprintf(&b, "\n  %s / %s: %s", d.ContextPair[0], d.ContextPair[1], strings.Join(names, ", "))
		}
	}
	if len(r.ResearchQuestions) > 0 {
		b.WriteString("\n\n" + headerStyle.Render("questions"))
		for _, q := range r.ResearchQuestions {
			b.WriteString("\n  - " + q)
		}
	}
	return b.String()
}
