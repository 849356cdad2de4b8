// Package insights generates deterministic, rule-based commentary for the
// dashboard: portfolio RAG rollups, trend direction, decile separation and
// the KS/PSI trigger explanations.
package insights

import (
	"fmt"
	"math"
	"strings"

	"modelmon/internal/monitor"
)

// PortfolioCommentary summarises one portfolio's RAG tallies as a short
// narrative: distribution, risk and review callouts, an overall
// assessment, and a pointer to the deep-dive views.
func PortfolioCommentary(portfolio string, modelCount, green, amber, red int) string {
	total := green + amber + red
	if total == 0 {
		return "No model data for this portfolio."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Distribution: %d%% Green, %d%% Amber, %d%% Red (%d %s). ",
		pct(green, total), pct(amber, total), pct(red, total), total, plural(total, "model"))
	if red > 0 {
		fmt.Fprintf(&b, "Risk: %d %s in Red require immediate review (KS < 0.2 or PSI > 0.25). ",
			red, plural(red, "model"))
	}
	if amber > 0 {
		fmt.Fprintf(&b, "Review: %d Amber %s need proactive monitoring. ",
			amber, plural(amber, "model"))
	}
	switch {
	case float64(green)/float64(total) >= 0.6:
		b.WriteString("Assessment: Healthy - majority of models show good discrimination and stability. ")
	case float64(red)/float64(total) >= 0.3:
		b.WriteString("Assessment: Elevated risk - consider portfolio-level remediation. ")
	default:
		b.WriteString("Assessment: Mixed - focus on Red/Amber models. ")
	}
	b.WriteString("Next: Use Trends and Analysis tab for Volume, KS, PSI deep dives.")
	return b.String()
}

func pct(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// TrendCommentary builds the per-metric commentary for a trend series.
// A first-to-last change under 5% counts as stable; otherwise the sign is
// read through whether higher is better for the metric.
func TrendCommentary(t monitor.TrendSeries) *monitor.TrendCommentary {
	return &monitor.TrendCommentary{
		Volume:  volumeComment(t.Volume),
		KS:      metricComment("KS", t.KS, true, ""),
		PSI:     metricComment("PSI", t.PSI, false, ""),
		BadRate: metricComment("Bad rate", t.BadRate, false, "%"),
	}
}

func pctChange(first, last float64) (float64, bool) {
	if first == 0 {
		return 0, false
	}
	return math.Round((last-first)/first*1000) / 10, true
}

func metricComment(label string, values []float64, higherIsBetter bool, unit string) string {
	if len(values) < 2 {
		return fmt.Sprintf("Not enough vintages to comment on %s trend.", label)
	}
	first, last := values[0], values[len(values)-1]
	pc, ok := pctChange(first, last)
	pctStr := ""
	if ok {
		pctStr = fmt.Sprintf(" (%+.1f%s)", pc, unit)
	}
	if !ok || math.Abs(pc) < 5 {
		return fmt.Sprintf("%s trend: stable across vintages%s.", label, pctStr)
	}
	up := pc > 0
	if higherIsBetter {
		if up {
			return fmt.Sprintf("%s trend: improving%s.", label, pctStr)
		}
		return fmt.Sprintf("%s trend: declining%s.", label, pctStr)
	}
	if up {
		return fmt.Sprintf("%s trend: worsening (higher than desired)%s.", label, pctStr)
	}
	return fmt.Sprintf("%s trend: improving (lower is better)%s.", label, pctStr)
}

// volumeComment phrases the volume trend neutrally: more volume is not
// better or worse, so it just reports the move and the latest count.
func volumeComment(volumes []int) string {
	if len(volumes) < 2 {
		return "Not enough vintages to comment on Volume trend."
	}
	first, last := volumes[0], volumes[len(volumes)-1]
	pc, ok := pctChange(float64(first), float64(last))
	if !ok {
		return fmt.Sprintf("Volume trend: stable across vintages (latest %s).", comma(last))
	}
	if math.Abs(pc) < 5 {
		return fmt.Sprintf("Volume trend: stable across vintages (latest %s).", comma(last))
	}
	dir := "increased"
	if pc < 0 {
		dir = "decreased"
	}
	return fmt.Sprintf("Volume trend: %s by %.1f%% from first to latest vintage (latest: %s).",
		dir, math.Abs(pc), comma(last))
}

// comma renders an int with thousands separators.
func comma(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// DecileCommentary describes the separation between the riskiest and
// safest score deciles.
func DecileCommentary(deciles []monitor.Decile) string {
	if len(deciles) == 0 {
		return "No decile data available for this model/vintage."
	}
	d1 := deciles[0].BadRate
	d10 := deciles[len(deciles)-1].BadRate
	separation := (d1 - d10) * 100
	if separation > 5 {
		return fmt.Sprintf(
			"Decile 1 (highest risk) shows the highest bad rate (%.1f%%); decile 10 the lowest (%.1f%%). Good separation across score deciles.",
			d1*100, d10*100)
	}
	if separation > 0 {
		return fmt.Sprintf(
			"Decile 1 bad rate: %.1f%%; decile 10: %.1f%%. Moderate separation; review if expected monotonic pattern is stronger.",
			d1*100, d10*100)
	}
	return "Decile-level bad rates are available; review the table for risk gradient across score bands."
}

// KSTriggerInsight explains a model's KS value using the decile gap.
// Decile 1 is the highest risk band; weak separation there is the usual
// driver of a low KS.
func KSTriggerInsight(ks *float64, deciles []monitor.Decile) string {
	if ks == nil {
		return "KS not available for this model/vintage."
	}
	v := *ks
	if len(deciles) == 0 {
		return fmt.Sprintf("KS = %.3f. Load decile data to understand which score bands drive this value.", v)
	}
	if v >= 0.3 {
		return fmt.Sprintf("KS = %.3f (above 0.3 threshold). Model discrimination is healthy; decile table confirms separation.", v)
	}
	d1 := deciles[0].BadRate * 100
	d10 := deciles[len(deciles)-1].BadRate * 100
	gap := d1 - d10
	if v < 0.2 {
		return fmt.Sprintf(
			"KS = %.3f (red trigger: below 0.2). Decile 1 bad rate (%.1f%%) vs decile 10 (%.1f%%) shows %.1fpp separation. Weak discrimination in the riskiest deciles may be driving the trigger; review score distribution and recent population shift.",
			v, d1, d10, gap)
	}
	return fmt.Sprintf(
		"KS = %.3f (amber: between 0.2 and 0.3). Decile 1 bad rate %.1f%%, decile 10 %.1f%%. Improving separation in top deciles (e.g. deciles 1-3) could help lift KS above 0.3.",
		v, d1, d10)
}

// PSITriggerInsight names the variables whose drift is behind a PSI
// trigger, or reports that all inputs are stable.
func PSITriggerInsight(variables []monitor.VariableRow) string {
	var drivers []string
	for _, v := range variables {
		if v.Status == monitor.StatusAmber || v.Status == monitor.StatusRed {
			drivers = append(drivers, v.Variable)
		}
	}
	if len(drivers) == 0 {
		return "All variables are within acceptable PSI range (green)."
	}
	return fmt.Sprintf("PSI trigger is primarily driven by: %s.", strings.Join(drivers, ", "))
}
