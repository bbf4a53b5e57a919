package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/contracts"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stylePath    = lipgloss.NewStyle().Foreground(colorCyan)
	styleCode    = lipgloss.NewStyle().Foreground(colorRed)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
)

// renderReport formats a failed validation, one issue per line.
func renderReport(ve *contracts.ValidationError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", styleCode.Render(iconError), styleTitle.Render(ve.Model), styleDim.Render(string(ve.Kind)))
	for _, it := range ve.Issues {
		fmt.Fprintf(&b, "  %s %s %s", stylePath.Render(it.Path), styleCode.Render(it.Code), it.Message)
		if p := formatParams(it.Params); p != "" {
			b.WriteString(" " + styleDim.Render(p))
		}
		if it.Rule != "" {
			b.WriteString(" " + styleDim.Render("rule="+it.Rule))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderWarning(w fmeaskema.Warning) string {
	return styleWarning.Render(iconWarning) + " " + styleWarning.Render(w.String()) + "\n"
}

func renderSuccess(model string, warnings int) string {
	msg := model + " is valid"
	if warnings > 0 {
		msg += fmt.Sprintf(" (%d warning(s))", warnings)
	}
	return styleSuccess.Render(iconSuccess) + " " + msg + "\n"
}

func formatParams(p map[string]any) string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, p[k])
	}
	return "[" + strings.Join(parts, " ") + "]"
}
