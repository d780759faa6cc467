package commands

import "github.com/charmbracelet/lipgloss"

// Story state and type accents for list output.
const (
	colorAccepted  = "#22C55E" // green
	colorInFlight  = "#F59E0B" // amber: started/finished/delivered
	colorRejected  = "#EF4444" // red
	colorScheduled = "#7C3AED" // purple: planned/unstarted
	colorIcebox    = "#6D7383" // muted grey
	colorHeader    = "#A78BFA"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHeader))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorIcebox))
)

func stateStyle(state string) lipgloss.Style {
	color := colorIcebox
	switch state {
	case "accepted":
		color = colorAccepted
	case "started", "finished", "delivered":
		color = colorInFlight
	case "rejected":
		color = colorRejected
	case "planned", "unstarted":
		color = colorScheduled
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func renderState(state string) string {
	if state == "" {
		return faintStyle.Render("-")
	}
	return stateStyle(state).Render(state)
}
