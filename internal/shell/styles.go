package shell

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#9E9E9E")
	alert  = lipgloss.Color("#E53935")
)

// Styles controls how the shell renders its output. The zero value renders
// text unchanged.
type Styles struct {
	enabled bool

	Banner  lipgloss.Style
	Prompt  lipgloss.Style
	Heading lipgloss.Style
	Hint    lipgloss.Style
	Notice  lipgloss.Style
}

// DefaultStyles returns the colored terminal styles
func DefaultStyles() Styles {
	return Styles{
		enabled: true,
		Banner: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Foreground(accent),
		Heading: lipgloss.NewStyle().
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(muted),
		Notice: lipgloss.NewStyle().
			Foreground(alert),
	}
}

// PlainStyles renders text unchanged
func PlainStyles() Styles {
	return Styles{}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}
