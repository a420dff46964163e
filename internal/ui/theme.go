package ui

import "github.com/charmbracelet/lipgloss"

// Theme 定义终端输出的色彩和样式
// Theme defines terminal colors and styles
type Theme struct {
	Primary lipgloss.Color
	Danger  lipgloss.Color
	Success lipgloss.Color
	Muted   lipgloss.Color

	TitleStyle   lipgloss.Style
	MenuStyle    lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	MutedStyle   lipgloss.Style
}

// DefaultTheme 默认主题
// DefaultTheme is the default theme
func DefaultTheme() Theme {
	t := Theme{
		Primary: lipgloss.Color("#7C3AED"),
		Danger:  lipgloss.Color("#EF4444"),
		Success: lipgloss.Color("#10B981"),
		Muted:   lipgloss.Color("#6B7280"),
	}

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.MenuStyle = lipgloss.NewStyle().
		Foreground(t.Primary)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Danger).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	return t
}
