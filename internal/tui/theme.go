package tui

import "github.com/charmbracelet/lipgloss"

// Theme 定义 TUI 主题色彩和样式
// Theme defines TUI colors and styles
type Theme struct {
	// 基础色 / Base colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Danger    lipgloss.Color
	Warning   lipgloss.Color
	Success   lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	TextDim   lipgloss.Color
	BgPanel   lipgloss.Color
	BgSidebar lipgloss.Color
	Border    lipgloss.Color

	// 预构建样式 / Pre-built styles
	TitleStyle      lipgloss.Style
	ScanningStyle   lipgloss.Style
	PausedStyle     lipgloss.Style
	StatusBarStyle  lipgloss.Style
	PanelStyle      lipgloss.Style
	InputStyle      lipgloss.Style
	AdvisoryStyle   lipgloss.Style
	ErrorStyle      lipgloss.Style
	SuccessStyle    lipgloss.Style
	MutedStyle      lipgloss.Style
	TypeStyle       lipgloss.Style
	HistoryRawStyle lipgloss.Style
	SelectedStyle   lipgloss.Style
}

// DarkTheme 暗色主题（默认，slate 色系）
// DarkTheme is the default slate-toned dark theme
func DarkTheme() Theme {
	t := Theme{
		Primary:   lipgloss.Color("#1E40AF"),
		Secondary: lipgloss.Color("#0369A1"),
		Accent:    lipgloss.Color("#FDE047"),
		Danger:    lipgloss.Color("#DC2626"),
		Warning:   lipgloss.Color("#F59E0B"),
		Success:   lipgloss.Color("#34D399"),
		Muted:     lipgloss.Color("#64748B"),
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		BgPanel:   lipgloss.Color("#0F172A"),
		BgSidebar: lipgloss.Color("#020617"),
		Border:    lipgloss.Color("#334155"),
	}

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.ScanningStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Primary).
		Padding(0, 2).
		Bold(true)

	t.PausedStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Border).
		Padding(0, 2)

	t.StatusBarStyle = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.BgSidebar)

	t.PanelStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.InputStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Danger).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.AdvisoryStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Warning).
		Padding(0, 1)

	t.TypeStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	t.HistoryRawStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	t.SelectedStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	return t
}
