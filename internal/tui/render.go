package tui

import (
	"fmt"
	"strings"
	"time"

	"qrscan/internal/clip"
	"qrscan/internal/content"
	"qrscan/internal/history"
	"qrscan/internal/i18n"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
)

// RenderMarkdown 使用 Glamour 渲染 markdown 文本
// RenderMarkdown renders markdown text using Glamour
func RenderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	rendered, err := r.Render(text)
	if err != nil {
		return text
	}

	return strings.TrimRight(rendered, "\n")
}

// ResultMarkdown 构建当前结果卡片的 markdown
// ResultMarkdown builds the markdown body of the current-result card.
func ResultMarkdown(e *history.Entry, loc *i18n.Catalog) string {
	if e == nil {
		return "_" + loc.T("result.empty") + "_"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s:** %s  \n", loc.T("result.type"), loc.Label(e.Type))
	fmt.Fprintf(&b, "%s\n\n", loc.Description(e.Type))
	b.WriteString("```\n")
	b.WriteString(strings.TrimRight(e.Raw, "\n"))
	b.WriteString("\n```\n")

	if e.Type == content.WiFi {
		if n, ok := content.ParseWiFi(e.Raw); ok {
			b.WriteString("\n")
			fmt.Fprintf(&b, "- %s: `%s`\n", loc.T("result.wifi.ssid"), n.SSID)
			if n.Password != "" {
				fmt.Fprintf(&b, "- %s: `%s`\n", loc.T("result.wifi.pass"), n.Password)
			}
			if n.Auth != "" {
				fmt.Fprintf(&b, "- %s: %s\n", loc.T("result.wifi.auth"), n.Auth)
			}
		}
	}

	if link, ok := clip.ActionLink(e.Raw, e.Type); ok {
		fmt.Fprintf(&b, "\n%s: <%s>\n", actionLabel(e.Type, loc), link)
	}

	if !e.ScannedAt.IsZero() {
		fmt.Fprintf(&b, "\n_%s %s_\n", loc.T("result.scanned_at"), formatStamp(e.ScannedAt))
	}
	return b.String()
}

func actionLabel(t content.ContentType, loc *i18n.Catalog) string {
	switch content.ActionFor(t) {
	case content.ActionMail:
		return loc.T("result.action.mail")
	case content.ActionCall:
		return loc.T("result.action.call")
	default:
		return loc.T("result.action.open")
	}
}

// HistoryLines 渲染历史列表（最新在前）
// HistoryLines renders the history list, most recent first, one line each.
// The row at index selected is marked; pass -1 for no selection.
func HistoryLines(entries []history.Entry, theme Theme, loc *i18n.Catalog, width, selected int) string {
	if len(entries) == 0 {
		return theme.MutedStyle.Render("  " + loc.T("history.empty"))
	}
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		label := theme.TypeStyle.Render(loc.Label(e.Type))
		stamp := theme.MutedStyle.Render(formatStamp(e.ScannedAt))
		raw := truncate(singleLine(e.Raw), width-30)
		mark := " "
		if i == selected {
			mark = theme.SelectedStyle.Render("›")
			raw = theme.SelectedStyle.Render(raw)
		} else {
			raw = theme.HistoryRawStyle.Render(raw)
		}
		lines = append(lines, fmt.Sprintf("%s%2d. %s %s  %s", mark, i+1, label, stamp, raw))
	}
	return strings.Join(lines, "\n")
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func singleLine(s string) string {
	s = strings.TrimSpace(s)
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most max terminal cells.
func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	return runewidth.Truncate(s, max, "…")
}
