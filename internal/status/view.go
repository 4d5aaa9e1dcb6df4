package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n\n")

	b.WriteString(renderGrammar(data))
	b.WriteString("\n\n")

	b.WriteString(renderSettings(data))
	b.WriteString("\n\n")

	b.WriteString(renderHistory(data))

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	if data.GitCommit != "" && data.GitCommit != "unknown" {
		b.WriteString(subtleStyle.Render(fmt.Sprintf(" (%s, built %s)", data.GitCommit, data.BuildTime)))
	}
	return b.String()
}

func keyValue(key, value string) string {
	return "   " + keyStyle.Render(key+": ") + value + "\n"
}

func renderGrammar(data *Data) string {
	g := data.Grammar

	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Grammar:") + "\n")

	if g.Embedded() {
		b.WriteString(keyValue("Source", subtleStyle.Render("embedded demo")))
	} else {
		b.WriteString(keyValue("Source", valueStyle.Render(g.Source)))
		b.WriteString(keyValue("Size", valueStyle.Render(formatBytes(g.Size))))
	}
	if g.Prog != "" {
		b.WriteString(keyValue("Program", valueStyle.Render(g.Prog)))
	}

	if !g.Valid {
		b.WriteString(keyValue("Status", errorStyle.Render("✗ Invalid")))
		for i, e := range g.Errors {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, subtleStyle.Render(truncateString(e, 80))))
		}
		return strings.TrimSuffix(b.String(), "\n")
	}

	b.WriteString(keyValue("Status", successStyle.Render("✓ Valid")))
	b.WriteString(keyValue("Commands", valueStyle.Render(fmt.Sprintf("%d", g.Commands))))
	b.WriteString(keyValue("Options", valueStyle.Render(fmt.Sprintf("%d", g.Options))))
	b.WriteString(keyValue("Depth", valueStyle.Render(fmt.Sprintf("%d", g.Depth))))

	return strings.TrimSuffix(b.String(), "\n")
}

func renderSettings(data *Data) string {
	s := data.Settings

	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚙️  Settings:") + "\n")

	note := ""
	if !data.SettingsExists {
		note = subtleStyle.Render(" (not found, using defaults)")
	}
	b.WriteString(keyValue("Path", subtleStyle.Render(data.SettingsPath)+note))
	b.WriteString(keyValue("Log level", valueStyle.Render(s.LogLevel)))
	b.WriteString(keyValue("Prompt", valueStyle.Render(fmt.Sprintf("%q", s.Prompt))))
	b.WriteString(keyValue("Match middle", yesNo(s.MatchMiddle)))
	b.WriteString(keyValue("Ignore case", yesNo(s.IgnoreCase)))

	limit := "unlimited"
	if s.MaxCandidates > 0 {
		limit = fmt.Sprintf("%d", s.MaxCandidates)
	}
	b.WriteString(keyValue("Max candidates", valueStyle.Render(limit)))

	return strings.TrimSuffix(b.String(), "\n")
}

func renderHistory(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🕘 History:") + "\n")

	h := data.History
	if h == nil {
		b.WriteString("   " + subtleStyle.Render("No history file configured"))
		return b.String()
	}

	b.WriteString(keyValue("Path", subtleStyle.Render(h.Path)))
	b.WriteString(keyValue("Limit", valueStyle.Render(fmt.Sprintf("%d", data.Settings.HistoryLimit))))
	if !h.Exists {
		b.WriteString("   " + subtleStyle.Render("History file not created yet"))
		return b.String()
	}
	b.WriteString(keyValue("Size", valueStyle.Render(formatBytes(h.Size))))
	b.WriteString(keyValue("Entries", valueStyle.Render(fmt.Sprintf("%d", h.Entries))))

	return strings.TrimSuffix(b.String(), "\n")
}

func yesNo(v bool) string {
	if v {
		return successStyle.Render("yes")
	}
	return subtleStyle.Render("no")
}

func formatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// truncateString shortens s to maxLen characters, ending with "..."
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) > maxLen {
		return string(r[:maxLen-3]) + "..."
	}
	return s
}
