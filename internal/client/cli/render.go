package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/client/telegram"
	"github.com/dmitrijs2005/bothoster/internal/common"
)

// visibleTokenChars is how much of a bot token show reveals.
const visibleTokenChars = 6

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	scriptStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1)
)

func renderError(msg string) string   { return errorStyle.Render("✗ " + msg) }
func renderSuccess(msg string) string { return successStyle.Render("✓ " + msg) }
func renderWarning(msg string) string { return warningStyle.Render("! " + msg) }
func renderMuted(msg string) string   { return mutedStyle.Render(msg) }

func renderCounter(n int) string {
	return fmt.Sprintf("%d/%d bots", n, models.MaxBotsPerAccount)
}

func webhookState(set bool) string {
	if set {
		return activeStyle.Render("active")
	}
	return mutedStyle.Render("inactive")
}

func renderBotCard(b models.Bot) string {
	lines := []string{
		titleStyle.Render(b.Name),
		"@" + b.Username,
		"ID: " + b.ID,
		"Webhook: " + b.WebhookURL,
		"Status: " + webhookState(b.WebhookSet),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func renderBotDetail(b models.Bot) string {
	lines := []string{
		titleStyle.Render(b.Name),
		"@" + b.Username,
		"ID: " + b.ID,
		"Token: " + common.MaskSecret(b.Token, visibleTokenChars),
		"Webhook: " + b.WebhookURL,
		"Status: " + webhookState(b.WebhookSet),
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		cardStyle.Render(strings.Join(lines, "\n")),
		renderScript(b.Script),
	)
}

func renderScript(src string) string {
	return scriptStyle.Render(src)
}

func renderDashboard(email string, list []models.Bot, canCreate bool) string {
	header := titleStyle.Render("My Bots")
	if email != "" {
		header += " " + mutedStyle.Render(email)
	}

	counter := renderCounter(len(list))
	if !canCreate {
		counter += " " + warningStyle.Render("(limit reached)")
	}

	parts := []string{header, counter}
	if len(list) == 0 {
		parts = append(parts, mutedStyle.Render("No bots yet. Type 'create' to deploy one."))
	}
	for _, b := range list {
		parts = append(parts, renderBotCard(b))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderWebhooks lays out one row per report. reports[i] belongs to list[i].
func renderWebhooks(list []models.Bot, reports []telegram.Report) string {
	rows := make([][]string, 0, len(reports))
	for i, r := range reports {
		name := r.BotID
		if i < len(list) && list[i].ID == r.BotID {
			name = list[i].Name
		}

		if r.Err != nil {
			rows = append(rows, []string{name, "error: " + r.Err.Error(), "", ""})
			continue
		}
		if r.Status == nil {
			rows = append(rows, []string{name, "(unknown)", "", ""})
			continue
		}

		url := "(none)"
		if r.Status.Active() {
			url = r.Status.URL
		}
		lastErr := r.Status.LastError
		if lastErr != "" && !r.Status.LastErrorAt.IsZero() {
			lastErr = fmt.Sprintf("%s (%s)", lastErr, r.Status.LastErrorAt.Format(time.RFC3339))
		}
		rows = append(rows, []string{name, url, strconv.Itoa(r.Status.PendingUpdates), lastErr})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("BOT", "WEBHOOK", "PENDING", "LAST ERROR").
		Rows(rows...).
		String()
}
