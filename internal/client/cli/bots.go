package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/client/script"
	"github.com/dmitrijs2005/bothoster/internal/client/services"
	"github.com/dmitrijs2005/bothoster/internal/client/state"
	"github.com/dmitrijs2005/bothoster/internal/common"
)

const tryTimeout = 5 * time.Second

// List prints the dashboard: the bot counter and one card per bot.
func (a *App) List(ctx context.Context) error {
	printlnFn(renderDashboard(a.session.Email(), a.session.Bots(), a.session.CanCreate()))
	a.printBanners()
	return nil
}

// Create walks the user through the create form and submits it.
// The script check is advisory: a failing check prints a warning and the
// bot is still submitted.
func (a *App) Create(ctx context.Context) error {
	if !a.session.OpenCreate() {
		printlnFn(renderError(state.MsgQuotaReached))
		return services.ErrQuotaReached
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Bot name (empty for %q)", models.DefaultBotName), a.out)
	if err != nil {
		a.session.CancelModal()
		return err
	}
	a.session.SetName(name)

	token, err := getSecret("Bot token (from @BotFather)", a.out)
	if err != nil {
		a.session.CancelModal()
		return err
	}
	a.session.SetToken(string(token))
	common.WipeByteArray(token)

	src, err := getMultiline(a.reader, "Bot script (empty keeps the default echo handler)", a.out)
	if err != nil {
		a.session.CancelModal()
		return err
	}
	if strings.TrimSpace(src) != "" {
		a.session.SetScript(src)
	}
	a.checkScript(a.session.Form().Script)

	err = a.session.SubmitCreate(ctx)
	a.printBanners()
	if err != nil {
		a.log.Debug(ctx, "create bot failed", "error", err)
		a.session.CancelModal()
		return err
	}

	if list := a.session.Bots(); len(list) > 0 {
		printlnFn(renderBotCard(list[len(list)-1]))
	}
	return nil
}

// Edit shows the current script of botID and replaces it with the new one.
// An empty input leaves the bot unchanged.
func (a *App) Edit(ctx context.Context, botID string) error {
	if !a.session.OpenEdit(botID) {
		a.printBanners()
		return services.ErrBotNotFound
	}

	printlnFn(renderScript(a.session.Form().Script))
	src, err := getMultiline(a.reader, "New script (empty keeps the current one)", a.out)
	if err != nil {
		a.session.CancelModal()
		return err
	}
	if strings.TrimSpace(src) == "" {
		a.session.CancelModal()
		printlnFn("No changes")
		return nil
	}

	a.session.SetScript(src)
	a.checkScript(src)

	err = a.session.SubmitUpdate(ctx)
	a.printBanners()
	if err != nil {
		a.log.Debug(ctx, "update bot failed", "bot_id", botID, "error", err)
		a.session.CancelModal()
		return err
	}
	return nil
}

// Delete removes botID after the user confirms.
func (a *App) Delete(ctx context.Context, botID string) error {
	agreed := false
	err := a.session.Delete(ctx, botID, func() bool {
		ok, err := confirm(a.reader, fmt.Sprintf("Delete bot %s?", botID), a.out)
		agreed = err == nil && ok
		return agreed
	})
	if !agreed {
		printlnFn("Cancelled")
		return nil
	}
	a.printBanners()
	if err != nil {
		a.log.Debug(ctx, "delete bot failed", "bot_id", botID, "error", err)
	}
	return err
}

// Show prints one bot with its masked token and full script.
func (a *App) Show(ctx context.Context, botID string) error {
	b, ok := a.session.Bot(botID)
	if !ok {
		printlnFn(renderError(state.MsgBotNotFound))
		return services.ErrBotNotFound
	}
	printlnFn(renderBotDetail(b))
	return nil
}

// Try runs the bot's script locally against text. Without text the user is
// prompted for a message.
func (a *App) Try(ctx context.Context, botID, text string) error {
	b, ok := a.session.Bot(botID)
	if !ok {
		printlnFn(renderError(state.MsgBotNotFound))
		return services.ErrBotNotFound
	}

	if text == "" {
		var err error
		if text, err = getSimpleText(a.reader, "Message text", a.out); err != nil {
			return err
		}
	}

	rctx, cancel := context.WithTimeout(ctx, tryTimeout)
	defer cancel()

	res, err := script.Run(rctx, b.Script, text)
	if out := strings.TrimRight(res.Output, "\n"); out != "" {
		printlnFn(renderMuted(out))
	}
	if err != nil {
		printlnFn(renderWarning("Script error: " + err.Error()))
		return err
	}

	if res.HasReply {
		printlnFn("Reply: " + res.Reply)
	} else {
		printlnFn("No reply")
	}
	return nil
}

// Webhooks asks Telegram for the webhook of every bot in the list.
func (a *App) Webhooks(ctx context.Context) error {
	list := a.session.Bots()
	if len(list) == 0 {
		printlnFn("No bots yet")
		return nil
	}
	reports := a.inspector.CheckAll(ctx, list)
	printlnFn(renderWebhooks(list, reports))
	return nil
}

func (a *App) checkScript(src string) {
	if err := script.Check(src); err != nil {
		printlnFn(renderWarning("Script check: " + err.Error()))
	}
}
