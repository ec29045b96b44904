package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kangactor123/ssalon-de-api/internal/domain/paymenttypes"
	"github.com/kangactor123/ssalon-de-api/internal/domain/sales"
	"github.com/kangactor123/ssalon-de-api/internal/domain/servicetypes"
	"github.com/kangactor123/ssalon-de-api/internal/form"
)

// session — живая форма одного чата. Контроллер владеет черновиком,
// awaitTypeID помнит, для какого типа оплаты ждём ввода суммы.
type session struct {
	ctrl        *form.Controller
	awaitTypeID string
	formMsgID   int
}

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	sales     *sales.Repo
	services  *servicetypes.Repo
	payments  *paymenttypes.Repo
	adminChat int64
	loc       *time.Location

	// формы по чатам; цикл обновлений один, блокировки не нужны
	sessions map[int64]*session
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	salesRepo *sales.Repo, servicesRepo *servicetypes.Repo,
	paymentsRepo *paymenttypes.Repo, adminChatID int64, loc *time.Location) *Bot {

	if loc == nil {
		loc = time.UTC
	}
	return &Bot{
		api: api, log: log, sales: salesRepo, services: servicesRepo,
		payments: paymentsRepo, adminChat: adminChatID, loc: loc,
		sessions: make(map[int64]*session),
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	if _, err := b.api.Request(resp); err != nil {
		b.log.Error("callback answer failed", "err", err)
	}
}

// SaleCreated — оповещение админ-чата о продаже, созданной через API.
func (b *Bot) SaleCreated(s *sales.Sale) {
	if b.adminChat == 0 {
		return
	}
	text := fmt.Sprintf("Новая продажа #%d на %d", s.ID, s.Amount)
	if s.Date != nil {
		text += " — " + s.Date.In(b.loc).Format("02.01 15:04")
	}
	b.send(tgbotapi.NewMessage(b.adminChat, text))
}
