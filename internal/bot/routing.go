package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kangactor123/ssalon-de-api/internal/form"
)

const helpText = `Команды:
/sale — новая продажа
/edit <номер> — изменить продажу
/done — сохранить черновик
/cancel — отменить черновик
/today — продажи за сегодня

В открытом черновике число в сообщении — сумма отмеченной оплаты,
любой другой текст — комментарий к записи.`

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.onCommand(ctx, chatID, msg)
		return
	}
	b.onText(chatID, msg.Text)
}

func (b *Bot) onCommand(ctx context.Context, chatID int64, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		b.send(tgbotapi.NewMessage(chatID, helpText))
	case "sale":
		b.startForm(ctx, chatID, "")
	case "edit":
		arg := strings.TrimSpace(msg.CommandArguments())
		if arg == "" {
			b.send(tgbotapi.NewMessage(chatID, "Укажите номер записи: /edit 123"))
			return
		}
		b.startForm(ctx, chatID, arg)
	case "done":
		b.submit(ctx, chatID)
	case "cancel":
		if _, ok := b.sessions[chatID]; !ok {
			b.send(tgbotapi.NewMessage(chatID, "Открытого черновика нет."))
			return
		}
		delete(b.sessions, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Черновик отменён."))
	case "today":
		b.sendTodayList(ctx, chatID)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Не знаю такой команды. /help"))
	}
}

func (b *Bot) startForm(ctx context.Context, chatID int64, editID string) {
	collab := &chatCollab{bot: b, chatID: chatID}
	ctrl := form.NewController(collab, editID)
	ctrl.Start(ctx)
	if ctrl.State() == form.StateLoading {
		// запись не загрузилась, пользователь уже получил уведомление
		return
	}
	b.sessions[chatID] = &session{ctrl: ctrl}
	b.showForm(chatID)
}

// onText — свободный ввод в открытом черновике: цифры уходят в сумму
// отмеченной оплаты, остальное — в комментарий.
func (b *Bot) onText(chatID int64, text string) {
	sess, ok := b.sessions[chatID]
	if !ok {
		b.send(tgbotapi.NewMessage(chatID, "Откройте черновик: /sale. Справка: /help"))
		return
	}
	text = strings.TrimSpace(text)

	if sess.awaitTypeID != "" {
		if err := sess.ctrl.Editor().SetAmount(sess.awaitTypeID, text); err != nil {
			if errors.Is(err, form.ErrNotNumeric) {
				b.send(tgbotapi.NewMessage(chatID, "⚠️ Сумма — только цифры. Попробуйте ещё раз."))
				return
			}
			b.log.Error("set amount failed", "err", err)
			return
		}
		sess.awaitTypeID = ""
		b.showForm(chatID)
		return
	}

	sess.ctrl.Store().SetDescription(text)
	b.showForm(chatID)
}

func (b *Bot) submit(ctx context.Context, chatID int64) {
	sess, ok := b.sessions[chatID]
	if !ok {
		b.send(tgbotapi.NewMessage(chatID, "Открытого черновика нет. /sale"))
		return
	}

	valid := form.Validate(sess.ctrl.Store().Get()).OK
	err := sess.ctrl.Submit(ctx)
	switch {
	case errors.Is(err, form.ErrSubmitInFlight):
		b.send(tgbotapi.NewMessage(chatID, "Запись уже отправляется."))
	case err != nil:
		// уведомление уже ушло, черновик остаётся на доработку
		b.log.Error("submit failed", "err", err, "chat_id", chatID)
	case valid:
		delete(b.sessions, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Запись сохранена."))
	}
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	chatID := cb.Message.Chat.ID
	data := cb.Data

	sess, ok := b.sessions[chatID]
	if !ok {
		b.answerCallback(cb, "Черновик уже закрыт. /sale", true)
		return
	}
	ctrl := sess.ctrl
	snap := ctrl.Store().Get()

	action, arg := data, ""
	if i := strings.Index(data, ":"); i >= 0 {
		action, arg = data[:i], data[i+1:]
	}

	switch action {
	case "pay":
		checked := false
		for _, p := range snap.Payments {
			if p.TypeID == arg {
				checked = true
				break
			}
		}
		if checked {
			ctrl.Editor().Uncheck(arg)
			if sess.awaitTypeID == arg {
				sess.awaitTypeID = ""
			}
			b.answerCallback(cb, "", false)
			b.showForm(chatID)
			return
		}
		name := ""
		for _, pt := range ctrl.PaymentTypes() {
			if pt.ID == arg {
				name = pt.Name
				break
			}
		}
		if name == "" {
			b.answerCallback(cb, "Такого типа оплаты уже нет.", true)
			return
		}
		ctrl.Editor().Check(arg, name)
		sess.awaitTypeID = arg
		b.answerCallback(cb, "", false)
		b.showForm(chatID)
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Введите сумму для «%s»:", name)))
	case "svc":
		ctrl.Store().SetServices(form.Toggle(snap.Services, arg))
		b.answerCallback(cb, "", false)
		b.showForm(chatID)
	case "time":
		ctrl.Store().SetTime(form.ToggleExclusive(snap.Time, arg))
		b.answerCallback(cb, "", false)
		b.showForm(chatID)
	case "gender":
		ctrl.Store().SetGender(form.Gender(arg))
		b.answerCallback(cb, "", false)
		b.showForm(chatID)
	case "first":
		ctrl.Store().SetIsFirst(!snap.IsFirst)
		b.answerCallback(cb, "", false)
		b.showForm(chatID)
	case "submit":
		b.answerCallback(cb, "", false)
		b.submit(ctx, chatID)
	case "cancel":
		delete(b.sessions, chatID)
		b.answerCallback(cb, "Черновик отменён.", false)
	default:
		b.answerCallback(cb, "", false)
	}
}

func (b *Bot) showForm(chatID int64) {
	sess, ok := b.sessions[chatID]
	if !ok {
		return
	}
	text := renderForm(sess.ctrl)
	kb := formKeyboard(sess.ctrl)

	if sess.formMsgID == 0 {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = kb
		sent, err := b.api.Send(msg)
		if err != nil {
			b.log.Error("send form failed", "err", err)
			return
		}
		sess.formMsgID = sent.MessageID
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, sess.formMsgID, text)
	edit.ReplyMarkup = &kb
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("edit form failed", "err", err)
	}
}

func renderForm(ctrl *form.Controller) string {
	snap := ctrl.Store().Get()

	var sb strings.Builder
	if ctrl.State() == form.StateEdit {
		fmt.Fprintf(&sb, "Редактирование записи #%s\n", snap.ID)
	} else {
		sb.WriteString("Новая продажа\n")
	}

	fmt.Fprintf(&sb, "Дата: %s", orDash(snap.Date))
	if snap.Time != "" {
		fmt.Fprintf(&sb, " %s", snap.Time)
	}
	sb.WriteString("\n")

	gender := "М"
	if snap.Gender == form.GenderFemale {
		gender = "Ж"
	}
	fmt.Fprintf(&sb, "Пол: %s, первый визит: %s\n", gender, yesNo(snap.IsFirst))

	if len(snap.Payments) == 0 {
		sb.WriteString("Оплаты: не выбраны\n")
	} else {
		sb.WriteString("Оплаты:\n")
		for _, p := range snap.Payments {
			fmt.Fprintf(&sb, "  %s — %s\n", p.Name, orDash(p.Amount))
		}
	}
	fmt.Fprintf(&sb, "Итого: %s\n", orDash(snap.Amount))

	if len(snap.Services) > 0 {
		names := make([]string, 0, len(snap.Services))
		byID := make(map[string]string, len(ctrl.ServiceTypes()))
		for _, st := range ctrl.ServiceTypes() {
			byID[st.ID] = st.Name
		}
		for _, id := range snap.Services {
			if name := byID[id]; name != "" {
				names = append(names, name)
			}
		}
		fmt.Fprintf(&sb, "Услуги: %s\n", strings.Join(names, ", "))
	}
	if snap.Description != "" {
		fmt.Fprintf(&sb, "Комментарий: %s\n", snap.Description)
	}
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}

func (b *Bot) sendTodayList(ctx context.Context, chatID int64) {
	now := time.Now().In(b.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, b.loc)
	to := from.AddDate(0, 0, 1)

	list, err := b.sales.ListByPeriod(ctx, from, to)
	if err != nil {
		b.log.Error("list sales failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "⚠️ Не удалось получить список продаж."))
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Сегодня продаж ещё нет."))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Продажи за %s:\n", from.Format("02.01.2006"))
	var total int64
	for _, s := range list {
		when := "без времени"
		if s.Date != nil {
			when = s.Date.In(b.loc).Format("15:04")
		}
		fmt.Fprintf(&sb, "#%d %s — %d\n", s.ID, when, s.Amount)
		total += s.Amount
	}
	fmt.Fprintf(&sb, "Итого: %d", total)
	b.send(tgbotapi.NewMessage(chatID, sb.String()))
}
