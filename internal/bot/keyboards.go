package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kangactor123/ssalon-de-api/internal/form"
)

// formKeyboard собирает клавиатуру черновика целиком: оплаты, услуги,
// сетка времени, пол, первый визит и кнопки действий.
func formKeyboard(ctrl *form.Controller) tgbotapi.InlineKeyboardMarkup {
	snap := ctrl.Store().Get()
	var rows [][]tgbotapi.InlineKeyboardButton

	checked := make(map[string]string, len(snap.Payments))
	for _, p := range snap.Payments {
		checked[p.TypeID] = p.Amount
	}
	rows = append(rows, buttonRows(ctrl.PaymentTypes(), 2, "pay", func(item form.ReferenceItem) string {
		amount, ok := checked[item.ID]
		if !ok {
			return item.Name
		}
		if amount == "" {
			return "✅ " + item.Name
		}
		return "✅ " + item.Name + " " + amount
	})...)

	selected := make(map[string]bool, len(snap.Services))
	for _, id := range snap.Services {
		selected[id] = true
	}
	rows = append(rows, buttonRows(ctrl.ServiceTypes(), 2, "svc", func(item form.ReferenceItem) string {
		if selected[item.ID] {
			return "✅ " + item.Name
		}
		return item.Name
	})...)

	var timeRow []tgbotapi.InlineKeyboardButton
	for _, slot := range form.TimeSlots() {
		label := slot
		if slot == snap.Time {
			label = "• " + slot
		}
		timeRow = append(timeRow, tgbotapi.NewInlineKeyboardButtonData(label, "time:"+slot))
		if len(timeRow) == 4 {
			rows = append(rows, timeRow)
			timeRow = nil
		}
	}
	if len(timeRow) > 0 {
		rows = append(rows, timeRow)
	}

	male, female := "М", "Ж"
	if snap.Gender == form.GenderFemale {
		female = "• Ж"
	} else {
		male = "• М"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(male, "gender:M"),
		tgbotapi.NewInlineKeyboardButtonData(female, "gender:F"),
	))

	first := "Первый визит"
	if snap.IsFirst {
		first = "✅ Первый визит"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(first, "first"),
	))

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💾 Сохранить", "submit"),
		tgbotapi.NewInlineKeyboardButtonData("✖ Отмена", "cancel"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buttonRows(items []form.ReferenceItem, perRow int, prefix string,
	label func(form.ReferenceItem) string) [][]tgbotapi.InlineKeyboardButton {

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, item := range items {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label(item), prefix+":"+item.ID))
		if len(row) == perRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
