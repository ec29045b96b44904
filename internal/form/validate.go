package form

import "strconv"

// Тексты ошибок валидации, показываются пользователю как есть.
const (
	MsgAmountRequired  = "Введите сумму через тип оплаты."
	MsgPaymentRequired = "Выберите тип оплаты."
	MsgTimeRequired    = "Если указана дата, выберите и время."
	MsgDateRequired    = "Если выбрано время, укажите и дату."
)

type Result struct {
	OK      bool
	Message string
}

// Validate прогоняет снапшот через упорядоченные правила и
// останавливается на первом нарушении. Дата и время валидны либо
// оба пустые, либо оба заданные.
func Validate(s Snapshot) Result {
	if s.Amount == "" {
		return Result{Message: MsgAmountRequired}
	}
	if n, err := strconv.ParseInt(s.Amount, 10, 64); err == nil && n == 0 {
		return Result{Message: MsgAmountRequired}
	}
	if len(s.Payments) == 0 {
		return Result{Message: MsgPaymentRequired}
	}
	if s.Date != "" && s.Time == "" {
		return Result{Message: MsgTimeRequired}
	}
	if s.Time != "" && s.Date == "" {
		return Result{Message: MsgDateRequired}
	}
	return Result{OK: true}
}
