package sales

import "time"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Payment — доля продажи, оплаченная конкретным типом оплаты.
// Position хранит порядок, в котором типы отмечали в форме.
type Payment struct {
	TypeID   int64
	Name     string
	Amount   int64
	Position int
}

type Sale struct {
	ID          int64
	Date        *time.Time // nil — запись без даты
	Amount      int64
	Gender      Gender
	IsFirst     bool
	Description string
	Payments    []Payment
	Services    []int64
	CreatedAt   time.Time
}
