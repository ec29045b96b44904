package form

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// PaymentAllocation — одна часть оплаты через конкретный тип.
// Amount хранится строкой, как её ввёл пользователь ("" = ещё не введена).
type PaymentAllocation struct {
	TypeID string `json:"typeId"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Snapshot — черновик продажи целиком. Amount производное поле:
// всегда равно сумме по Payments, руками не редактируется.
type Snapshot struct {
	ID          string
	Date        string // YYYY-MM-DD, "" = не задана
	Time        string // HH:mm из сетки слотов, "" = не задано
	Amount      string
	Gender      Gender
	IsFirst     bool
	Description string
	Payments    []PaymentAllocation
	Services    []string
}

// Defaults — заготовка для режима создания.
func Defaults(date string) Snapshot {
	return Snapshot{
		Date:     date,
		Gender:   GenderMale,
		Payments: []PaymentAllocation{},
		Services: []string{},
	}
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Payments = make([]PaymentAllocation, len(s.Payments))
	copy(out.Payments, s.Payments)
	out.Services = make([]string, len(s.Services))
	copy(out.Services, s.Services)
	return out
}
