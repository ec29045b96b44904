package form

import (
	"strconv"
	"strings"
)

// TotalAmount считает производную сумму по списку оплат.
// Пустой список даёт "" (ничего не введено), не "0": валидатор
// различает «нет оплат» и настоящий ноль.
func TotalAmount(payments []PaymentAllocation) string {
	if len(payments) == 0 {
		return ""
	}
	var sum int64
	for _, p := range payments {
		n, err := strconv.ParseInt(strings.TrimSpace(p.Amount), 10, 64)
		if err != nil {
			// "" и мусор считаем нулём; мусор сюда обычно не попадает,
			// SetAmount его отбрасывает
			continue
		}
		sum += n
	}
	return strconv.FormatInt(sum, 10)
}
