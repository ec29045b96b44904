package form

import "errors"

// ErrNotNumeric — ввод суммы отклонён, поле осталось прежним.
// Это не сбой: вызывающий показывает предупреждение и живёт дальше.
var ErrNotNumeric = errors.New("сумма должна быть неотрицательным числом")

// AllocationEditor управляет списком оплат черновика. Любая его
// операция пересчитывает производную сумму через Store.
type AllocationEditor struct {
	store *Store
}

func NewAllocationEditor(store *Store) *AllocationEditor {
	return &AllocationEditor{store: store}
}

// Check добавляет оплату выбранного типа с пустой суммой в конец
// списка. Повторный Check того же типа — no-op: порядок «кто первым
// отмечен, тот первым и остаётся».
func (e *AllocationEditor) Check(typeID, name string) {
	payments := e.store.Get().Payments
	for _, p := range payments {
		if p.TypeID == typeID {
			return
		}
	}
	e.store.setPayments(append(payments, PaymentAllocation{TypeID: typeID, Name: name, Amount: ""}))
}

// Uncheck убирает оплату типа; остальные сохраняют порядок.
// Снятие последней оплаты схлопывает сумму обратно в "".
func (e *AllocationEditor) Uncheck(typeID string) {
	payments := e.store.Get().Payments
	out := make([]PaymentAllocation, 0, len(payments))
	for _, p := range payments {
		if p.TypeID != typeID {
			out = append(out, p)
		}
	}
	if len(out) == len(payments) {
		return
	}
	e.store.setPayments(out)
}

// SetAmount вводит сумму оплаты. Принимаются только цифры или пустая
// строка; всё остальное отклоняется с ErrNotNumeric без изменения поля.
func (e *AllocationEditor) SetAmount(typeID, raw string) error {
	if !isDigits(raw) {
		return ErrNotNumeric
	}
	payments := e.store.Get().Payments
	for i := range payments {
		if payments[i].TypeID == typeID {
			payments[i].Amount = raw
			e.store.setPayments(payments)
			return nil
		}
	}
	// типа нет в списке — тоже no-op
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
