package form

// Store — единственный источник правды для одного черновика.
// Каждая мутация синхронно дёргает подписчика; Reset подменяет
// снапшот целиком, промежуточных состояний снаружи не видно.
type Store struct {
	snap     Snapshot
	onChange func(Snapshot)
}

func NewStore(defaults Snapshot) *Store {
	return &Store{snap: defaults.clone()}
}

// OnChange регистрирует подписчика на мутации. Подписчик один:
// у формы ровно один наблюдатель (её собственный UI).
func (s *Store) OnChange(fn func(Snapshot)) {
	s.onChange = fn
}

// Get возвращает копию текущего снапшота.
func (s *Store) Get() Snapshot {
	return s.snap.clone()
}

// Reset атомарно заменяет весь снапшот.
func (s *Store) Reset(next Snapshot) {
	s.snap = next.clone()
	s.notify()
}

func (s *Store) SetDate(date string) {
	s.snap.Date = date
	s.notify()
}

func (s *Store) SetTime(t string) {
	s.snap.Time = t
	s.notify()
}

func (s *Store) SetGender(g Gender) {
	s.snap.Gender = g
	s.notify()
}

func (s *Store) SetIsFirst(v bool) {
	s.snap.IsFirst = v
	s.notify()
}

func (s *Store) SetDescription(text string) {
	s.snap.Description = text
	s.notify()
}

func (s *Store) SetServices(ids []string) {
	s.snap.Services = make([]string, len(ids))
	copy(s.snap.Services, ids)
	s.notify()
}

// setPayments — только для AllocationEditor: список оплат меняется
// через него, чтобы производная сумма пересчитывалась всегда.
func (s *Store) setPayments(payments []PaymentAllocation) {
	s.snap.Payments = payments
	s.snap.Amount = TotalAmount(payments)
	s.notify()
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.Get())
	}
}
