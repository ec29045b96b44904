package form

import (
	"context"
	"errors"
	"time"
)

type State string

const (
	StateCreate     State = "create"
	StateLoading    State = "loading"
	StateEdit       State = "edit"
	StateSubmitting State = "submitting"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ErrSubmitInFlight — повторный сабмит, пока предыдущий не завершился.
var ErrSubmitInFlight = errors.New("запись уже отправляется")

// ReferenceItem — элемент справочника (тип услуги или тип оплаты).
type ReferenceItem struct {
	ID   string
	Name string
}

// Payload — нормализованная запись для внешнего create/update.
type Payload struct {
	Date        string              `json:"date"`
	Amount      string              `json:"amount"`
	Services    []string            `json:"services"`
	Description string              `json:"description"`
	Gender      Gender              `json:"gender"`
	Payments    []PaymentAllocation `json:"payments"`
	IsFirst     bool                `json:"isFirst"`
}

// Collaborators — всё внешнее, что нужно форме. Загрузки асинхронные:
// контроллер обязан жить и с пустыми справочниками.
type Collaborators interface {
	LoadServiceTypes(ctx context.Context) ([]ReferenceItem, error)
	LoadPaymentTypes(ctx context.Context) ([]ReferenceItem, error)
	LoadRecord(ctx context.Context, id string) (*Snapshot, error)
	SubmitCreate(ctx context.Context, p Payload) error
	SubmitUpdate(ctx context.Context, id string, p Payload) error
	CurrentSelectedDate() string
	NavigateToListing()
	NotifyUser(message string, severity Severity)
}

// Controller ведёт жизненный цикл одного черновика: create против
// edit, посев стора из справочников или загруженной записи, сабмит
// и сброс. Однопоточный: все события приходят из одного цикла.
type Controller struct {
	collab Collaborators
	store  *Store
	editor *AllocationEditor

	state  State
	editID string

	serviceTypes []ReferenceItem
	paymentTypes []ReferenceItem
	seeded       bool
}

// NewController поднимает форму. Пустой editID — режим создания
// с дефолтами, непустой — режим редактирования (Loading до прихода
// записи).
func NewController(collab Collaborators, editID string) *Controller {
	c := &Controller{
		collab: collab,
		store:  NewStore(Defaults(collab.CurrentSelectedDate())),
		editID: editID,
		state:  StateCreate,
	}
	c.editor = NewAllocationEditor(c.store)
	if editID != "" {
		c.state = StateLoading
	}
	return c
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Store() *Store { return c.store }

func (c *Controller) Editor() *AllocationEditor { return c.editor }

func (c *Controller) ServiceTypes() []ReferenceItem { return c.serviceTypes }

func (c *Controller) PaymentTypes() []ReferenceItem { return c.paymentTypes }

// Start подтягивает справочники и, в режиме редактирования, саму
// запись. Неудачная загрузка справочника деградирует до пустого
// списка: форма живёт, просто с пустыми секциями выбора.
func (c *Controller) Start(ctx context.Context) {
	if items, err := c.collab.LoadServiceTypes(ctx); err == nil {
		c.ServiceTypesLoaded(items)
	}
	if items, err := c.collab.LoadPaymentTypes(ctx); err == nil {
		c.PaymentTypesLoaded(items)
	}
	if c.editID == "" {
		return
	}
	rec, err := c.collab.LoadRecord(ctx, c.editID)
	if err != nil || rec == nil {
		c.collab.NotifyUser("Не удалось загрузить запись.", SeverityError)
		return
	}
	c.RecordLoaded(*rec)
}

// ServiceTypesLoaded принимает (пере)загруженный справочник услуг.
func (c *Controller) ServiceTypesLoaded(items []ReferenceItem) {
	c.serviceTypes = items
}

// PaymentTypesLoaded принимает справочник типов оплаты. На переходе
// пустой → непустой в режиме создания с ещё пустыми оплатами один раз
// засевается первая оплата — удобный дефолт первого открытия. Флаг
// seeded не даёт эффекту срабатывать на каждой перезагрузке списка.
func (c *Controller) PaymentTypesLoaded(items []ReferenceItem) {
	wasEmpty := len(c.paymentTypes) == 0
	c.paymentTypes = items
	if !wasEmpty || len(items) == 0 || c.seeded {
		return
	}
	if c.state != StateCreate || len(c.store.Get().Payments) != 0 {
		return
	}
	c.seeded = true
	c.editor.Check(items[0].ID, items[0].Name)
}

// RecordLoaded полностью перезаписывает стор загруженной записью и
// переводит форму в Edit. Сумма берётся из записи как есть и не
// пересчитывается, пока оплаты не начнут править.
func (c *Controller) RecordLoaded(rec Snapshot) {
	c.store.Reset(rec)
	c.state = StateEdit
}

// Submit валидирует снапшот и отдаёт нормализованную запись наружу.
// Ошибка валидации и ошибка отправки обе не фатальны: стор остаётся
// нетронутым, пользователь может поправить и повторить.
func (c *Controller) Submit(ctx context.Context) error {
	if c.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	snap := c.store.Get()
	if res := Validate(snap); !res.OK {
		c.collab.NotifyUser(res.Message, SeverityError)
		return nil
	}

	prev := c.state
	c.state = StateSubmitting

	payload := c.normalize(snap)
	var err error
	if prev == StateEdit {
		err = c.collab.SubmitUpdate(ctx, snap.ID, payload)
	} else {
		err = c.collab.SubmitCreate(ctx, payload)
	}
	if err != nil {
		c.state = prev
		c.collab.NotifyUser("Не удалось сохранить запись. Попробуйте ещё раз.", SeverityError)
		return err
	}

	// успех: свежие дефолты создания и возврат к списку
	c.state = StateCreate
	c.editID = ""
	c.seeded = false
	c.store.Reset(Defaults(c.collab.CurrentSelectedDate()))
	c.collab.NavigateToListing()
	return nil
}

// normalize отбрасывает выбранные услуги, которых уже нет в живом
// справочнике, и склеивает дату со временем в один ISO-штамп.
func (c *Controller) normalize(snap Snapshot) Payload {
	live := make(map[string]bool, len(c.serviceTypes))
	for _, st := range c.serviceTypes {
		live[st.ID] = true
	}
	services := make([]string, 0, len(snap.Services))
	for _, id := range snap.Services {
		if live[id] {
			services = append(services, id)
		}
	}

	date := ""
	if snap.Date != "" && snap.Time != "" {
		if t, err := time.Parse("2006-01-02 15:04", snap.Date+" "+snap.Time); err == nil {
			date = t.Format(time.RFC3339)
		}
	}

	return Payload{
		Date:        date,
		Amount:      snap.Amount,
		Services:    services,
		Description: snap.Description,
		Gender:      snap.Gender,
		Payments:    snap.Payments,
		IsFirst:     snap.IsFirst,
	}
}
