package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kangactor123/ssalon-de-api/internal/domain/sales"
	"github.com/kangactor123/ssalon-de-api/internal/form"
	"github.com/kangactor123/ssalon-de-api/internal/infra/metrics"
)

// chatCollab — реализация form.Collaborators поверх репозиториев.
// Одна на сессию чата: уведомления и переходы уходят в этот чат.
type chatCollab struct {
	bot    *Bot
	chatID int64
}

func (c *chatCollab) LoadServiceTypes(ctx context.Context) ([]form.ReferenceItem, error) {
	list, err := c.bot.services.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]form.ReferenceItem, 0, len(list))
	for _, st := range list {
		items = append(items, form.ReferenceItem{ID: strconv.FormatInt(st.ID, 10), Name: st.Name})
	}
	return items, nil
}

func (c *chatCollab) LoadPaymentTypes(ctx context.Context) ([]form.ReferenceItem, error) {
	list, err := c.bot.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]form.ReferenceItem, 0, len(list))
	for _, pt := range list {
		items = append(items, form.ReferenceItem{ID: strconv.FormatInt(pt.ID, 10), Name: pt.Name})
	}
	return items, nil
}

func (c *chatCollab) LoadRecord(ctx context.Context, id string) (*form.Snapshot, error) {
	saleID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, err
	}
	s, err := c.bot.sales.GetByID(ctx, saleID)
	if err != nil || s == nil {
		return nil, err
	}
	snap := saleToSnapshot(s, c.bot.loc)
	return &snap, nil
}

func (c *chatCollab) SubmitCreate(ctx context.Context, p form.Payload) error {
	s, err := payloadToSale(p)
	if err != nil {
		return err
	}
	if _, err := c.bot.sales.Create(ctx, s); err != nil {
		return err
	}
	metrics.SalesCreated.Inc()
	c.bot.log.Info("sale created", "id", s.ID, "amount", s.Amount, "chat_id", c.chatID)
	return nil
}

func (c *chatCollab) SubmitUpdate(ctx context.Context, id string, p form.Payload) error {
	saleID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return err
	}
	s, err := payloadToSale(p)
	if err != nil {
		return err
	}
	s.ID = saleID
	updated, err := c.bot.sales.Update(ctx, s)
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("sale %d not found", saleID)
	}
	metrics.SalesUpdated.Inc()
	c.bot.log.Info("sale updated", "id", saleID, "chat_id", c.chatID)
	return nil
}

func (c *chatCollab) CurrentSelectedDate() string {
	return time.Now().In(c.bot.loc).Format("2006-01-02")
}

func (c *chatCollab) NavigateToListing() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c.bot.sendTodayList(ctx, c.chatID)
}

func (c *chatCollab) NotifyUser(message string, severity form.Severity) {
	if severity == form.SeverityWarning || severity == form.SeverityError {
		message = "⚠️ " + message
	}
	c.bot.send(tgbotapi.NewMessage(c.chatID, message))
}

func saleToSnapshot(s *sales.Sale, loc *time.Location) form.Snapshot {
	snap := form.Snapshot{
		ID:          strconv.FormatInt(s.ID, 10),
		Amount:      strconv.FormatInt(s.Amount, 10),
		Gender:      form.Gender(s.Gender),
		IsFirst:     s.IsFirst,
		Description: s.Description,
		Payments:    make([]form.PaymentAllocation, 0, len(s.Payments)),
		Services:    make([]string, 0, len(s.Services)),
	}
	if s.Date != nil {
		local := s.Date.In(loc)
		snap.Date = local.Format("2006-01-02")
		snap.Time = local.Format("15:04")
	}
	for _, p := range s.Payments {
		snap.Payments = append(snap.Payments, form.PaymentAllocation{
			TypeID: strconv.FormatInt(p.TypeID, 10),
			Name:   p.Name,
			Amount: strconv.FormatInt(p.Amount, 10),
		})
	}
	for _, svcID := range s.Services {
		snap.Services = append(snap.Services, strconv.FormatInt(svcID, 10))
	}
	return snap
}

func payloadToSale(p form.Payload) (*sales.Sale, error) {
	s := &sales.Sale{
		Gender:      sales.Gender(p.Gender),
		IsFirst:     p.IsFirst,
		Description: p.Description,
		Payments:    make([]sales.Payment, 0, len(p.Payments)),
		Services:    make([]int64, 0, len(p.Services)),
	}
	if p.Date != "" {
		t, err := time.Parse(time.RFC3339, p.Date)
		if err != nil {
			return nil, err
		}
		s.Date = &t
	}
	for i, pay := range p.Payments {
		typeID, err := strconv.ParseInt(pay.TypeID, 10, 64)
		if err != nil {
			return nil, err
		}
		var amount int64
		if pay.Amount != "" {
			amount, err = strconv.ParseInt(pay.Amount, 10, 64)
			if err != nil {
				return nil, err
			}
		}
		s.Payments = append(s.Payments, sales.Payment{TypeID: typeID, Name: pay.Name, Amount: amount, Position: i})
		s.Amount += amount
	}
	for _, raw := range p.Services {
		svcID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		s.Services = append(s.Services, svcID)
	}
	return s, nil
}
