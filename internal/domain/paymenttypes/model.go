package paymenttypes

import "time"

type PaymentType struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
