package servicetypes

import "time"

type ServiceType struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
