package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ssalon_sales_created_total",
		Help: "Sales created via API or bot.",
	})

	SalesUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ssalon_sales_updated_total",
		Help: "Sales updated via API or bot.",
	})

	ValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ssalon_sale_validation_failures_total",
		Help: "Sale submissions rejected by validation.",
	})
)
