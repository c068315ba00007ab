// Package metrics exposes the Prometheus instruments served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestDuration *prometheus.HistogramVec

	InvoicesCreated        prometheus.Counter
	InvoicesDuplicated     prometheus.Counter
	PDFsRendered           prometheus.Counter
	OverdueReconciliations prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "invoicegen",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		InvoicesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicegen",
			Name:      "invoices_created_total",
			Help:      "Invoices created, duplicates included.",
		}),
		InvoicesDuplicated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicegen",
			Name:      "invoices_duplicated_total",
			Help:      "Invoices created by duplication.",
		}),
		PDFsRendered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicegen",
			Name:      "pdfs_rendered_total",
			Help:      "Invoice PDF documents generated.",
		}),
		OverdueReconciliations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicegen",
			Name:      "overdue_reconciliations_total",
			Help:      "Stored statuses flipped to overdue by reconciliation.",
		}),
	}
}
