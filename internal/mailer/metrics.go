package mailer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var emailsSent = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vitality_emails_sent_total",
	Help: "Number of score notification emails delivered.",
})
