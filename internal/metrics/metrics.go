// ABOUTME: Prometheus metrics for commerce-gateway
// ABOUTME: Counters for tool calls, logins, and store retries

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ToolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commerce_tool_calls_total",
		Help: "Total number of tool calls by tool name and outcome.",
	},
		[]string{"tool", "outcome"},
	)

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commerce_logins_total",
		Help: "Total number of login attempts by outcome.",
	},
		[]string{"outcome"},
	)

	StoreRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "commerce_store_retries_total",
		Help: "Total number of retried store reads after transient failures.",
	})
)
