package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLedgerCounters(t *testing.T) {
	m := New()

	m.LedgerOp("deposit", "ok")
	m.LedgerOp("deposit", "ok")
	m.LedgerOp("withdraw", "insufficient_funds")
	m.ConflictRetry("savings_account")
	m.LoanTransition("active")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ledgerOps.WithLabelValues("deposit", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerOps.WithLabelValues("withdraw", "insufficient_funds")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conflictRetries.WithLabelValues("savings_account")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loanTransitions.WithLabelValues("active")))
}

func TestObserveHTTP(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/health", 200, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.LedgerOp("deposit", "ok")
		m.ConflictRetry("loan")
		m.LoanTransition("completed")
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
}
