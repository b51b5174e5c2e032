package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOutcome(t *testing.T) {
	m := New()

	m.RecordOutcome(OpLogin, OutcomeInvalidCredentials)
	m.RecordOutcome(OpLogin, OutcomeInvalidCredentials)
	m.RecordOutcome(OpSignup, OutcomeCreated)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthRequests.WithLabelValues(OpLogin, OutcomeInvalidCredentials)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthRequests.WithLabelValues(OpSignup, OutcomeCreated)))
}

func TestObserveHash(t *testing.T) {
	m := New()

	m.ObserveHash(OpHash, 30*time.Millisecond)
	m.ObserveHash(OpVerify, 10*time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.HashDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordOutcome(OpMe, OutcomeConfirmed)
	m.ObserveHash(OpVerify, time.Second)
}

func TestRegistryGathers(t *testing.T) {
	m := New()
	m.RecordOutcome(OpLogout, OutcomeLoggedOut)

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["quizauth_auth_requests_total"])
	assert.True(t, names["go_goroutines"])
}
