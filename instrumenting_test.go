package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ValidationErrors{{Field: "user.age"}}, "invalid_input"},
		{ErrExistingUsername, "conflict"},
		{&NotFoundError{Username: "u"}, "not_found"},
		{errors.New("db down"), "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, outcome(tt.err))
	}
}

func TestInstrumentingService(t *testing.T) {
	ctx := context.Background()
	m := NewServiceMetrics(prometheus.NewRegistry())
	svc := NewInstrumentingService(m, NewService(NewAccountRepository()))

	_, _ = svc.RegisterAccount(ctx, newRegisterRequest("Alice123"))
	_, _ = svc.RegisterAccount(ctx, newRegisterRequest("Alice123"))
	_, _ = svc.Login(ctx, loginRequest{"Alice123", validPassword})
	_, _ = svc.Login(ctx, loginRequest{"Nobody", validPassword})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("register", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("register", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("login", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("login", "not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.latency))
}

func TestLoggingService(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewLoggingService(zap.New(core), NewService(NewAccountRepository()))

	id, err := svc.RegisterAccount(ctx, newRegisterRequest("Alice123"))
	assert.NoError(t, err)

	entries := logs.FilterMessage("account call").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "register", fields["method"])
		assert.Equal(t, "ok", fields["outcome"])
		assert.Equal(t, "Alice123", fields["username"])
		assert.Equal(t, int64(id), fields["id"])
	}

	failing := NewLoggingService(zap.New(core), NewService(&failingRepository{err: errors.New("db down")}))
	_, _ = failing.Login(ctx, loginRequest{"Alice123", validPassword})

	entries = logs.FilterMessage("account call failed").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "login", entries[0].ContextMap()["method"])
	}
}
