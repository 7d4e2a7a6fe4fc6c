package accounts

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type loggingService struct {
	logger *zap.Logger
	next   Service
}

func NewLoggingService(logger *zap.Logger, next Service) Service {
	return &loggingService{logger: logger, next: next}
}

func (s *loggingService) RegisterAccount(ctx context.Context, r registerAccountRequest) (id ID, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "register", begin, err, zap.String("username", r.Login.Username), zap.Int64("id", int64(id)))
	}(time.Now())
	return s.next.RegisterAccount(ctx, r)
}

func (s *loggingService) Login(ctx context.Context, r loginRequest) (acc *Account, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "login", begin, err, zap.String("username", r.Username))
	}(time.Now())
	return s.next.Login(ctx, r)
}

func (s *loggingService) log(ctx context.Context, method string, begin time.Time, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("request_id", RequestID(ctx)),
		zap.String("method", method),
		zap.String("outcome", outcome(err)),
		zap.Duration("took", time.Since(begin)),
	)

	if outcome(err) == "error" {
		s.logger.Error("account call failed", append(fields, zap.Error(err))...)
		return
	}
	s.logger.Info("account call", fields...)
}
