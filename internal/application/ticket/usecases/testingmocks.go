package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/logger"
)

type mockTicketRepository struct {
	mock.Mock
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTicketRepository) GetByTicketID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *mockTicketRepository) GetByTicketIDs(ctx context.Context, ticketIDs []string) ([]*ticket.Ticket, error) {
	args := m.Called(ctx, ticketIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ticket.Ticket), args.Error(1)
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ticket.Ticket), args.Get(1).(int64), args.Error(2)
}

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Warn(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Fatal(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) With(keysAndValues ...interface{}) logger.Interface {
	args := m.Called(keysAndValues)
	if args.Get(0) == nil {
		return m
	}
	return args.Get(0).(logger.Interface)
}

func (m *mockLogger) Named(name string) logger.Interface {
	args := m.Called(name)
	if args.Get(0) == nil {
		return m
	}
	return args.Get(0).(logger.Interface)
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func quietLogger() *mockLogger {
	l := new(mockLogger)
	l.On("Debugw", mock.Anything, mock.Anything).Maybe()
	l.On("Infow", mock.Anything, mock.Anything).Maybe()
	l.On("Warnw", mock.Anything, mock.Anything).Maybe()
	l.On("Errorw", mock.Anything, mock.Anything).Maybe()
	return l
}

// fakeTxRunner passes the callback straight through and counts invocations.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}
