package statservice

import (
	"context"

	"github.com/blogist/blogapi/internal/blogservice"
	"github.com/blogist/blogapi/internal/common"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
)

type MockBlogLister struct {
	mock.Mock
}

func (m *MockBlogLister) ListAll(ctx context.Context) ([]blogservice.Blog, error) {
	args := m.Called(ctx)
	blogs, _ := args.Get(0).([]blogservice.Blog)
	return blogs, args.Error(1)
}

type MockMessageConsumer struct {
	msgs chan amqp.Delivery
	mock.Mock
}

func (m *MockMessageConsumer) Subscribe(key common.BindingKey, exchange common.Exchange) (<-chan amqp.Delivery, error) {
	args := m.Called(key, exchange)
	return m.msgs, args.Error(0)
}

type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Info(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.Called(msg, args)
}
