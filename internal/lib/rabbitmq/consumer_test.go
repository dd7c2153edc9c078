package rabbitmq

import (
	"errors"
	"fmt"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAcknowledger) Ack(_ uint64, _ bool) error { a.acked = true; return nil }
func (a *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}
func (a *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func TestProcessDelivery(t *testing.T) {
	tests := []struct {
		name        string
		handlerErr  error
		wantAck     bool
		wantNack    bool
		wantRequeue bool
	}{
		{
			name:    "успешная обработка подтверждается ack",
			wantAck: true,
		},
		{
			name:        "временная ошибка возвращает сообщение в очередь",
			handlerErr:  errors.New("smtp connect refused"),
			wantNack:    true,
			wantRequeue: true,
		},
		{
			name:        "неразбираемое сообщение отбрасывается без requeue",
			handlerErr:  fmt.Errorf("%w: unexpected end of JSON input", ErrMalformedMessage),
			wantNack:    true,
			wantRequeue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAcknowledger{}
			delivery := amqp.Delivery{Acknowledger: ack, Body: []byte("payload")}

			processDelivery(delivery, func([]byte) error { return tt.handlerErr })

			assert.Equal(t, tt.wantAck, ack.acked)
			assert.Equal(t, tt.wantNack, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeue)
		})
	}
}
