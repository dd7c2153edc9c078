package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// ErrMalformedMessage сигнализирует, что тело сообщения не удалось разобрать.
// Такое сообщение не вернется в очередь при повторной доставке, поэтому
// обработчик оборачивает в эту ошибку только неразбираемые payload.
var ErrMalformedMessage = errors.New("malformed message")

// ConsumeMessages подписывается на очередь и обрабатывает сообщения
// переданным обработчиком. Успешная обработка подтверждается ack.
// Ошибка ErrMalformedMessage отбрасывает сообщение через nack без requeue:
// повторная доставка тех же байт дала бы ту же ошибку и заняла бы слот
// обработчика навсегда. Любая другая ошибка считается временной,
// и сообщение возвращается в очередь.
func ConsumeMessages(ctx context.Context, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumeMessages"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, 10)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(delivery amqp.Delivery) {
					defer func() { <-sem }()
					processDelivery(delivery, handler)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func processDelivery(delivery amqp.Delivery, handler func([]byte) error) {
	err := handler(delivery.Body)
	if err == nil {
		if ackErr := delivery.Ack(false); ackErr != nil {
			log.Printf("failed to ack message: %v", ackErr)
		}
		return
	}
	requeue := !errors.Is(err, ErrMalformedMessage)
	if nackErr := delivery.Nack(false, requeue); nackErr != nil {
		log.Printf("failed to nack message: %v", nackErr)
	}
}
