// Package sender собирает и запускает отправителя писем-напоминаний.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/task-tracker/internal/config"
	"github.com/magabrotheeeer/task-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/task-tracker/internal/lib/smtp"
	reminderservice "github.com/magabrotheeeer/task-tracker/internal/services/reminder"
)

// App представляет приложение отправителя напоминаний.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *reminderservice.SenderService
	logger        *slog.Logger
}

// New создает новый экземпляр приложения отправителя.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := reminderservice.NewSenderService(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run подписывается на очередь напоминаний и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, rabbitmq.ReminderQueue, a.senderService.SendDueReminder)
	if err != nil {
		a.logger.Error("failed to start reminder queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("reminder sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
