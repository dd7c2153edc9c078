// Package reminder содержит бизнес-логику напоминаний о приближающихся
// сроках задач: планировщик находит задачи и публикует сообщения в очередь,
// отправитель превращает сообщения в письма.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/task-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// TaskRepository определяет выборку задач для напоминаний.
type TaskRepository interface {
	// FindTasksDueWithin возвращает незавершённые задачи со сроком в окне.
	FindTasksDueWithin(ctx context.Context, within time.Duration) ([]*models.ReminderInfo, error)
}

// SchedulerService периодически публикует напоминания в очередь.
type SchedulerService struct {
	repo      TaskRepository
	log       *slog.Logger
	every     time.Duration
	beforeDue time.Duration
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo TaskRepository, log *slog.Logger, every, beforeDue time.Duration) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		log:       log,
		every:     every,
		beforeDue: beforeDue,
	}
}

// Run выполняет один проход сразу, затем по тикеру, пока не отменен контекст.
func (s *SchedulerService) Run(ctx context.Context, channel *amqp.Channel) {
	s.publishDueReminders(ctx, channel)

	ticker := time.NewTicker(s.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.publishDueReminders(ctx, channel)
		}
	}
}

func (s *SchedulerService) publishDueReminders(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting to find tasks due soon")
	reminders, err := s.repo.FindTasksDueWithin(ctx, s.beforeDue)
	if err != nil {
		s.log.Error("failed to find tasks due soon", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no tasks due soon found")
		return
	}
	s.log.Info("found tasks due soon", slog.Int("count", len(reminders)))
	for _, info := range reminders {
		err = rabbitmq.PublishMessage(channel, rabbitmq.ReminderExchange, rabbitmq.ReminderRoutingKey, info)
		if err != nil {
			s.log.Error("failed to publish reminder", sl.Err(err))
		}
	}
}
