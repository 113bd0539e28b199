// Package cron runs the session reminder pipeline: a periodic sweep enqueues
// a reminder task for every session happening tomorrow, and an asynq worker
// delivers them.
package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"unityconsult/config"
	bookingRepo "unityconsult/database/repository/booking"
	"unityconsult/models"
	"unityconsult/services/notification"
	"unityconsult/utils"
)

const TypeReminderSend = "reminder:send"

// sweepInterval controls how often upcoming sessions are scanned.
const sweepInterval = time.Hour

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker starts the asynq worker and the sweep loop in the
// background.
func InitReminderWorker(notifSvc notification.NotificationService, bookings bookingRepo.BookingRepository) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(redisOpts(), asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc))

	go func() {
		logger.Info("Starting reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("Reminder worker stopped", zap.Error(err))
		}
	}()

	go sweepLoop(bookings)
}

// sweepLoop enqueues one reminder task per booking happening tomorrow. Task
// ids are derived from the booking id so re-sweeping never duplicates a
// reminder.
func sweepLoop(bookings bookingRepo.BookingRepository) {
	logger := utils.GetLogger()
	client := asynq.NewClient(redisOpts())
	defer client.Close()

	for {
		tomorrow := time.Now().AddDate(0, 0, 1).Format(models.DateLayout)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		upcoming, err := bookings.ListByDate(ctx, tomorrow)
		cancel()
		if err != nil {
			logger.Error("Reminder sweep failed", zap.Error(err))
			time.Sleep(sweepInterval)
			continue
		}

		for _, b := range upcoming {
			payload, err := json.Marshal(models.ReminderPayload{
				BookingID:   b.ID,
				ClientID:    b.ClientID,
				CounselorID: b.CounselorID,
				Date:        b.Date,
				StartTime:   b.StartTime,
			})
			if err != nil {
				logger.Error("Failed to marshal reminder payload", zap.Error(err))
				continue
			}

			task := asynq.NewTask(TypeReminderSend, payload)
			_, err = client.Enqueue(task,
				asynq.TaskID("reminder:"+b.ID),
				asynq.Retention(48*time.Hour),
			)
			if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
				logger.Error("Failed to enqueue reminder",
					zap.String("bookingId", b.ID), zap.Error(err))
			}
		}

		time.Sleep(sweepInterval)
	}
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid reminder payload: %w", err)
		}

		msg := fmt.Sprintf("Reminder: you have a counseling session on %s at %s.", p.Date, p.StartTime)
		data := map[string]string{
			"bookingId": p.BookingID,
			"date":      p.Date,
			"startTime": p.StartTime,
		}

		if err := notifSvc.Notify(ctx, p.ClientID, models.RoleClient, notification.TypeSessionReminder, msg, data); err != nil {
			return err
		}
		return notifSvc.Notify(ctx, p.CounselorID, models.RoleCounselor, notification.TypeSessionReminder, msg, data)
	}
}
