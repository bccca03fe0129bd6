package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/NeuraX-HQ/neurax-web-app/models"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

type ReminderKind string

const (
	ReminderBreakfast ReminderKind = "meal_breakfast"
	ReminderLunch     ReminderKind = "meal_lunch"
	ReminderDinner    ReminderKind = "meal_dinner"
	ReminderStreak    ReminderKind = "streak_alert"
	ReminderChallenge ReminderKind = "challenge_update"
	ReminderTip       ReminderKind = "daily_tip"
)

type ReminderJob struct {
	DeviceID string       `json:"deviceId"`
	Kind     ReminderKind `json:"kind"`
	At       string       `json:"at,omitempty"`
	Message  string       `json:"message"`
}

type ReminderReport struct {
	Sent    int           `json:"sent"`
	Failed  int           `json:"failed"`
	Workers int           `json:"workers"`
	Elapsed time.Duration `json:"elapsedNs"`
}

// Notifier delivers one reminder.
type Notifier interface {
	Notify(ctx context.Context, job ReminderJob) error
}

// LogNotifier records reminders in the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, job ReminderJob) error {
	utils.Logger.Info("reminder_sent",
		zap.String("device_id", job.DeviceID),
		zap.String("kind", string(job.Kind)),
		zap.String("at", job.At),
	)
	return nil
}

// ReminderInput is what the planner needs to know about one device.
type ReminderInput struct {
	DeviceID      string
	Profile       models.UserProfile
	LoggedToday   bool
	CurrentStreak int
	Challenges    []models.ChallengeView
}

// PlanReminders expands enabled preferences into concrete jobs.
func PlanReminders(in ReminderInput) []ReminderJob {
	prefs := in.Profile.NotificationPreferences
	times := in.Profile.ReminderTimes
	jobs := make([]ReminderJob, 0, 6)

	if prefs.MealReminders {
		jobs = append(jobs,
			ReminderJob{DeviceID: in.DeviceID, Kind: ReminderBreakfast, At: times.Morning, Message: CoachMessages["morning"][0]},
			ReminderJob{DeviceID: in.DeviceID, Kind: ReminderLunch, At: times.Lunch, Message: "Lunch time! Log your meal to keep your macros on track."},
			ReminderJob{DeviceID: in.DeviceID, Kind: ReminderDinner, At: times.Dinner, Message: "Dinner time! Don't forget to log it."},
		)
	}
	if prefs.StreakAlerts && in.CurrentStreak > 0 && !in.LoggedToday {
		jobs = append(jobs, ReminderJob{
			DeviceID: in.DeviceID,
			Kind:     ReminderStreak,
			At:       times.Dinner,
			Message:  fmt.Sprintf("%d-day streak at risk. %s", in.CurrentStreak, CoachMessages["encouragement"][1]),
		})
	}
	if prefs.ChallengeUpdates {
		for _, c := range in.Challenges {
			if c.UnreadCount == 0 && c.Leading {
				continue
			}
			jobs = append(jobs, ReminderJob{
				DeviceID: in.DeviceID,
				Kind:     ReminderChallenge,
				Message:  fmt.Sprintf("%s: %d days left, %d unread", c.Title, c.DaysLeft, c.UnreadCount),
			})
		}
	}
	if prefs.DailyTips {
		jobs = append(jobs, ReminderJob{
			DeviceID: in.DeviceID,
			Kind:     ReminderTip,
			At:       times.Morning,
			Message:  CoachMessages["praise"][0],
		})
	}
	return jobs
}

type ReminderService struct {
	workers  int
	notifier Notifier
}

func NewReminderService(workers int, notifier Notifier) *ReminderService {
	if workers <= 0 {
		workers = 1
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &ReminderService{workers: workers, notifier: notifier}
}

// Dispatch fans jobs out to a bounded pool of workers and waits for all of them.
func (s *ReminderService) Dispatch(ctx context.Context, jobs []ReminderJob) ReminderReport {
	start := time.Now()
	jobChan := make(chan ReminderJob, len(jobs))
	resultChan := make(chan error, len(jobs))
	var wg sync.WaitGroup

	workers := s.workers
	if workers > len(jobs) && len(jobs) > 0 {
		workers = len(jobs)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go s.worker(ctx, i, jobChan, resultChan, &wg)
	}

	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	report := ReminderReport{Workers: workers}
	for err := range resultChan {
		if err != nil {
			report.Failed++
		} else {
			report.Sent++
		}
	}
	report.Elapsed = time.Since(start)

	utils.Logger.Info("reminders_processed",
		zap.Int("success", report.Sent),
		zap.Int("errors", report.Failed),
		zap.Int("workers", workers),
	)
	return report
}

func (s *ReminderService) worker(ctx context.Context, id int, jobs <-chan ReminderJob, results chan<- error, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		if err := ctx.Err(); err != nil {
			results <- err
			continue
		}
		if err := s.notifier.Notify(ctx, job); err != nil {
			utils.Logger.Warn("reminder_failed",
				zap.Int("worker_id", id),
				zap.String("device_id", job.DeviceID),
				zap.String("kind", string(job.Kind)),
				zap.Error(err),
			)
			results <- err
			continue
		}
		utils.RemindersSent.WithLabelValues(string(job.Kind)).Inc()
		results <- nil
	}
}
