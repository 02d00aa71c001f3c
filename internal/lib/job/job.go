// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/go-quizbank/internal/config"
	"github.com/deppfellow/go-quizbank/internal/lib/email"
)

// Enqueuer is the producer side of asynq, satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client Enqueuer

	server *asynq.Server
	mailer ParticipantMailer
	logger *zerolog.Logger
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the largest worker share:
// out of 10 workers roughly 6 critical, 3 default, 1 low.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// InitHandlers builds the dependencies job handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

// SetMailer replaces the mailer used by the participant-joined handler.
func (j *JobService) SetMailer(m ParticipantMailer) {
	j.mailer = m
}

// Mux returns the task router with every handler registered.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskParticipantJoined, j.handleParticipantJoinedTask)
	return mux
}

// Start launches the worker pool in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(j.Mux()); err != nil {
		return fmt.Errorf("start job server: %w", err)
	}
	return nil
}

// EnqueueParticipantJoined schedules the confirmation e-mail.
func (j *JobService) EnqueueParticipantJoined(ctx context.Context, p ParticipantJoinedPayload) error {
	task, err := NewParticipantJoinedTask(p)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskParticipantJoined, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued participant joined email")
	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	if j.server != nil {
		j.server.Shutdown()
	}
	if j.Client != nil {
		_ = j.Client.Close()
	}
}
