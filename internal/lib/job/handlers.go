package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/go-quizbank/internal/lib/email"
)

// ParticipantMailer sends the participant-joined confirmation.
type ParticipantMailer interface {
	SendParticipantJoinedEmail(to string, data email.ParticipantJoinedData) error
}

// handleParticipantJoinedTask decodes the payload and sends the e-mail.
// Returning an error makes asynq retry the task.
func (j *JobService) handleParticipantJoinedTask(ctx context.Context, t *asynq.Task) error {
	p, err := decodeParticipantJoined(t)
	if err != nil {
		// Malformed payloads will never succeed.
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	log := j.logger.With().
		Str("type", TaskParticipantJoined).
		Int64("event_id", p.EventID).
		Str("to", p.To).
		Logger()

	log.Info().Msg("Processing participant joined email task")

	if j.mailer == nil {
		return fmt.Errorf("no mailer configured for %s", TaskParticipantJoined)
	}

	err = j.mailer.SendParticipantJoinedEmail(p.To, email.ParticipantJoinedData{
		UserName:         p.UserName,
		EventName:        p.EventName,
		OrganisationName: p.OrganisationName,
		Address:          p.Address,
		StartDatetime:    p.StartDatetime,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send participant joined email")
		return err
	}

	log.Info().Msg("Successfully sent participant joined email")
	return nil
}
