package job

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// TaskParticipantJoined confirms to a volunteer that they joined an event.
	TaskParticipantJoined = "email:participant_joined"
)

// ParticipantJoinedPayload is stored in Redis as JSON.
type ParticipantJoinedPayload struct {
	To               string    `json:"to"`
	UserName         string    `json:"user_name"`
	EventID          int64     `json:"event_id"`
	EventName        string    `json:"event_name"`
	OrganisationName string    `json:"organisation_name"`
	Address          string    `json:"address"`
	StartDatetime    time.Time `json:"start_datetime"`
}

// NewParticipantJoinedTask builds the task: 3 retries on the default queue,
// 30s handler timeout.
func NewParticipantJoinedTask(p ParticipantJoinedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode participant joined payload: %w", err)
	}

	return asynq.NewTask(
		TaskParticipantJoined,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

func decodeParticipantJoined(t *asynq.Task) (ParticipantJoinedPayload, error) {
	var p ParticipantJoinedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal participant joined payload: %w", err)
	}
	return p, nil
}
