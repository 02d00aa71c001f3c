package email

import "time"

// ParticipantJoinedData is rendered into the participant-joined template.
type ParticipantJoinedData struct {
	UserName         string
	EventName        string
	OrganisationName string
	Address          string
	StartDatetime    time.Time
}

// SendParticipantJoinedEmail confirms to a volunteer that they joined an
// event.
func (c *Client) SendParticipantJoinedEmail(to string, data ParticipantJoinedData) error {
	return c.SendEmail(
		to,
		"You're signed up for "+data.EventName,
		TemplateParticipantJoined,
		data,
	)
}
