package email

import "time"

// PreviewData contains sample template data for local preview/testing,
// keyed by template.
var PreviewData = map[Template]any{
	TemplateParticipantJoined: ParticipantJoinedData{
		UserName:         "Ada",
		EventName:        "Beach Cleanup",
		OrganisationName: "Ocean Friends",
		Address:          "Pier 39, San Francisco",
		StartDatetime:    time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC),
	},
}
