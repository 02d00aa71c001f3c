package repository

import (
	"github.com/deppfellow/go-quizbank/internal/server"
)

// Repositories is a container for all repository instances, built once at
// startup and handed to the service layer.
type Repositories struct {
	Questions     *QuestionRepository
	Categories    *CategoryRepository
	Events        *EventRepository
	Organisations *OrganisationRepository
	Participants  *ParticipantRepository
	Users         *UserRepository
}

// NewRepositories wires every repository to the shared pgx pool on s.DB.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		Questions:     NewQuestionRepository(pool),
		Categories:    NewCategoryRepository(pool),
		Events:        NewEventRepository(pool),
		Organisations: NewOrganisationRepository(pool),
		Participants:  NewParticipantRepository(pool),
		Users:         NewUserRepository(pool),
	}
}
