package repository

import "database/sql"

// Repository содержит все репозитории
type Repository struct {
	Training *TrainingRepository
	Location *LocationRepository
	Channel  *ChannelRepository
}

// New создаёт новый экземпляр Repository
func New(db *sql.DB) *Repository {
	return &Repository{
		Training: NewTrainingRepository(db),
		Location: NewLocationRepository(db),
		Channel:  NewChannelRepository(db),
	}
}
