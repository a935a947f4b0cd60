package repository

import (
	"database/sql"

	"github.com/lib/pq"

	"traintracker/internal/models"
)

// LocationRepository работает со справочником залов
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository создаёт репозиторий залов
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// List возвращает весь справочник залов с алиасами
func (r *LocationRepository) List() ([]models.Location, error) {
	rows, err := r.db.Query(`
		SELECT id, name, COALESCE(address, ''), COALESCE(aliases, '{}')
		FROM public.locations
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Address, pq.Array(&loc.Aliases)); err != nil {
			continue
		}
		locations = append(locations, loc)
	}
	return locations, nil
}
