package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cec-hub/cec-timetable-api/internal/models"
)

// RoomRepository manages persistence for facilities and their rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs a RoomRepository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListFacilities returns all training facilities.
func (r *RoomRepository) ListFacilities(ctx context.Context) ([]models.Facility, error) {
	const query = `SELECT id, name, address, created_at FROM facilities ORDER BY name ASC`
	var facilities []models.Facility
	if err := r.db.SelectContext(ctx, &facilities, query); err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	return facilities, nil
}

// ListByFacility returns the rooms of one facility.
func (r *RoomRepository) ListByFacility(ctx context.Context, facilityID string) ([]models.Room, error) {
	const query = `SELECT id, facility_id, room_number, building, capacity, created_at FROM rooms WHERE facility_id = $1 ORDER BY building NULLS FIRST, room_number ASC`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, facilityID); err != nil {
		return nil, fmt.Errorf("list rooms by facility: %w", err)
	}
	return rooms, nil
}

// FindByID fetches a room by ID.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	const query = `SELECT id, facility_id, room_number, building, capacity, created_at FROM rooms WHERE id = $1`
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}
