package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreEvent(ctx context.Context, callerUid string, event Event) (uuid.UUID, error)
	GetEvent(ctx context.Context, callerUid string, eventUid uuid.UUID) (Event, error)
	GetEvents(ctx context.Context, callerUid string, from, to time.Time, resourceId string) ([]Event, error)
	UpdateEvent(ctx context.Context, callerUid string, event Event) error
	DeleteEvent(ctx context.Context, callerUid string, eventUid uuid.UUID) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, callerUid string, event Event) (uuid.UUID, error) {
	query := `INSERT INTO events (
                            uid,
                            caller_uid,
                            resource_id,
                            title,
                            description,
                            start_time,
                            end_time,
                            color
						) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	uid := uuid.New()
	_, err := r.db.ExecContext(ctx, query,
		uid.String(),
		callerUid,
		event.ResourceId,
		event.Title,
		event.Description,
		event.StartTime.UnixMilli(),
		event.EndTime.UnixMilli(),
		event.Color,
	)
	if err != nil {
		err := fmt.Errorf("could not store event: %w", err)
		log.Error(err)
		return uuid.Nil, err
	}

	return uid, nil
}

func (r *RepositoryImpl) GetEvent(ctx context.Context, callerUid string, eventUid uuid.UUID) (Event, error) {
	query := `SELECT uid, resource_id, title, description, start_time, end_time, color
              FROM events
              WHERE caller_uid = $1 AND uid = $2`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, callerUid, eventUid.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrEventNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get event: %w", err)
		log.Error(err)
		return Event{}, err
	}
	return event, nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, callerUid string, from, to time.Time, resourceId string) ([]Event, error) {
	// Return all events that overlap with the given period:
	// 1. Events that start before the end of the period (start_time <= to)
	// 2. AND end after the start of the period (end_time >= from)
	query := `SELECT uid, resource_id, title, description, start_time, end_time, color
              FROM events
              WHERE caller_uid = $1
                AND start_time <= $2
                AND end_time >= $3`
	args := []any{callerUid, to.UnixMilli(), from.UnixMilli()}
	if resourceId != "" {
		query += ` AND resource_id = $4`
		args = append(args, resourceId)
	}
	query += ` ORDER BY start_time, uid`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, callerUid string, event Event) error {
	query := `UPDATE events SET resource_id = $1, title = $2, description = $3, start_time = $4, end_time = $5, color = $6
              WHERE caller_uid = $7 AND uid = $8`

	res, err := r.db.ExecContext(ctx, query,
		event.ResourceId,
		event.Title,
		event.Description,
		event.StartTime.UnixMilli(),
		event.EndTime.UnixMilli(),
		event.Color,
		callerUid,
		event.UID.UUID.String(),
	)
	if err != nil {
		err := fmt.Errorf("could not update event: %w", err)
		log.Error(err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, callerUid string, eventUid uuid.UUID) error {
	query := `DELETE FROM events WHERE caller_uid = $1 AND uid = $2`

	res, err := r.db.ExecContext(ctx, query, callerUid, eventUid.String())
	if err != nil {
		err := fmt.Errorf("could not delete event: %w", err)
		log.Error(err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (Event, error) {
	var uid uuid.NullUUID
	var resourceId string
	var title string
	var description string
	var startTimeMillis int64
	var endTimeMillis int64
	var color string
	err := row.Scan(&uid, &resourceId, &title, &description, &startTimeMillis, &endTimeMillis, &color)
	if err != nil {
		return Event{}, err
	}
	return Event{
		UID:         uid,
		Title:       title,
		Description: description,
		StartTime:   time.UnixMilli(startTimeMillis).UTC(),
		EndTime:     time.UnixMilli(endTimeMillis).UTC(),
		ResourceId:  resourceId,
		Color:       color,
	}, nil
}
