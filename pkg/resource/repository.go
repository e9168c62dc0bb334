package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreResource(ctx context.Context, callerUid string, resource Resource) (string, error)
	GetResource(ctx context.Context, callerUid string, id string) (Resource, error)
	GetAllResources(ctx context.Context, callerUid string) ([]Resource, error)
	UpdateResource(ctx context.Context, callerUid string, resource Resource) error
	DeleteResource(ctx context.Context, callerUid string, id string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreResource(ctx context.Context, callerUid string, resource Resource) (string, error) {
	query := `INSERT INTO resources (id, caller_uid, name, role, color) VALUES ($1, $2, $3, $4, $5)`

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, query, id, callerUid, resource.Name, resource.Role, resource.Color)
	if err != nil {
		err := fmt.Errorf("could not store resource: %w", err)
		log.Error(err)
		return "", err
	}
	return id, nil
}

func (r *RepositoryImpl) GetResource(ctx context.Context, callerUid string, id string) (Resource, error) {
	query := `SELECT id, name, role, color FROM resources WHERE caller_uid = $1 AND id = $2`

	var resource Resource
	err := r.db.QueryRowContext(ctx, query, callerUid, id).
		Scan(&resource.Id, &resource.Name, &resource.Role, &resource.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return Resource{}, ErrResourceNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get resource: %w", err)
		log.Error(err)
		return Resource{}, err
	}
	return resource, nil
}

func (r *RepositoryImpl) GetAllResources(ctx context.Context, callerUid string) ([]Resource, error) {
	query := `SELECT id, name, role, color FROM resources WHERE caller_uid = $1 ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, callerUid)
	if err != nil {
		err := fmt.Errorf("could not query resources: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	resources := make([]Resource, 0, 10)
	for rows.Next() {
		var resource Resource
		if err := rows.Scan(&resource.Id, &resource.Name, &resource.Role, &resource.Color); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		resources = append(resources, resource)
	}
	return resources, rows.Err()
}

func (r *RepositoryImpl) UpdateResource(ctx context.Context, callerUid string, resource Resource) error {
	query := `UPDATE resources SET name = $1, role = $2, color = $3 WHERE caller_uid = $4 AND id = $5`

	res, err := r.db.ExecContext(ctx, query, resource.Name, resource.Role, resource.Color, callerUid, resource.Id)
	if err != nil {
		err := fmt.Errorf("could not update resource: %w", err)
		log.Error(err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

// DeleteResource removes the resource row. Events referencing it are removed
// by the storage layer's cascading foreign key.
func (r *RepositoryImpl) DeleteResource(ctx context.Context, callerUid string, id string) error {
	query := `DELETE FROM resources WHERE caller_uid = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, callerUid, id)
	if err != nil {
		err := fmt.Errorf("could not delete resource: %w", err)
		log.Error(err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrResourceNotFound
	}
	return nil
}
