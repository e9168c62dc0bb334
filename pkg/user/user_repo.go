package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, uid string, user User) (User, error)
	DeleteUser(ctx context.Context, uid string) error
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (User, error) {
	query := `INSERT INTO callers (uid, display_name, timezone) VALUES ($1, $2, $3)`
	_, err := u.db.ExecContext(ctx, query, user.Uid, user.DisplayName, user.Settings.Timezone)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return User{}, fmt.Errorf("could not create user: %w", err)
	}
	return user, nil
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT uid, display_name, timezone FROM callers WHERE uid = $1`
	var user User
	err := u.db.QueryRowContext(ctx, query, uid).
		Scan(&user.Uid, &user.DisplayName, &user.Settings.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, fmt.Errorf("could not get user: %w", err)
	}
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, uid string, user User) (User, error) {
	query := `UPDATE callers SET display_name = $1, timezone = $2 WHERE uid = $3`
	res, err := u.db.ExecContext(ctx, query, user.DisplayName, user.Settings.Timezone, uid)
	if err != nil {
		log.Errorf("failed to update user: %v", err)
		return User{}, fmt.Errorf("could not update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return User{}, fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return User{}, ErrUserNotFound
	}
	user.Uid = uid
	return user, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, uid string) error {
	query := `DELETE FROM callers WHERE uid = $1`
	res, err := u.db.ExecContext(ctx, query, uid)
	if err != nil {
		log.Errorf("failed to delete user: %v", err)
		return fmt.Errorf("could not delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
