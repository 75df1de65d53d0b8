package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/99tech/users-api/models"
)

// timeLayout is the format sqlite uses for CURRENT_TIMESTAMP values.
const timeLayout = "2006-01-02 15:04:05"

// userRepository implements models.UserRepository over a sqlite DB.
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) models.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) Create(ctx context.Context, user models.CreateUserRequest) (int64, error) {
	const q = `INSERT INTO users (name, email, age) VALUES (?, ?, ?)`

	res, err := repo.db.Execute(ctx, q, user.Name, user.Email, user.Age)
	if err != nil {
		return 0, err
	}

	return res.LastInsertID, nil
}

func (repo *userRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	const q = `SELECT id, name, email, age, createdAt, updatedAt FROM users WHERE id = ?`

	var user models.User

	found, err := repo.db.QueryOne(ctx, q, func(row Scannable) error {
		var scanErr error
		user, scanErr = rowToUser(row)

		return scanErr
	}, id)
	if err != nil {
		return models.User{}, err
	}

	if !found {
		return models.User{}, models.ErrUserNotFound
	}

	return user, nil
}

func (repo *userRepository) Select(ctx context.Context, filters models.UserFilters) ([]models.User, int, error) {
	where, args := buildWhere(filters)

	countQ := `SELECT COUNT(*) FROM users` + where

	var total int

	_, err := repo.db.QueryOne(ctx, countQ, func(row Scannable) error {
		return row.Scan(&total)
	}, args...)
	if err != nil {
		return nil, 0, err
	}

	// id breaks createdAt ties so pages never overlap
	q := `SELECT id, name, email, age, createdAt, updatedAt FROM users` + where +
		` ORDER BY createdAt DESC, id DESC LIMIT ? OFFSET ?`

	offset := (filters.Page - 1) * filters.Limit
	args = append(args, filters.Limit, offset)

	users := make([]models.User, 0)

	err = repo.db.QueryAll(ctx, q, func(rows Scannable) error {
		user, scanErr := rowToUser(rows)
		if scanErr != nil {
			return scanErr
		}

		users = append(users, user)

		return nil
	}, args...)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (repo *userRepository) Update(ctx context.Context, id int64, patch models.UpdateUserRequest) error {
	q := `UPDATE users SET `

	var (
		sets []string
		args []any
	)

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}

	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}

	if patch.Age != nil {
		sets = append(sets, "age = ?")
		args = append(args, *patch.Age)
	}

	if len(sets) == 0 {
		return models.ErrNoFieldsToUpdate
	}

	sets = append(sets, "updatedAt = CURRENT_TIMESTAMP")

	q += strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)

	res, err := repo.db.Execute(ctx, q, args...)
	if err != nil {
		return err
	}

	if res.RowsAffected == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

func (repo *userRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM users WHERE id = ?`

	res, err := repo.db.Execute(ctx, q, id)
	if err != nil {
		return false, err
	}

	return res.RowsAffected > 0, nil
}

func (repo *userRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	q := `SELECT id FROM users WHERE email = ?`
	args := []any{email}

	if excludeID > 0 {
		q += ` AND id != ?`

		args = append(args, excludeID)
	}

	q += ` LIMIT 1`

	var id int64

	return repo.db.QueryOne(ctx, q, func(row Scannable) error {
		return row.Scan(&id)
	}, args...)
}

func buildWhere(filters models.UserFilters) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filters.Name != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filters.Name+"%")
	}

	if filters.Email != "" {
		conditions = append(conditions, "email LIKE ?")
		args = append(args, "%"+filters.Email+"%")
	}

	if filters.MinAge != nil {
		conditions = append(conditions, "age >= ?")
		args = append(args, *filters.MinAge)
	}

	if filters.MaxAge != nil {
		conditions = append(conditions, "age <= ?")
		args = append(args, *filters.MaxAge)
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func rowToUser(row Scannable) (models.User, error) {
	var (
		user      models.User
		createdAt string
		updatedAt string
	)

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Age, &createdAt, &updatedAt)
	if err != nil {
		return models.User{}, err
	}

	user.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return models.User{}, err
	}

	user.UpdatedAt, err = parseTimestamp(updatedAt)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, value, time.UTC)
	if err == nil {
		return t, nil
	}

	// older rows may carry fractional seconds or RFC3339 values
	if t, rfcErr := time.Parse(time.RFC3339, value); rfcErr == nil {
		return t, nil
	}

	return time.Time{}, err
}
