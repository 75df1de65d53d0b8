package user

import (
	"context"

	"github.com/99tech/users-api/models"
)

// Service enforces the domain rules for user management. It is the only
// component that talks to the repository.
type Service struct {
	repo models.UserRepository
}

func NewService(repo models.UserRepository) *Service {
	return &Service{repo: repo}
}

// Create inserts a new user after checking email uniqueness, then re-reads
// the record so server-assigned fields (id, timestamps) are accurate.
//
// The existence check and the insert are not atomic across requests; the
// unique index on email is the backstop under concurrent writes.
func (s *Service) Create(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email, 0)
	if err != nil {
		return models.User{}, err
	}

	if exists {
		return models.User{}, models.ErrDuplicateEmail
	}

	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return models.User{}, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (models.User, error) {
	return s.repo.GetByID(ctx, id)
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// List returns a page of users matching filters, most recent first, plus
// the pagination block. The total counts every match regardless of paging.
func (s *Service) List(ctx context.Context, filters models.UserFilters) ([]models.User, models.Pagination, error) {
	if filters.Page < 1 {
		filters.Page = defaultPage
	}

	if filters.Limit < 1 {
		filters.Limit = defaultLimit
	}

	users, total, err := s.repo.Select(ctx, filters)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	pagination := models.Pagination{
		Page:       filters.Page,
		Limit:      filters.Limit,
		Total:      total,
		TotalPages: (total + filters.Limit - 1) / filters.Limit,
	}

	return users, pagination, nil
}

// Update applies a field-level patch. An empty patch is rejected before
// any uniqueness check or storage write. A user keeping their own email
// is not a duplicate of itself.
func (s *Service) Update(ctx context.Context, id int64, patch models.UpdateUserRequest) (models.User, error) {
	if patch.Empty() {
		return models.User{}, models.ErrNoFieldsToUpdate
	}

	if patch.Email != nil {
		exists, err := s.repo.EmailExists(ctx, *patch.Email, id)
		if err != nil {
			return models.User{}, err
		}

		if exists {
			return models.User{}, models.ErrDuplicateEmail
		}
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return models.User{}, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a user. It reports false, not an error, when no record
// matched.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// EmailExists reports whether email is already taken, optionally excluding
// one user id.
func (s *Service) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return s.repo.EmailExists(ctx, email, excludeID)
}
