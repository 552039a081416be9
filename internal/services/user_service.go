package services

import (
	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/query"
	"katalog/internal/repositories"
)

var userFilterSchema = query.Schema{
	"fullname": {Op: query.OpContains},
	"email":    {Op: query.OpEquals},
	"role":     {Op: query.OpEquals},
}

// UserFilterKeys returns the query parameters handlers should pick as user
// filters.
func UserFilterKeys() []string {
	return userFilterSchema.Keys()
}

// UserService handles read access to user accounts.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetAllUser returns one page of users matching the filters.
func (s *UserService) GetAllUser(filters map[string]string, opts query.Options) (*models.UserPage, error) {
	preds, err := query.Compile(userFilterSchema, filters)
	if err != nil {
		return nil, err
	}
	page, err := query.Resolve(opts)
	if err != nil {
		return nil, err
	}

	users, total, err := s.repo.FindMany(preds, page)
	if err != nil {
		return nil, apperrors.Internal("failed to list users", err)
	}
	return &models.UserPage{
		Data: users,
		Meta: models.PageMeta{Total: total, Page: page.Page, Limit: page.Limit},
	}, nil
}

// GetMyProfile retrieves the authenticated user's own record.
func (s *UserService) GetMyProfile(userID string) (*models.User, error) {
	return s.GetOneUser(userID)
}

// GetOneUser retrieves a user by ID.
func (s *UserService) GetOneUser(id string) (*models.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User does not exist")
	}
	return user, nil
}
