package service

import (
	"errors"

	"komakresan-backend/internal/apps/user/models"
	"komakresan-backend/internal/apps/user/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("you do not have permission to view this content")
)

// UserService defines the interface for user business logic
type UserService interface {
	GetByUsername(requesterID uuid.UUID, requesterIsAdmin bool, username string) (*models.UserResponse, error)
	List(page, pageSize int) ([]models.UserResponse, int64, error)
	UpdateIDCard(userID uuid.UUID, requesterIsAdmin bool, req models.UpdateIDCardRequest) (*models.IDCardInfo, error)
}

// userService implements UserService
type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// GetByUsername retrieves an account. Non-admin callers may only see their own.
func (s *userService) GetByUsername(requesterID uuid.UUID, requesterIsAdmin bool, username string) (*models.UserResponse, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !requesterIsAdmin && user.ID != requesterID {
		return nil, ErrForbidden
	}

	resp := user.ToResponse()
	return &resp, nil
}

// List retrieves all accounts with pagination (admin only; gated at the router)
func (s *userService) List(page, pageSize int) ([]models.UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := s.repo.FindAllPaginated(page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, total, nil
}

// UpdateIDCard updates identity-document metadata on the caller's own account.
// Only admins may change the review status.
func (s *userService) UpdateIDCard(userID uuid.UUID, requesterIsAdmin bool, req models.UpdateIDCardRequest) (*models.IDCardInfo, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IDCardInfo == nil {
		return nil, ErrUserNotFound
	}

	info := user.IDCardInfo
	if req.IDCardNumber != nil {
		info.IDCardNumber = req.IDCardNumber
	}
	if req.Status != nil && requesterIsAdmin {
		info.Status = *req.Status
	}

	if err := s.repo.UpdateIDCard(info); err != nil {
		return nil, err
	}
	return info, nil
}
