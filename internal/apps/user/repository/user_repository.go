package repository

import (
	"komakresan-backend/internal/apps/user/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uuid.UUID) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByPhone(phone string) (*models.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByPhone(phone string) (bool, error)
	Update(user *models.User) error
	UpdateIDCard(info *models.IDCardInfo) error
	FindAllPaginated(page, pageSize int) ([]models.User, int64, error)
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user together with its identity-document side record
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID retrieves a user by its ID
func (r *userRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("IDCardInfo").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername retrieves a user by username
func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("IDCardInfo").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPhone retrieves a user by phone number
func (r *userRepository) FindByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) exists(field, value string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where(field+" = ?", value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByUsername reports whether a user with the given username exists
func (r *userRepository) ExistsByUsername(username string) (bool, error) {
	return r.exists("username", username)
}

// ExistsByEmail reports whether a user with the given email exists
func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	return r.exists("email", email)
}

// ExistsByPhone reports whether a user with the given phone exists
func (r *userRepository) ExistsByPhone(phone string) (bool, error) {
	return r.exists("phone", phone)
}

// Update updates an existing user
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateIDCard updates the identity-document side record
func (r *userRepository) UpdateIDCard(info *models.IDCardInfo) error {
	return r.db.Save(info).Error
}

// FindAllPaginated retrieves users with pagination ordered by join date
func (r *userRepository) FindAllPaginated(page, pageSize int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("IDCardInfo").Order("created_at ASC").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
