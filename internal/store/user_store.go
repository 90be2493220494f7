package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/example/loginportal/internal/models"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned when a signup or update collides with an
	// existing email or phone.
	ErrDuplicate = errors.New("email or phone already registered")
)

// UserUpdate carries the admin-editable fields. Empty fields are skipped.
type UserUpdate struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Users is the persistence contract the HTTP layer depends on.
type Users interface {
	FindByEmailOrPhone(email, phone string) (*models.User, error)
	FindByName(name string) (*models.User, error)
	Create(user *models.User) error
	ListAll() ([]models.User, error)
	UpdateByID(id uuid.UUID, update UserUpdate) error
	DeleteByID(id uuid.UUID) error
	SetProfileImage(id uuid.UUID, path string) error
}

// UserStore is the GORM-backed implementation of Users.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore constructs a UserStore.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByEmailOrPhone returns the first user matching either value.
// Absence is a normal outcome and yields (nil, nil).
func (s *UserStore) FindByEmailOrPhone(email, phone string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? OR phone = ?", email, phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByName returns the user with the given login name. Names are not
// unique; the oldest account wins so repeated logins resolve the same record.
func (s *UserStore) FindByName(name string) (*models.User, error) {
	var user models.User
	err := s.db.Where("name = ?", name).
		Order("created_at asc, id asc").
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create validates the user and persists it, assigning the ID.
func (s *UserStore) Create(user *models.User) error {
	if user.ProfileImagePath == "" {
		user.ProfileImagePath = models.DefaultProfileImagePath
	}

	if err := user.Validate(); err != nil {
		return err
	}

	existing, err := s.FindByEmailOrPhone(user.Email, user.Phone)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicate
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	return nil
}

// ListAll returns every user record, newest first.
func (s *UserStore) ListAll() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateByID overwrites the admin-editable fields. The password hash and
// profile image are never touched here.
func (s *UserStore) UpdateByID(id uuid.UUID, update UserUpdate) error {
	updates := map[string]interface{}{}
	if update.Name != "" {
		updates["name"] = update.Name
	}
	if update.Email != "" {
		updates["email"] = update.Email
	}
	if update.Phone != "" {
		updates["phone"] = update.Phone
	}
	if update.Address != "" {
		updates["address"] = update.Address
	}
	updates["updated_at"] = time.Now()

	result := s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicate
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the user record.
func (s *UserStore) DeleteByID(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetProfileImage records the uploaded image path for the user.
func (s *UserStore) SetProfileImage(id uuid.UUID, path string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"profile_image_path": path,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// 23505 is the postgres unique_violation class.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
