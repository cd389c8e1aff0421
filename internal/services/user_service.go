package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/nlp"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user
func (s *userService) CreateUser(name, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Name:     name,
		Email:    strings.ToLower(email),
		Password: string(hashedPassword),
		IsActive: true,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(email), true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// SetSalary parses and stores the user's monthly salary. The raw value
// accepts shorthand like "25k" but must be strictly numeric after
// normalization; anything else is rejected rather than guessed at.
func (s *userService) SetSalary(userID, raw string) (*models.User, error) {
	amount, err := nlp.ParseMoney(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "salary must be a number, e.g. 25000 or 25k")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "salary must be positive")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.Salary = &amount
	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// SetSavingsGoal parses and stores the user's monthly savings goal.
func (s *userService) SetSavingsGoal(userID, raw string) (*models.User, error) {
	amount, err := nlp.ParseMoney(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "savings goal must be a number, e.g. 5000 or 5k")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "savings goal cannot be negative")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.SavingsGoal = amount
	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}
