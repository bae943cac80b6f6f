package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/agenciadecir/gympro/models"
	"github.com/agenciadecir/gympro/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hashed,
		Name:     name,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Login authenticates by email and password and issues a JWT. Banned or
// deactivated accounts are refused without distinguishing from a bad
// password.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrUnauthorized
	}
	if user.Banned() || !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, ErrUnauthorized
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return "", nil, err
	}
	user.LastLoginAt = &now

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// CheckStatus reports whether an account may log in. Unknown emails report
// "ok" so existence is never revealed.
func (s *AuthService) CheckStatus(email string) (string, error) {
	if email == "" {
		return "", ErrInvalidInput
	}

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "ok", nil
	}
	if err != nil {
		return "", err
	}
	if user.Banned() {
		return "banned", nil
	}
	return "ok", nil
}
