package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"resort-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService เป็น wrapper รอบ *gorm.DB เพื่อแยก logic ของ user account
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Authenticate verifies credentials and returns the user. The same error is
// returned for unknown email and wrong password.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, businessErr("invalid email or password")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, businessErr("invalid email or password")
	}
	return &user, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RegisterRequest is the guest signup payload.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *UserService) Register(req RegisterRequest) (*models.User, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.FullName == "" || req.Username == "" || req.Email == "" {
		return nil, validationErr("full name, username and email are required")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, validationErr("invalid email address")
	}
	if len(req.Password) < 6 {
		return nil, validationErr("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	user.SetRoles([]string{models.RoleGuest})

	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			// keep the message generic, the field is not disclosed
			return nil, businessErr("username or email may already be taken")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// ProfileUpdate carries the self-service profile fields.
type ProfileUpdate struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *UserService) UpdateProfile(user *models.User, update ProfileUpdate) error {
	update.FullName = strings.TrimSpace(update.FullName)
	update.Username = strings.TrimSpace(update.Username)
	update.Email = strings.TrimSpace(update.Email)

	if update.FullName == "" || update.Username == "" || update.Email == "" {
		return validationErr("full name, username and email are required")
	}
	if !emailPattern.MatchString(update.Email) {
		return validationErr("invalid email address")
	}

	user.FullName = update.FullName
	user.Username = update.Username
	user.Email = update.Email

	if err := s.DB.Save(user).Error; err != nil {
		if isDuplicateKey(err) {
			return businessErr("username or email may already be taken")
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (s *UserService) ChangePassword(user *models.User, current, next string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return businessErr("current password is incorrect")
	}
	if len(next) < 6 {
		return validationErr("new password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hash)
	if err := s.DB.Save(user).Error; err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}
