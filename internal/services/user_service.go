package services

import (
	"fmt"
	"pos_system/internal/models"
	"pos_system/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	CreateUser(username, email, password string, role models.UserRole) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	DeactivateUser(id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(username, email, password string, role models.UserRole) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if role != models.RoleAdmin && role != models.RoleCashier {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         string(role),
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// Authenticate checks the password against the stored bcrypt hash. A missing
// user, a wrong password and a deactivated account all report the same
// ErrInvalidCredentials.
func (s *userService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *userService) DeactivateUser(id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return translate(err)
	}
	user.IsActive = false
	return translate(s.userRepo.Update(user))
}
