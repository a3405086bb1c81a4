package repository

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/drushti-surkar/hashgait-demo/internal/database"
	"github.com/drushti-surkar/hashgait-demo/internal/models"
)

var (
	ErrUserExists   = errors.New("username already taken")
	ErrUserNotFound = errors.New("user not found")
)

// Users is the account store behind registration and login.
type Users interface {
	Create(ctx context.Context, username, password string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// GormUsers stores accounts in the database.
type GormUsers struct{}

func NewGormUsers() *GormUsers {
	return &GormUsers{}
}

func (r *GormUsers) Create(ctx context.Context, username, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if _, err := r.GetByUsername(ctx, username); err == nil {
		return nil, ErrUserExists
	}
	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
	}
	result := database.DB.WithContext(ctx).Create(user)
	return user, result.Error
}

func (r *GormUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// MemoryUsers keeps accounts in process memory. Used when the database is
// disabled; accounts do not survive a restart.
type MemoryUsers struct {
	mu     sync.RWMutex
	users  map[string]*models.User
	nextID uint
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]*models.User), nextID: 1}
}

func (r *MemoryUsers) Create(ctx context.Context, username, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[username]; exists {
		return nil, ErrUserExists
	}
	user := &models.User{
		ID:       r.nextID,
		Username: username,
		Password: string(hashedPassword),
	}
	r.nextID++
	r.users[username] = user
	return user, nil
}

func (r *MemoryUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}
