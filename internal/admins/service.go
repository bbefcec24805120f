package admins

import (
	"context"
	"strings"
	"time"

	"landeed-backend/internal/models"
	"landeed-backend/internal/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type Service struct {
	DB          *gorm.DB
	JWTSecret   string
	EmailDomain string // e.g. "@landeed.com"
}

// LoginResult carries the signed token and the admin's public fields.
type LoginResult struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

// Login verifies credentials, requires an active account, updates lastLogin
// and returns a 24h bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !admin.ComparePassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, ErrAccountDisabled
	}

	now := time.Now().UTC()
	if err := s.DB.WithContext(ctx).Model(&admin).Update("last_login", now).Error; err != nil {
		return nil, err
	}
	admin.LastLogin = &now

	token, err := s.signToken(admin.AdminID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Admin: &admin}, nil
}

type CreateInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// Create adds a new admin account. Caller authorization (super_admin only)
// is checked by the handler; this validates the input and uniqueness.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validation.IsValidEmail(email) || !strings.HasSuffix(email, s.EmailDomain) {
		return nil, ErrInvalidEmailDomain
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, ErrFullNameRequired
	}
	role := in.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		return nil, ErrInvalidRole
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyExists
	}

	admin := &models.Admin{
		Email:    email,
		FullName: strings.TrimSpace(in.FullName),
		Role:     role,
		IsActive: true,
	}
	if err := admin.SetPassword(in.Password); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// List returns all admin accounts (password hashes are never serialized).
func (s *Service) List(ctx context.Context) ([]models.Admin, error) {
	var out []models.Admin
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one admin, used by the auth middleware.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("admin_id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// EnsureDefaultAdmin idempotently creates the bootstrap super_admin so the
// moderation surface is never locked out on a fresh database.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	email := "admin" + s.EmailDomain
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	admin := &models.Admin{
		Email:    email,
		FullName: "Default Admin",
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Create(admin).Error
}

func (s *Service) signToken(adminID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": adminID.String(),
		"exp":      time.Now().Add(tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWTSecret))
}

// ParseToken validates a bearer token and returns the admin id inside it.
func (s *Service) ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidCredentials
	}
	idStr, _ := claims["admin_id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return id, nil
}
