package admins

import (
	"context"
	"testing"

	"landeed-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAdminsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Admin{}))
	svc := &Service{DB: db, JWTSecret: "test-secret", EmailDomain: "@landeed.com"}
	return svc, db
}

func TestEnsureDefaultAdmin_Idempotent(t *testing.T) {
	svc, db := setupAdminsTest(t)

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))

	var admins []models.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@landeed.com", admins[0].Email)
	assert.Equal(t, models.RoleSuperAdmin, admins[0].Role)
	assert.True(t, admins[0].IsActive)
}

func TestLogin_DefaultCredentials(t *testing.T) {
	svc, _ := setupAdminsTest(t)
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))

	result, err := svc.Login(context.Background(), "admin@landeed.com", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotNil(t, result.Admin.LastLogin)

	id, err := svc.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Admin.AdminID, id)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := setupAdminsTest(t)
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))

	_, err := svc.Login(context.Background(), "admin@landeed.com", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := setupAdminsTest(t)
	_, err := svc.Login(context.Background(), "ghost@landeed.com", "admin123")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, db := setupAdminsTest(t)
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	require.NoError(t, db.Model(&models.Admin{}).
		Where("email = ?", "admin@landeed.com").
		Update("is_active", false).Error)

	_, err := svc.Login(context.Background(), "admin@landeed.com", "admin123")
	assert.Equal(t, ErrAccountDisabled, err)
}

func TestCreate_RejectsForeignDomain(t *testing.T) {
	svc, _ := setupAdminsTest(t)
	_, err := svc.Create(context.Background(), CreateInput{
		Email:    "mod@gmail.com",
		Password: "secret1",
		FullName: "Mod",
	})
	assert.Equal(t, ErrInvalidEmailDomain, err)
}

func TestCreate_WeakPassword(t *testing.T) {
	svc, _ := setupAdminsTest(t)
	_, err := svc.Create(context.Background(), CreateInput{
		Email:    "mod@landeed.com",
		Password: "12345",
		FullName: "Mod",
	})
	assert.Equal(t, ErrWeakPassword, err)
}

func TestCreate_DefaultsRoleAndLowercasesEmail(t *testing.T) {
	svc, _ := setupAdminsTest(t)
	admin, err := svc.Create(context.Background(), CreateInput{
		Email:    "Mod@Landeed.com",
		Password: "secret1",
		FullName: "Mod",
	})
	require.NoError(t, err)
	assert.Equal(t, "mod@landeed.com", admin.Email)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.ComparePassword("secret1"))
}

func TestCreate_Duplicate(t *testing.T) {
	svc, _ := setupAdminsTest(t)
	_, err := svc.Create(context.Background(), CreateInput{
		Email:    "mod@landeed.com",
		Password: "secret1",
		FullName: "Mod",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{
		Email:    "mod@landeed.com",
		Password: "secret2",
		FullName: "Mod Again",
	})
	assert.Equal(t, ErrAlreadyExists, err)
}

func TestCreate_InvalidRole(t *testing.T) {
	svc, _ := setupAdminsTest(t)
	_, err := svc.Create(context.Background(), CreateInput{
		Email:    "mod@landeed.com",
		Password: "secret1",
		FullName: "Mod",
		Role:     "owner",
	})
	assert.Equal(t, ErrInvalidRole, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	svc, db := setupAdminsTest(t)
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	result, err := svc.Login(context.Background(), "admin@landeed.com", "admin123")
	require.NoError(t, err)

	other := &Service{DB: db, JWTSecret: "different-secret", EmailDomain: "@landeed.com"}
	_, err = other.ParseToken(result.Token)
	assert.Equal(t, ErrInvalidCredentials, err)
}
