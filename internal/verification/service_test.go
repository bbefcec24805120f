package verification

import (
	"context"
	"testing"

	"landeed-backend/internal/models"
	"landeed-backend/internal/notifications"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupVerificationTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Property{}, &models.Notification{},
	))
	// No task runner: side effects run inline so assertions see them.
	svc := &Service{DB: db, Notifications: &notifications.Service{DB: db}}
	return svc, db
}

func seedPending(t *testing.T, db *gorm.DB) (*models.User, *models.Property) {
	owner := &models.User{FullName: "Owner", Email: "owner@example.com"}
	require.NoError(t, db.Create(owner).Error)
	p := &models.Property{
		Title:         "Sunset Villa",
		Type:          "Villa",
		Purpose:       "Sale",
		Location:      "Kochi",
		Price:         250000,
		Description:   "Sea view villa",
		Status:        models.StatusPending,
		PropertyClass: models.ClassRegular,
		OwnerID:       owner.UserID,
		OwnerEmail:    owner.Email,
	}
	require.NoError(t, db.Create(p).Error)
	return owner, p
}

func TestApprove_SetsVerifiedAndNotifies(t *testing.T) {
	svc, db := setupVerificationTest(t)
	owner, p := seedPending(t, db)
	adminID := uuid.New()

	got, err := svc.Approve(context.Background(), p.PropertyID, models.ClassPremium, adminID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, got.Status)
	assert.Equal(t, models.ClassPremium, got.PropertyClass)
	require.NotNil(t, got.VerifiedBy)
	assert.Equal(t, adminID, *got.VerifiedBy)
	assert.NotNil(t, got.VerificationDate)
	assert.Nil(t, got.RejectionReason)

	var notes []models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.UserID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotifyPropertyVerified, notes[0].Type)
	assert.Contains(t, notes[0].Message, "Sunset Villa")
	assert.Contains(t, notes[0].Message, "Premium")
	require.NotNil(t, notes[0].PropertyID)
	assert.Equal(t, p.PropertyID, *notes[0].PropertyID)
}

func TestApprove_AlreadyReviewed(t *testing.T) {
	svc, db := setupVerificationTest(t)
	owner, p := seedPending(t, db)
	adminID := uuid.New()

	_, err := svc.Approve(context.Background(), p.PropertyID, models.ClassRegular, adminID)
	require.NoError(t, err)

	// Second decision hits the guard, does not change class and does not
	// notify again.
	_, err = svc.Approve(context.Background(), p.PropertyID, models.ClassTop, adminID)
	assert.Equal(t, ErrAlreadyReviewed, err)

	var got models.Property
	require.NoError(t, db.Where("property_id = ?", p.PropertyID).First(&got).Error)
	assert.Equal(t, models.ClassRegular, got.PropertyClass)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", owner.UserID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApprove_NotFound(t *testing.T) {
	svc, _ := setupVerificationTest(t)
	_, err := svc.Approve(context.Background(), uuid.New(), models.ClassRegular, uuid.New())
	assert.Equal(t, ErrNotFound, err)
}

func TestApprove_InvalidClass(t *testing.T) {
	svc, db := setupVerificationTest(t)
	_, p := seedPending(t, db)
	_, err := svc.Approve(context.Background(), p.PropertyID, "Golden", uuid.New())
	assert.Equal(t, ErrInvalidClass, err)
}

func TestReject_RequiresReason(t *testing.T) {
	svc, db := setupVerificationTest(t)
	_, p := seedPending(t, db)
	_, err := svc.Reject(context.Background(), p.PropertyID, "", uuid.New())
	assert.Equal(t, ErrReasonRequired, err)

	var got models.Property
	require.NoError(t, db.Where("property_id = ?", p.PropertyID).First(&got).Error)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestReject_SetsReasonAndNotifies(t *testing.T) {
	svc, db := setupVerificationTest(t)
	owner, p := seedPending(t, db)

	got, err := svc.Reject(context.Background(), p.PropertyID, "Blurry photos", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "Blurry photos", *got.RejectionReason)

	var notes []models.Notification
	require.NoError(t, db.Where("user_id = ?", owner.UserID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotifyPropertyRejected, notes[0].Type)
	assert.Contains(t, notes[0].Message, "Blurry photos")
}

func TestRejectThenApprove_Conflict(t *testing.T) {
	svc, db := setupVerificationTest(t)
	_, p := seedPending(t, db)

	_, err := svc.Reject(context.Background(), p.PropertyID, "Incomplete details", uuid.New())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), p.PropertyID, models.ClassRegular, uuid.New())
	assert.Equal(t, ErrAlreadyReviewed, err)
}

func TestListByStatus_InvalidStatus(t *testing.T) {
	svc, _ := setupVerificationTest(t)
	_, err := svc.ListByStatus(context.Background(), "archived")
	assert.Equal(t, ErrInvalidStatus, err)
}

func TestDashboardStats(t *testing.T) {
	svc, db := setupVerificationTest(t)
	owner, p := seedPending(t, db)
	_, err := svc.Approve(context.Background(), p.PropertyID, models.ClassRegular, uuid.New())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Property{
			Title:       "Pending",
			Type:        "House",
			Purpose:     "Rent",
			Location:    "Delhi",
			Price:       10000,
			Description: "Pending listing",
			Status:      models.StatusPending,
			OwnerID:     owner.UserID,
			OwnerEmail:  owner.Email,
		}).Error)
	}

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.PendingPropertiesCount)
	assert.Equal(t, int64(1), stats.VerifiedPropertiesCount)
	assert.Equal(t, int64(0), stats.RejectedPropertiesCount)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Len(t, stats.RecentProperties, 3)
}
