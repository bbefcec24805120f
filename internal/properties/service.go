package properties

import (
	"context"
	"encoding/json"
	"strings"

	"landeed-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type SubmitInput struct {
	Title            string
	Type             string
	Purpose          string
	Location         string
	Size             string
	Price            float64
	IsNegotiable     bool
	Description      string
	AvailabilityDate string
	ContactInfo      string
	Images           []string
	RoomDetails      map[string]int
	Features         map[string]bool
	FloorLevel       string
	FacingDirection  string
	OwnerEmail       string
}

// Submit validates required fields, resolves the owner by email, and inserts
// the listing in pending state.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.Property, error) {
	switch {
	case in.OwnerEmail == "":
		return nil, ErrEmailRequired
	case in.Title == "":
		return nil, &ValidationError{Field: "title"}
	case !models.ValidType(in.Type):
		return nil, &ValidationError{Field: "type"}
	case !models.ValidPurpose(in.Purpose):
		return nil, &ValidationError{Field: "purpose"}
	case in.Location == "":
		return nil, &ValidationError{Field: "location"}
	case in.Price <= 0:
		return nil, &ValidationError{Field: "price"}
	case in.Description == "":
		return nil, &ValidationError{Field: "description"}
	}

	var owner models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", in.OwnerEmail).First(&owner).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	p := &models.Property{
		Title:            in.Title,
		Type:             in.Type,
		Purpose:          in.Purpose,
		Location:         in.Location,
		Size:             in.Size,
		Price:            in.Price,
		IsNegotiable:     in.IsNegotiable,
		Description:      in.Description,
		AvailabilityDate: in.AvailabilityDate,
		ContactInfo:      in.ContactInfo,
		Images:           mustJSON(in.Images),
		RoomDetails:      mustJSON(in.RoomDetails),
		Features:         mustJSON(in.Features),
		FloorLevel:       in.FloorLevel,
		FacingDirection:  in.FacingDirection,
		Status:           models.StatusPending,
		PropertyClass:    models.ClassRegular,
		OwnerID:          owner.UserID,
		OwnerEmail:       owner.Email,
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Filters narrows the public (verified-only) listing feed.
type Filters struct {
	PropertyClass string
	Type          string
	Purpose       string
	Location      string
	MinPrice      *float64
	MaxPrice      *float64
	Limit         int
}

// ListPublic returns verified listings matching the filters, newest first.
func (s *Service) ListPublic(ctx context.Context, f Filters) ([]models.Property, error) {
	q := s.DB.WithContext(ctx).Where("status = ?", models.StatusVerified)
	if f.PropertyClass != "" {
		q = q.Where("property_class = ?", f.PropertyClass)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Purpose != "" {
		q = q.Where("purpose = ?", f.Purpose)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	q = q.Order("created_at DESC, property_id")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []models.Property
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByClass returns verified listings of one class, newest first.
func (s *Service) ListByClass(ctx context.Context, class string) ([]models.Property, error) {
	if !models.ValidClass(class) {
		return nil, ErrInvalidClass
	}
	return s.ListPublic(ctx, Filters{PropertyClass: class})
}

// ListMine returns all of an owner's listings regardless of status, newest first.
func (s *Service) ListMine(ctx context.Context, email string) ([]models.Property, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	var out []models.Property
	if err := s.DB.WithContext(ctx).
		Where("owner_email = ?", email).
		Order("created_at DESC, property_id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetPublic fetches one listing. Only verified listings are publicly visible;
// a pending or rejected listing reads as not found.
func (s *Service) GetPublic(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var p models.Property
	err := s.DB.WithContext(ctx).
		Where("property_id = ? AND status = ?", id, models.StatusVerified).
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// EditInput carries the patchable listing fields. Nil pointers are untouched.
type EditInput struct {
	Title            *string
	Type             *string
	Purpose          *string
	Location         *string
	Size             *string
	Price            *float64
	IsNegotiable     *bool
	Description      *string
	AvailabilityDate *string
	ContactInfo      *string
	Images           []string
	RoomDetails      map[string]int
	Features         map[string]bool
	FloorLevel       *string
	FacingDirection  *string
	RequesterEmail   string
}

// Edit applies a partial update and forces the listing back to pending:
// any content change invalidates a prior verification. Classification,
// rejection reason and verification metadata are cleared.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, in EditInput) (*models.Property, error) {
	var p models.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ?", id).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if in.RequesterEmail != "" && !strings.EqualFold(in.RequesterEmail, p.OwnerEmail) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{
		"status":            models.StatusPending,
		"property_class":    models.ClassRegular,
		"rejection_reason":  nil,
		"verified_by":       nil,
		"verification_date": nil,
	}
	setString(updates, "title", in.Title)
	setString(updates, "location", in.Location)
	setString(updates, "size", in.Size)
	setString(updates, "description", in.Description)
	setString(updates, "availability_date", in.AvailabilityDate)
	setString(updates, "contact_info", in.ContactInfo)
	setString(updates, "floor_level", in.FloorLevel)
	setString(updates, "facing_direction", in.FacingDirection)
	if in.Type != nil {
		if !models.ValidType(*in.Type) {
			return nil, &ValidationError{Field: "type"}
		}
		updates["type"] = *in.Type
	}
	if in.Purpose != nil {
		if !models.ValidPurpose(*in.Purpose) {
			return nil, &ValidationError{Field: "purpose"}
		}
		updates["purpose"] = *in.Purpose
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, &ValidationError{Field: "price"}
		}
		updates["price"] = *in.Price
	}
	if in.IsNegotiable != nil {
		updates["is_negotiable"] = *in.IsNegotiable
	}
	if in.Images != nil {
		updates["images"] = mustJSON(in.Images)
	}
	if in.RoomDetails != nil {
		updates["room_details"] = mustJSON(in.RoomDetails)
	}
	if in.Features != nil {
		updates["features"] = mustJSON(in.Features)
	}

	if err := s.DB.WithContext(ctx).Model(&p).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Where("property_id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete hard-deletes a listing.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("property_id = ?", id).Delete(&models.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFavorite adds or removes a property id from the user's favorites set.
// Toggling twice is not an error; it restores the previous state.
func (s *Service) ToggleFavorite(ctx context.Context, email string, propertyID uuid.UUID) ([]string, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	var favorites []string
	if len(user.Favorites) > 0 {
		_ = json.Unmarshal(user.Favorites, &favorites)
	}
	target := propertyID.String()
	found := false
	next := favorites[:0]
	for _, f := range favorites {
		if f == target {
			found = true
			continue
		}
		next = append(next, f)
	}
	if !found {
		next = append(next, target)
	}
	if next == nil {
		next = []string{}
	}

	if err := s.DB.WithContext(ctx).
		Model(&user).
		Update("favorites", mustJSON(next)).Error; err != nil {
		return nil, err
	}
	return next, nil
}

// Favorites returns the user's favorite listings.
func (s *Service) Favorites(ctx context.Context, email string) ([]models.Property, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	var ids []string
	if len(user.Favorites) > 0 {
		_ = json.Unmarshal(user.Favorites, &ids)
	}
	if len(ids) == 0 {
		return []models.Property{}, nil
	}
	var out []models.Property
	if err := s.DB.WithContext(ctx).
		Where("property_id IN ?", ids).
		Order("created_at DESC, property_id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func setString(updates map[string]interface{}, column string, v *string) {
	if v != nil {
		updates[column] = *v
	}
}

func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(b)
}
