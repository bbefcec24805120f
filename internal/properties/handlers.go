package properties

import (
	"errors"
	"strconv"

	"landeed-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type submitRequest struct {
	Title            string          `json:"title"`
	Type             string          `json:"type"`
	Purpose          string          `json:"purpose"`
	Location         string          `json:"location"`
	Size             string          `json:"size"`
	Price            float64         `json:"price"`
	IsNegotiable     bool            `json:"is_negotiable"`
	Description      string          `json:"description"`
	AvailabilityDate string          `json:"availability_date"`
	ContactInfo      string          `json:"contact_info"`
	Images           []string        `json:"images"`
	RoomDetails      map[string]int  `json:"room_details"`
	Features         map[string]bool `json:"features"`
	FloorLevel       string          `json:"floor_level"`
	FacingDirection  string          `json:"facing_direction"`
	UserEmail        string          `json:"userEmail"`
}

// POST /api/properties
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var body submitRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	property, err := h.Service.Submit(c.Context(), SubmitInput{
		Title:            body.Title,
		Type:             body.Type,
		Purpose:          body.Purpose,
		Location:         body.Location,
		Size:             body.Size,
		Price:            body.Price,
		IsNegotiable:     body.IsNegotiable,
		Description:      body.Description,
		AvailabilityDate: body.AvailabilityDate,
		ContactInfo:      body.ContactInfo,
		Images:           body.Images,
		RoomDetails:      body.RoomDetails,
		Features:         body.Features,
		FloorLevel:       body.FloorLevel,
		FacingDirection:  body.FacingDirection,
		OwnerEmail:       body.UserEmail,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Created(c, "Property uploaded successfully", property)
}

// GET /api/properties
func (h *Handlers) List(c *fiber.Ctx) error {
	f := Filters{
		PropertyClass: c.Query("propertyClass"),
		Type:          c.Query("type"),
		Purpose:       c.Query("purpose"),
		Location:      c.Query("location"),
	}
	if v := c.Query("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	data, err := h.Service.ListPublic(c.Context(), f)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Properties fetched successfully", data)
}

// GET /api/properties/category/:category
func (h *Handlers) ListByCategory(c *fiber.Ctx) error {
	data, err := h.Service.ListByClass(c.Context(), c.Params("category"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Properties fetched successfully", data)
}

// GET /api/properties/my-properties?email=
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	data, err := h.Service.ListMine(c.Context(), c.Query("email"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Properties fetched successfully", data)
}

// GET /api/properties/favorites?email=
func (h *Handlers) Favorites(c *fiber.Ctx) error {
	data, err := h.Service.Favorites(c.Context(), c.Query("email"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Favorites fetched successfully", data)
}

// GET /api/properties/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest)
	}
	property, err := h.Service.GetPublic(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Property fetched successfully", property)
}

type editRequest struct {
	Title            *string         `json:"title"`
	Type             *string         `json:"type"`
	Purpose          *string         `json:"purpose"`
	Location         *string         `json:"location"`
	Size             *string         `json:"size"`
	Price            *float64        `json:"price"`
	IsNegotiable     *bool           `json:"is_negotiable"`
	Description      *string         `json:"description"`
	AvailabilityDate *string         `json:"availability_date"`
	ContactInfo      *string         `json:"contact_info"`
	Images           []string        `json:"images"`
	RoomDetails      map[string]int  `json:"room_details"`
	Features         map[string]bool `json:"features"`
	FloorLevel       *string         `json:"floor_level"`
	FacingDirection  *string         `json:"facing_direction"`
	UserEmail        string          `json:"userEmail"`
}

// PATCH /api/properties/:id — any edit resets status to pending.
func (h *Handlers) Edit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest)
	}
	var body editRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	property, err := h.Service.Edit(c.Context(), id, EditInput{
		Title:            body.Title,
		Type:             body.Type,
		Purpose:          body.Purpose,
		Location:         body.Location,
		Size:             body.Size,
		Price:            body.Price,
		IsNegotiable:     body.IsNegotiable,
		Description:      body.Description,
		AvailabilityDate: body.AvailabilityDate,
		ContactInfo:      body.ContactInfo,
		Images:           body.Images,
		RoomDetails:      body.RoomDetails,
		Features:         body.Features,
		FloorLevel:       body.FloorLevel,
		FacingDirection:  body.FacingDirection,
		RequesterEmail:   body.UserEmail,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Property updated successfully", property)
}

// DELETE /api/properties/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Property deleted", nil)
}

// POST /api/properties/:id/toggle-favorite
func (h *Handlers) ToggleFavorite(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest)
	}
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	favorites, err := h.Service.ToggleFavorite(c.Context(), body.Email, id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "Favorite updated",
		"favorites": favorites,
	})
}

func (h *Handlers) mapError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case errors.Is(err, ErrEmailRequired), errors.Is(err, ErrInvalidClass):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrOwnerNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		return response.Error(c, err.Error(), fiber.StatusForbidden)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
}
