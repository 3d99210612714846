package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"resort-backend/middleware"
	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type RoomController struct {
	Rooms  *services.RoomService
	Images *services.ImageService
	Audit  *services.ActivityLogService
	Log    *logrus.Logger
}

func NewRoomController(rooms *services.RoomService, images *services.ImageService, audit *services.ActivityLogService, log *logrus.Logger) *RoomController {
	return &RoomController{Rooms: rooms, Images: images, Audit: audit, Log: log}
}

type roomPayload struct {
	RoomNumber    string          `json:"roomNumber"`
	RoomType      string          `json:"roomType"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Capacity      int             `json:"capacity"`
	Features      string          `json:"features"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`

	MainImageBase64 string   `json:"mainImageBase64"`
	GalleryBase64   []string `json:"galleryImagesBase64"`
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (ctl *RoomController) Index(c *gin.Context) {
	rooms, err := ctl.Rooms.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// Available lists bookable rooms for the guest-facing catalog.
func (ctl *RoomController) Available(c *gin.Context) {
	rooms, err := ctl.Rooms.Available()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctl *RoomController) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	room, err := ctl.Rooms.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) Create(c *gin.Context) {
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		ctl.Log.WithError(err).Warn("❌ room payload binding failed")
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	payload.RoomNumber = strings.TrimSpace(payload.RoomNumber)
	if payload.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "room number is required")
		return
	}

	room := models.Room{
		RoomNumber:    payload.RoomNumber,
		RoomType:      payload.RoomType,
		PricePerNight: payload.PricePerNight,
		Capacity:      payload.Capacity,
		Features:      payload.Features,
		Description:   payload.Description,
		Status:        payload.Status,
	}
	ctl.applyImages(c, &room, payload)

	if err := ctl.Rooms.Create(&room); err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			utils.JSONError(c, http.StatusConflict, "room number already exists")
			return
		}
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogCreate(middleware.CurrentUser(c), &room, services.MetaFromContext(c))
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctl *RoomController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	room, err := ctl.Rooms.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	before := room.AuditFields()

	if payload.RoomNumber != "" {
		room.RoomNumber = strings.TrimSpace(payload.RoomNumber)
	}
	room.RoomType = payload.RoomType
	room.PricePerNight = payload.PricePerNight
	room.Capacity = payload.Capacity
	room.Features = payload.Features
	room.Description = payload.Description
	room.Status = payload.Status
	ctl.applyImages(c, room, payload)

	if err := ctl.Rooms.Update(room); err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogUpdate(middleware.CurrentUser(c), room, before, services.MetaFromContext(c))
	utils.JSONSuccess(c, http.StatusOK, room)
}

type roomPatchPayload struct {
	RoomNumber    *string          `json:"roomNumber"`
	RoomType      *string          `json:"roomType"`
	PricePerNight *decimal.Decimal `json:"pricePerNight"`
	Capacity      *int             `json:"capacity"`
	Features      *string          `json:"features"`
	Description   *string          `json:"description"`
	Status        *string          `json:"status"`
}

// Patch updates only the fields present in the body; everything else keeps
// its stored value.
func (ctl *RoomController) Patch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	room, err := ctl.Rooms.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var payload roomPatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	before := room.AuditFields()

	if payload.RoomNumber != nil && strings.TrimSpace(*payload.RoomNumber) != "" {
		room.RoomNumber = strings.TrimSpace(*payload.RoomNumber)
	}
	if payload.RoomType != nil {
		room.RoomType = *payload.RoomType
	}
	if payload.PricePerNight != nil {
		room.PricePerNight = *payload.PricePerNight
	}
	if payload.Capacity != nil {
		room.Capacity = *payload.Capacity
	}
	if payload.Features != nil {
		room.Features = *payload.Features
	}
	if payload.Description != nil {
		room.Description = *payload.Description
	}
	if payload.Status != nil {
		room.Status = *payload.Status
	}

	if err := ctl.Rooms.Update(room); err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogUpdate(middleware.CurrentUser(c), room, before, services.MetaFromContext(c))
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	room, err := ctl.Rooms.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// audit before the row disappears
	ctl.Audit.LogDelete(middleware.CurrentUser(c), room, services.MetaFromContext(c))

	if err := ctl.Rooms.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "room deleted")
}

func (ctl *RoomController) applyImages(c *gin.Context, room *models.Room, payload roomPayload) {
	if payload.MainImageBase64 != "" {
		path, err := ctl.Images.SaveBase64Image(payload.MainImageBase64, "rooms")
		if err != nil {
			ctl.Log.WithError(err).Warn("failed to store room main image")
		} else {
			room.MainImage = path
		}
	}
	for _, b64 := range payload.GalleryBase64 {
		path, err := ctl.Images.SaveBase64Image(b64, "rooms")
		if err != nil {
			ctl.Log.WithError(err).Warn("failed to store room gallery image")
			continue
		}
		appendGalleryImage(&room.GalleryImages, path)
	}
}
