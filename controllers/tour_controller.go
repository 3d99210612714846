package controllers

import (
	"net/http"
	"strings"
	"time"

	"resort-backend/middleware"
	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type TourController struct {
	Tours  *services.TourService
	Images *services.ImageService
	Audit  *services.ActivityLogService
	Log    *logrus.Logger
}

func NewTourController(tours *services.TourService, images *services.ImageService, audit *services.ActivityLogService, log *logrus.Logger) *TourController {
	return &TourController{Tours: tours, Images: images, Audit: audit, Log: log}
}

type tourPayload struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Location       string          `json:"location"`
	Price          decimal.Decimal `json:"price"`
	Duration       string          `json:"duration"`
	ScheduleDate   string          `json:"scheduleDate"`
	AvailableSlots int             `json:"availableSlots"`
	Status         string          `json:"status"`

	MainImageBase64 string   `json:"mainImageBase64"`
	GalleryBase64   []string `json:"galleryImagesBase64"`
}

func (p tourPayload) apply(tour *models.Tour) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return errRequired("tour name is required")
	}

	tour.Name = name
	tour.Description = p.Description
	tour.Location = p.Location
	tour.Price = p.Price
	tour.Duration = p.Duration
	tour.AvailableSlots = p.AvailableSlots
	tour.Status = p.Status

	if strings.TrimSpace(p.ScheduleDate) != "" {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(p.ScheduleDate))
		if err != nil {
			return errRequired("invalid schedule date")
		}
		tour.ScheduleDate = &date
	} else {
		tour.ScheduleDate = nil
	}
	return nil
}

func (ctl *TourController) Index(c *gin.Context) {
	tours, err := ctl.Tours.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tours)
}

func (ctl *TourController) Available(c *gin.Context) {
	tours, err := ctl.Tours.Available()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tours)
}

func (ctl *TourController) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tour, err := ctl.Tours.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tour)
}

func (ctl *TourController) Create(c *gin.Context) {
	var payload tourPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	var tour models.Tour
	if err := payload.apply(&tour); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctl.applyImages(&tour, payload)

	if err := ctl.Tours.Create(&tour); err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogCreate(middleware.CurrentUser(c), &tour, services.MetaFromContext(c))
	utils.JSONSuccess(c, http.StatusCreated, tour)
}

func (ctl *TourController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tour, err := ctl.Tours.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var payload tourPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	before := tour.AuditFields()
	if err := payload.apply(tour); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctl.applyImages(tour, payload)

	if err := ctl.Tours.Update(tour); err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogUpdate(middleware.CurrentUser(c), tour, before, services.MetaFromContext(c))
	utils.JSONSuccess(c, http.StatusOK, tour)
}

func (ctl *TourController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tour, err := ctl.Tours.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogDelete(middleware.CurrentUser(c), tour, services.MetaFromContext(c))

	if err := ctl.Tours.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "tour deleted")
}

func (ctl *TourController) applyImages(tour *models.Tour, payload tourPayload) {
	if payload.MainImageBase64 != "" {
		path, err := ctl.Images.SaveBase64Image(payload.MainImageBase64, "tours")
		if err != nil {
			ctl.Log.WithError(err).Warn("failed to store tour main image")
		} else {
			tour.MainImage = path
		}
	}
	for _, b64 := range payload.GalleryBase64 {
		path, err := ctl.Images.SaveBase64Image(b64, "tours")
		if err != nil {
			ctl.Log.WithError(err).Warn("failed to store tour gallery image")
			continue
		}
		appendGalleryImage(&tour.GalleryImages, path)
	}
}
