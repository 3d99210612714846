package controllers

import (
	"net/http"
	"strings"

	"resort-backend/middleware"
	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type FoodController struct {
	Foods  *services.FoodService
	Images *services.ImageService
	Audit  *services.ActivityLogService
	Log    *logrus.Logger
}

func NewFoodController(foods *services.FoodService, images *services.ImageService, audit *services.ActivityLogService, log *logrus.Logger) *FoodController {
	return &FoodController{Foods: foods, Images: images, Audit: audit, Log: log}
}

type foodPayload struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	AvailableStock int             `json:"availableStock"`
	Status         string          `json:"status"`

	MainImageBase64 string   `json:"mainImageBase64"`
	GalleryBase64   []string `json:"galleryImagesBase64"`
}

func (p foodPayload) apply(food *models.Food) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return errRequired("food name is required")
	}

	food.Name = name
	food.Description = p.Description
	food.Price = p.Price
	food.Category = p.Category
	food.AvailableStock = p.AvailableStock
	food.Status = p.Status
	return nil
}

func (ctl *FoodController) Index(c *gin.Context) {
	foods, err := ctl.Foods.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, foods)
}

func (ctl *FoodController) Available(c *gin.Context) {
	foods, err := ctl.Foods.Available()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, foods)
}

func (ctl *FoodController) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	food, err := ctl.Foods.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, food)
}

func (ctl *FoodController) Create(c *gin.Context) {
	var payload foodPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	var food models.Food
	if err := payload.apply(&food); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctl.applyImages(&food, payload)

	if err := ctl.Foods.Create(&food); err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogCreate(middleware.CurrentUser(c), &food, services.MetaFromContext(c))
	utils.JSONSuccess(c, http.StatusCreated, food)
}

func (ctl *FoodController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	food, err := ctl.Foods.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var payload foodPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	before := food.AuditFields()
	if err := payload.apply(food); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctl.applyImages(food, payload)

	if err := ctl.Foods.Update(food); err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogUpdate(middleware.CurrentUser(c), food, before, services.MetaFromContext(c))
	utils.JSONSuccess(c, http.StatusOK, food)
}

func (ctl *FoodController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	food, err := ctl.Foods.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogDelete(middleware.CurrentUser(c), food, services.MetaFromContext(c))

	if err := ctl.Foods.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "food item deleted")
}

func (ctl *FoodController) applyImages(food *models.Food, payload foodPayload) {
	if payload.MainImageBase64 != "" {
		path, err := ctl.Images.SaveBase64Image(payload.MainImageBase64, "foods")
		if err != nil {
			ctl.Log.WithError(err).Warn("failed to store food main image")
		} else {
			food.MainImage = path
		}
	}
	for _, b64 := range payload.GalleryBase64 {
		path, err := ctl.Images.SaveBase64Image(b64, "foods")
		if err != nil {
			ctl.Log.WithError(err).Warn("failed to store food gallery image")
			continue
		}
		appendGalleryImage(&food.GalleryImages, path)
	}
}
