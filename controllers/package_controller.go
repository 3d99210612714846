package controllers

import (
	"net/http"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PackageController struct {
	Packages *services.PackageService
	Images   *services.ImageService
	Log      *logrus.Logger
}

func NewPackageController(packages *services.PackageService, images *services.ImageService, log *logrus.Logger) *PackageController {
	return &PackageController{Packages: packages, Images: images, Log: log}
}

type packagePayload struct {
	services.PackageInput

	MainImageBase64 string   `json:"mainImageBase64"`
	GalleryBase64   []string `json:"galleryImagesBase64"`
}

func (ctl *PackageController) Index(c *gin.Context) {
	filters := services.PackageFilters{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}
	if featured := c.Query("featured"); featured != "" {
		value := featured == "true" || featured == "1"
		filters.Featured = &value
	}

	packages, err := ctl.Packages.List(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	stats, err := ctl.Packages.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"packages": packages,
		"stats":    stats,
	})
}

// Available lists the packages guests can book right now.
func (ctl *PackageController) Available(c *gin.Context) {
	packages, err := ctl.Packages.Available()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, packages)
}

func (ctl *PackageController) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pkg, err := ctl.Packages.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pkg)
}

func (ctl *PackageController) Create(c *gin.Context) {
	var payload packagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	pkg, err := ctl.Packages.Create(payload.PackageInput)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if ctl.storeImages(c, pkg.ID, payload) {
		pkg, _ = ctl.Packages.Get(pkg.ID)
	}

	utils.JSONSuccess(c, http.StatusCreated, pkg)
}

func (ctl *PackageController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := ctl.Packages.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}

	var payload packagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	pkg, err := ctl.Packages.Update(id, payload.PackageInput)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if ctl.storeImages(c, pkg.ID, payload) {
		pkg, _ = ctl.Packages.Get(pkg.ID)
	}

	utils.JSONSuccess(c, http.StatusOK, pkg)
}

func (ctl *PackageController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Packages.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "package deleted")
}

func (ctl *PackageController) ToggleStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pkg, err := ctl.Packages.ToggleStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pkg)
}

func (ctl *PackageController) ToggleFeatured(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pkg, err := ctl.Packages.ToggleFeatured(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pkg)
}

func (ctl *PackageController) Duplicate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pkg, err := ctl.Packages.Duplicate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, pkg)
}

type removeImagePayload struct {
	Image string `json:"image"`
}

func (ctl *PackageController) RemoveGalleryImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload removeImagePayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Image == "" {
		utils.JSONError(c, http.StatusBadRequest, "image is required")
		return
	}

	pkg, err := ctl.Packages.RemoveGalleryImage(id, payload.Image)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pkg)
}

// storeImages saves uploaded base64 images and attaches them to the package.
// Reports whether anything was written.
func (ctl *PackageController) storeImages(c *gin.Context, id uint, payload packagePayload) bool {
	pkg, err := ctl.Packages.Get(id)
	if err != nil {
		return false
	}

	changed := false
	if payload.MainImageBase64 != "" {
		path, err := ctl.Images.SaveBase64Image(payload.MainImageBase64, "packages")
		if err != nil {
			ctl.Log.WithError(err).Warn("failed to store package main image")
		} else {
			pkg.MainImage = path
			changed = true
		}
	}
	for _, b64 := range payload.GalleryBase64 {
		path, err := ctl.Images.SaveBase64Image(b64, "packages")
		if err != nil {
			ctl.Log.WithError(err).Warn("failed to store package gallery image")
			continue
		}
		pkg.AddGalleryImage(path)
		changed = true
	}

	if changed {
		if err := ctl.Packages.DB.Model(pkg).Updates(map[string]interface{}{
			"main_image":     pkg.MainImage,
			"gallery_images": pkg.GalleryImages,
		}).Error; err != nil {
			ctl.Log.WithError(err).Warn("failed to persist package images")
			return false
		}
	}
	return changed
}
