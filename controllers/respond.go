package controllers

import (
	"errors"
	"net/http"

	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func errRequired(msg string) error { return errors.New(msg) }

// respondServiceError maps service-layer failures onto HTTP responses.
// Business rule violations come back as 409 with the rule message so the
// frontend can show it as feedback; validation problems as 400.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case services.IsBusinessRule(err):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}
