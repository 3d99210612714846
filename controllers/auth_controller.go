package controllers

import (
	"net/http"

	"resort-backend/middleware"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	Users *services.UserService
	Audit *services.ActivityLogService
	Log   *logrus.Logger
}

func NewAuthController(users *services.UserService, audit *services.ActivityLogService, log *logrus.Logger) *AuthController {
	return &AuthController{Users: users, Audit: audit, Log: log}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := ctl.Users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if services.IsBusinessRule(err) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondServiceError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		ctl.Log.WithError(err).Error("failed to sign token")
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	ctl.Audit.LogLogin(user, services.MetaFromContext(c))

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"username": user.Username,
			"email":    user.Email,
			"roles":    user.RoleList(),
		},
	})
}

func (ctl *AuthController) Register(c *gin.Context) {
	var payload services.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	user, err := ctl.Users.Register(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogCreate(user, user, services.MetaFromContext(c))
	utils.JSONSuccess(c, http.StatusCreated, user)
}

// Logout only records the event; the token itself simply expires.
func (ctl *AuthController) Logout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user != nil {
		ctl.Audit.LogLogout(user, services.MetaFromContext(c))
	}
	utils.JSONMessage(c, http.StatusOK, "logged out")
}

func (ctl *AuthController) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (ctl *AuthController) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var payload services.ProfileUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	before := user.AuditFields()
	if err := ctl.Users.UpdateProfile(user, payload); err != nil {
		respondServiceError(c, err)
		return
	}

	ctl.Audit.LogUpdate(user, user, before, services.MetaFromContext(c))
	utils.JSONSuccess(c, http.StatusOK, user)
}

type changePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (ctl *AuthController) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var payload changePasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := ctl.Users.ChangePassword(user, payload.CurrentPassword, payload.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "password changed")
}
