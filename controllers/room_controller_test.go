package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resort-backend/models"
	"resort-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRoomTestController(t *testing.T) (*RoomController, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:roomctl?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.ActivityLog{}))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	ctl := NewRoomController(
		services.NewRoomService(db),
		services.NewImageService(t.TempDir(), log),
		services.NewActivityLogService(db, log),
		log,
	)
	return ctl, db
}

func TestPatchRoom_KeepsUnsentFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctl, db := newRoomTestController(t)

	room := models.Room{
		RoomNumber:    "301",
		RoomType:      "Suite",
		PricePerNight: decimal.NewFromInt(4000),
		Capacity:      4,
		Status:        "AVAILABLE",
	}
	require.NoError(t, db.Create(&room).Error)

	router := gin.New()
	router.PATCH("/rooms/:id", ctl.Patch)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/rooms/1", strings.NewReader(`{"pricePerNight": 4500}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Room
	require.NoError(t, db.First(&reloaded, room.ID).Error)
	assert.Equal(t, "4500.00", reloaded.PricePerNight.StringFixed(2))
	assert.Equal(t, "301", reloaded.RoomNumber)
	assert.Equal(t, "Suite", reloaded.RoomType)
	assert.Equal(t, 4, reloaded.Capacity)
	assert.Equal(t, "AVAILABLE", reloaded.Status)

	// patching status alone leaves the new price in place
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/rooms/1", strings.NewReader(`{"status": "MAINTENANCE"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&reloaded, room.ID).Error)
	assert.Equal(t, "MAINTENANCE", reloaded.Status)
	assert.Equal(t, "4500.00", reloaded.PricePerNight.StringFixed(2))
}
