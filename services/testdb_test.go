package services

import (
	"fmt"
	"strconv"
	"testing"

	"resort-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Tour{},
		&models.Food{},
		&models.Package{},
		&models.Reservation{},
		&models.Payment{},
		&models.ActivityLog{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, roles ...string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		FullName: "Test User",
		Username: email,
		Email:    email,
		Password: string(hash),
	}
	if len(roles) == 0 {
		roles = []string{models.RoleGuest}
	}
	user.SetRoles(roles)
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRoom(t *testing.T, db *gorm.DB, number string, price int64) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber:    number,
		RoomType:      "Deluxe",
		PricePerNight: decimal.NewFromInt(price),
		Capacity:      2,
		Status:        "AVAILABLE",
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func createTestFood(t *testing.T, db *gorm.DB, name string, price int64) *models.Food {
	t.Helper()
	food := &models.Food{
		Name:           name,
		Category:       "Mains",
		Price:          decimal.NewFromInt(price),
		AvailableStock: 10,
		Status:         "AVAILABLE",
	}
	require.NoError(t, db.Create(food).Error)
	return food
}

func createTestTour(t *testing.T, db *gorm.DB, name string, price int64) *models.Tour {
	t.Helper()
	tour := &models.Tour{
		Name:           name,
		Location:       "North Bay",
		Price:          decimal.NewFromInt(price),
		AvailableSlots: 20,
		Status:         "ACTIVE",
	}
	require.NoError(t, db.Create(tour).Error)
	return tour
}
