package config

import (
	"log"
	"os"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	driver "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func resolveMySQLDSN() string {
	cfg := driver.NewConfig()
	cfg.User = utils.EnvOrDefault("DB_USER", "root")
	cfg.Passwd = utils.EnvOrDefault("DB_PASS", "")
	cfg.Net = "tcp"
	cfg.Addr = utils.EnvOrDefault("DB_HOST", "127.0.0.1") + ":" + utils.EnvOrDefault("DB_PORT", "3306")
	cfg.DBName = utils.EnvOrDefault("DB_NAME", "resort_db")
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func ConnectDatabase() error {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(resolveMySQLDSN()), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Tour{},
		&models.Food{},
		&models.Package{},
		&models.Reservation{},
		&models.Payment{},
		&models.ActivityLog{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

func SeedDatabase() {
	// ---------------- Admin user ----------------
	var adminCount int64
	DB.Model(&models.User{}).Where("roles LIKE ?", "%"+models.RoleAdmin+"%").Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(utils.EnvOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				FullName: "Resort Admin",
				Username: "admin",
				Email:    utils.EnvOrDefault("ADMIN_EMAIL", "admin@resort.local"),
				Password: string(hash),
			}
			admin.SetRoles([]string{models.RoleAdmin})
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", RoomType: "Standard", PricePerNight: decimal.NewFromInt(1500), Capacity: 2, Status: "AVAILABLE"},
			{RoomNumber: "102", RoomType: "Deluxe", PricePerNight: decimal.NewFromInt(2500), Capacity: 3, Status: "AVAILABLE"},
			{RoomNumber: "201", RoomType: "Suite", PricePerNight: decimal.NewFromInt(4000), Capacity: 4, Status: "AVAILABLE"},
		}
		DB.Create(&rooms)
		log.Println("Rooms seeded")
	}

	// ---------------- Tours ----------------
	var tourCount int64
	DB.Model(&models.Tour{}).Count(&tourCount)
	if tourCount == 0 {
		tours := []models.Tour{
			{Name: "Island Hopping", Location: "North Bay", Price: decimal.NewFromInt(1200), Duration: "8 hours", AvailableSlots: 20, Status: "ACTIVE"},
			{Name: "Waterfall Trek", Location: "Inland Trail", Price: decimal.NewFromInt(800), Duration: "4 hours", AvailableSlots: 15, Status: "ACTIVE"},
		}
		DB.Create(&tours)
		log.Println("Tours seeded")
	}

	// ---------------- Foods ----------------
	var foodCount int64
	DB.Model(&models.Food{}).Count(&foodCount)
	if foodCount == 0 {
		foods := []models.Food{
			{Name: "Grilled Fish Platter", Category: "Mains", Price: decimal.NewFromInt(350), AvailableStock: 50, Status: "AVAILABLE"},
			{Name: "Tropical Fruit Bowl", Category: "Desserts", Price: decimal.NewFromInt(150), AvailableStock: 40, Status: "AVAILABLE"},
			{Name: "House Iced Tea", Category: "Drinks", Price: decimal.NewFromInt(80), AvailableStock: 100, Status: "AVAILABLE"},
		}
		DB.Create(&foods)
		log.Println("Foods seeded")
	}
}
