package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotelsite-backend/models"
	"hotelsite-backend/utils"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotelsite_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Room{},
		&models.RoomImage{},
		&models.Booking{},
		&models.TeamMember{},
		&models.GalleryImage{},
		&models.ContactMessage{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase provisions the default admin, the initial room catalog and
// the About Us team, and backfills a profile for any user predating the
// profile rollout. Safe to run on every boot.
func SeedDatabase() {
	// ---------------- Default admin ----------------
	var adminCount int64
	DB.Model(&models.User{}).Where("username = ?", "admin").Count(&adminCount)
	if adminCount == 0 {
		hash, err := utils.HashPassword(envOrDefault("DEFAULT_ADMIN_PASSWORD", "Admin123!"))
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				Username:     "admin",
				Email:        "admin@example.com",
				PasswordHash: hash,
				IsStaff:      true,
				IsSuperuser:  true,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else if err := DB.Create(&models.Profile{UserID: admin.ID}).Error; err != nil {
				log.Printf("warning: failed to create default admin profile: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Profile backfill ----------------
	var orphans []models.User
	if err := DB.Where("id NOT IN (?)", DB.Model(&models.Profile{}).Select("user_id")).Find(&orphans).Error; err == nil {
		for _, user := range orphans {
			if err := DB.Create(&models.Profile{UserID: user.ID}).Error; err != nil {
				log.Printf("warning: failed to backfill profile for user %d: %v", user.ID, err)
			}
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		floor := func(n int) *int { return &n }
		type roomSeed struct {
			Number   string
			Type     string
			Price    float64
			Capacity int
			Floor    int
		}
		seeds := []roomSeed{
			{"101", models.RoomTypeDouble, 4500, 2, 1},
			{"102", models.RoomTypeSingle, 2500, 1, 1},
			{"201", models.RoomTypeFamilySuite, 9000, 4, 2},
			{"202", models.RoomTypeDouble, 5500, 2, 2},
			{"301", models.RoomTypeDouble, 7500, 2, 3},
			{"302", models.RoomTypeFamilySuite, 10500, 3, 3},
			{"401", models.RoomTypeDouble, 6800, 2, 4},
			{"402", models.RoomTypeSingle, 1800, 1, 4},
			{"501", models.RoomTypeDouble, 11500, 2, 5},
			{"502", models.RoomTypeFamilySuite, 12000, 4, 5},
		}
		rooms := make([]models.Room, 0, len(seeds))
		for _, s := range seeds {
			rooms = append(rooms, models.Room{
				Number:             s.Number,
				RoomType:           s.Type,
				PricePerNight:      s.Price,
				Capacity:           s.Capacity,
				IsAvailable:        true,
				Floor:              floor(s.Floor),
				Description:        "Comfortable room with modern amenities.",
				Amenities:          []byte(`["WiFi","Air Conditioner","TV"]`),
				SpecialFeatures:    []byte(`["Great view"]`),
				ReviewsCount:       20,
				CancellationPolicy: "Free cancellation up to 24 hours before check-in.",
			})
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	// ---------------- Team members ----------------
	var teamCount int64
	DB.Model(&models.TeamMember{}).Count(&teamCount)
	if teamCount == 0 {
		members := []models.TeamMember{
			{Name: "Sujal Shrestha", Role: "General Manager", Order: 1,
				ImageURL: "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?w=800&q=80"},
			{Name: "Prakash Poudel", Role: "Head Chef", Order: 2,
				ImageURL: "https://images.unsplash.com/photo-1524592094714-0f0654e20314?w=800&q=80"},
			{Name: "Anisha Adhikari", Role: "Spa Manager", Order: 3,
				ImageURL: "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?w=800&q=80"},
			{Name: "Sandhya Basnet", Role: "Concierge Lead", Order: 4,
				ImageURL: "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?w=800&q=80"},
		}
		if err := DB.Create(&members).Error; err != nil {
			log.Printf("warning: failed to seed team members: %v", err)
		} else {
			log.Println("Team members seeded")
		}
	}
}
