package seed

import (
	"time"

	"girasol/config"
	. "girasol/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []User{
		{
			Name:  "Admin User",
			Email: "admin@example.com",
			Role:  RoleAdmin,
			Tasks: datatypes.NewJSONSlice(AllTaskTypes()),
		},
		{
			Name:  "Carla Mendes",
			Email: "carla@example.com",
			Role:  RolePersonnel,
			Tasks: datatypes.NewJSONSlice([]TaskType{TaskCleaning, TaskLaundry}),
		},
		{
			Name:  "Jorge Silva",
			Email: "jorge@example.com",
			Role:  RolePersonnel,
			Tasks: datatypes.NewJSONSlice([]TaskType{TaskConcierge}),
		},
	}

	for i := range users {
		if err := users[i].SetPassword("password"); err != nil {
			return log.Err("failed to hash seed password", err)
		}

		var existing User
		if err := db.First(&existing, "email = ?", users[i].Email).Error; err == nil {
			log.Info("User already exists", "email", users[i].Email)
			users[i] = existing
			continue
		}
		if err := db.Create(&users[i]).Error; err != nil {
			return log.Err("failed to create user", err, "email", users[i].Email)
		}
	}

	cleaning := users[1].ID.String()
	concierge := users[2].ID.String()

	apartments := []Apartment{
		{
			Name:    "Sunset Loft",
			Address: "Rua das Flores 12, Lisboa",
			Personnel: PersonnelMap{
				TaskCleaning:  cleaning,
				TaskLaundry:   cleaning,
				TaskConcierge: concierge,
			},
			Status: CleaningClean,
		},
		{
			Name:    "Harbor View Studio",
			Address: "Avenida do Mar 8, Porto",
			Personnel: PersonnelMap{
				TaskCleaning: cleaning,
			},
			Status: CleaningToBeCleaned,
		},
	}

	for i := range apartments {
		var existing Apartment
		if err := db.First(&existing, "name = ?", apartments[i].Name).Error; err == nil {
			apartments[i] = existing
			continue
		}
		if err := db.Create(&apartments[i]).Error; err != nil {
			return log.Err("failed to create apartment", err, "name", apartments[i].Name)
		}
	}

	now := time.Now()
	reservations := []Reservation{
		{
			ApartmentID: apartments[0].ID,
			TenantName:  "Familia Duarte",
			GuestCount:  4,
			Arrival:     now.AddDate(0, 0, -3),
			Departure:   now.AddDate(0, 0, -1),
			Personnel:   apartments[0].Personnel.Clone(),
			Status:      ReservationCleaning,
		},
		{
			ApartmentID: apartments[1].ID,
			TenantName:  "Anna Brandt",
			GuestCount:  2,
			Arrival:     now.AddDate(0, 0, 1),
			Departure:   now.AddDate(0, 0, 5),
			Personnel:   apartments[1].Personnel.Clone(),
			Status:      ReservationCleaning,
		},
	}

	for i := range reservations {
		var existing Reservation
		err := db.First(
			&existing,
			"apartment_id = ? AND tenant_name = ?",
			reservations[i].ApartmentID,
			reservations[i].TenantName,
		).Error
		if err == nil {
			continue
		}
		if err := db.Create(&reservations[i]).Error; err != nil {
			return log.Err("failed to create reservation", err, "tenant", reservations[i].TenantName)
		}
	}

	log.Info("Seed complete")
	return nil
}
