package initialize

import (
	"collectgames/config"
	. "collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

func intPtr(i int) *int {
	return &i
}

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeConsoles(db, log); err != nil {
		return log.Err("failed to initialize consoles", err)
	}

	log.Info("Table initialization complete")
	return nil
}

// initializeConsoles inserts any reference console missing by name. Rows
// edited through the API are left alone.
func initializeConsoles(db *gorm.DB, log logger.Logger) error {
	log = log.Function("initializeConsoles")
	log.Info("Initializing console reference data")

	consoles := GetConsolesData()

	created := 0
	for _, console := range consoles {
		var existing Console
		if err := db.Where("name = ?", console.Name).Limit(1).Find(&existing).Error; err != nil {
			return log.Err("failed to look up console", err, "name", console.Name)
		}
		if existing.ID != 0 {
			log.Debug("Console already exists", "name", console.Name)
			continue
		}

		if err := db.Create(&console).Error; err != nil {
			return log.Err("failed to create console", err, "name", console.Name)
		}
		created++
	}

	log.Info("Console reference data initialized", "count", len(consoles), "created", created)
	return nil
}

func GetConsolesData() []Console {
	return []Console{
		{Name: "NES", Manufacturer: "Nintendo", Type: ConsoleTypeHome, ReleaseYear: intPtr(1985)},
		{Name: "SNES", Manufacturer: "Nintendo", Type: ConsoleTypeHome, ReleaseYear: intPtr(1991)},
		{Name: "Nintendo 64", Manufacturer: "Nintendo", Type: ConsoleTypeHome, ReleaseYear: intPtr(1996)},
		{Name: "GameCube", Manufacturer: "Nintendo", Type: ConsoleTypeHome, ReleaseYear: intPtr(2001)},
		{Name: "Wii", Manufacturer: "Nintendo", Type: ConsoleTypeHome, ReleaseYear: intPtr(2006)},
		{Name: "Wii U", Manufacturer: "Nintendo", Type: ConsoleTypeHome, ReleaseYear: intPtr(2012)},
		{Name: "Switch", Manufacturer: "Nintendo", Type: ConsoleTypeHybrid, ReleaseYear: intPtr(2017)},
		{Name: "Game Boy", Manufacturer: "Nintendo", Type: ConsoleTypeHandheld, ReleaseYear: intPtr(1989)},
		{Name: "Game Boy Advance", Manufacturer: "Nintendo", Type: ConsoleTypeHandheld, ReleaseYear: intPtr(2001)},
		{Name: "Nintendo DS", Manufacturer: "Nintendo", Type: ConsoleTypeHandheld, ReleaseYear: intPtr(2004)},
		{Name: "Nintendo 3DS", Manufacturer: "Nintendo", Type: ConsoleTypeHandheld, ReleaseYear: intPtr(2011)},
		{Name: "Master System", Manufacturer: "Sega", Type: ConsoleTypeHome, ReleaseYear: intPtr(1986)},
		{Name: "Genesis", Manufacturer: "Sega", Type: ConsoleTypeHome, ReleaseYear: intPtr(1989)},
		{Name: "Saturn", Manufacturer: "Sega", Type: ConsoleTypeHome, ReleaseYear: intPtr(1995)},
		{Name: "Dreamcast", Manufacturer: "Sega", Type: ConsoleTypeHome, ReleaseYear: intPtr(1999)},
		{Name: "Game Gear", Manufacturer: "Sega", Type: ConsoleTypeHandheld, ReleaseYear: intPtr(1991)},
		{Name: "PlayStation", Manufacturer: "Sony", Type: ConsoleTypeHome, ReleaseYear: intPtr(1995)},
		{Name: "PlayStation 2", Manufacturer: "Sony", Type: ConsoleTypeHome, ReleaseYear: intPtr(2000)},
		{Name: "PlayStation 3", Manufacturer: "Sony", Type: ConsoleTypeHome, ReleaseYear: intPtr(2006)},
		{Name: "PlayStation 4", Manufacturer: "Sony", Type: ConsoleTypeHome, ReleaseYear: intPtr(2013)},
		{Name: "PlayStation 5", Manufacturer: "Sony", Type: ConsoleTypeHome, ReleaseYear: intPtr(2020)},
		{Name: "PSP", Manufacturer: "Sony", Type: ConsoleTypeHandheld, ReleaseYear: intPtr(2005)},
		{Name: "PS Vita", Manufacturer: "Sony", Type: ConsoleTypeHandheld, ReleaseYear: intPtr(2012)},
		{Name: "Xbox", Manufacturer: "Microsoft", Type: ConsoleTypeHome, ReleaseYear: intPtr(2001)},
		{Name: "Xbox 360", Manufacturer: "Microsoft", Type: ConsoleTypeHome, ReleaseYear: intPtr(2005)},
		{Name: "Xbox One", Manufacturer: "Microsoft", Type: ConsoleTypeHome, ReleaseYear: intPtr(2013)},
		{Name: "Xbox Series X|S", Manufacturer: "Microsoft", Type: ConsoleTypeHome, ReleaseYear: intPtr(2020)},
		{Name: "TurboGrafx-16", Manufacturer: "NEC", Type: ConsoleTypeHome, ReleaseYear: intPtr(1989)},
		{Name: "Neo Geo AES", Manufacturer: "SNK", Type: ConsoleTypeHome, ReleaseYear: intPtr(1990)},
		{Name: "Atari 2600", Manufacturer: "Atari", Type: ConsoleTypeHome, ReleaseYear: intPtr(1977)},
	}
}
