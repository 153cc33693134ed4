package domain

import "math"

type EngineType string

const (
	EngineDiesel   EngineType = "diesel"
	EnginePetrol   EngineType = "petrol"
	EngineHybrid   EngineType = "hybrid"
	EngineElectric EngineType = "electric"
)

var EngineTypes = []EngineType{EngineDiesel, EnginePetrol, EngineHybrid, EngineElectric}

func (e EngineType) Valid() bool {
	for _, t := range EngineTypes {
		if e == t {
			return true
		}
	}
	return false
}

// Fixed conversion factors between the two power units. The round trip is
// lossy: 100 hp -> 74 kW -> 101 hp.
const (
	hpToKw = 0.7355
	kwToHp = 1.3596
)

func KilowattsFromHorsepower(hp int) int {
	return int(math.Round(float64(hp) * hpToKw))
}

func HorsepowerFromKilowatts(kw int) int {
	return int(math.Round(float64(kw) * kwToHp))
}

type Car struct {
	ID             string     `json:"id"`
	NumberPlate    string     `json:"numberPlate"`
	VIN            string     `json:"vin"`
	Brand          string     `json:"brand"`
	Model          string     `json:"model"`
	Year           int        `json:"year"`
	EngineType     EngineType `json:"engineType"`
	EngineCapacity int        `json:"engineCapacity"`
	Horsepower     int        `json:"horsepower"`
	Kilowatts      int        `json:"kilowatts"`
}

type Client struct {
	ID           string   `json:"id"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	PhoneNumbers []string `json:"phoneNumbers"`
	IsActive     bool     `json:"isActive"`
	Cars         []Car    `json:"cars"`
}

type ClientDTO struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	PhoneNumbers []string `json:"phoneNumbers"`
}

type CarDTO struct {
	NumberPlate    string `json:"numberPlate"`
	VIN            string `json:"vin"`
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	EngineType     string `json:"engineType"`
	EngineCapacity int    `json:"engineCapacity"`
	Horsepower     int    `json:"horsepower"`
	Kilowatts      int    `json:"kilowatts"`
}
