package entities

import "time"

type Farm struct {
	FarmID    uint     `gorm:"primaryKey" json:"farm_id"`
	UserID    string   `json:"user_id" gorm:"index"`
	FarmName  string   `json:"farm_name"`
	AreaAcres float64  `json:"area_acres"`
	SoilType  string   `json:"soil_type"` // sand|loam|clay
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns the farm coordinates, ok=false when not set.
func (f *Farm) Location() (lat, lon float64, ok bool) {
	if f.Latitude == nil || f.Longitude == nil {
		return 0, 0, false
	}
	return *f.Latitude, *f.Longitude, true
}
