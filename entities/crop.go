package entities

import "time"

const (
	CropStatusActive    = "active"
	CropStatusHarvested = "harvested"
	CropStatusFailed    = "failed"
)

type Crop struct {
	CropID              uint       `gorm:"primaryKey" json:"crop_id"`
	FarmID              uint       `json:"farm_id" gorm:"index"`
	CropType            string     `json:"crop_type"` // wheat|rice|sugarcane|...
	Variety             string     `json:"variety"`
	AreaAcres           float64    `json:"area_acres"`
	PlantingDate        time.Time  `json:"planting_date"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date"`
	CurrentStage        string     `json:"current_stage"` // cached, may be stale
	Status              string     `json:"status"`        // active|harvested|failed

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaysSincePlanting may be negative when planting is in the future.
func (c *Crop) DaysSincePlanting(today time.Time) int {
	return int(Midnight(today).Sub(Midnight(c.PlantingDate)).Hours() / 24)
}

func (c *Crop) DaysToHarvest(today time.Time) (int, bool) {
	if c.ExpectedHarvestDate == nil {
		return 0, false
	}
	return int(Midnight(*c.ExpectedHarvestDate).Sub(Midnight(today)).Hours() / 24), true
}

// Midnight truncates t to its UTC calendar day. Scheduled dates are stored
// at day granularity so that the (crop, type, date) dedupe key compares equal
// across invocations within the same day.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
