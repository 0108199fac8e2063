package plantdb

import (
	"fmt"
	"strings"
)

// PlantRecord is one row of the plants table. The index reads CommonName for ordering and the
// textual fields for substring search; everything else is carried through untouched.
type PlantRecord struct {
	ID                   UUID     `json:"id"`
	CommonName           string   `json:"common_name"`
	BotanicalName        string   `json:"botanical_name"`
	Family               string   `json:"family"`
	Description          string   `json:"description"`
	MedicinalUses        []string `json:"medicinal_uses"`
	HealthBenefits       []string `json:"health_benefits"`
	CultivationMethod    string   `json:"cultivation_method"`
	WateringNeeds        string   `json:"watering_needs"`
	SunlightRequirements string   `json:"sunlight_requirements"`
	SoilType             string   `json:"soil_type"`
	ClimateZones         []string `json:"climate_zones"`
	Region               []string `json:"region"`
	DifficultyLevel      string   `json:"difficulty_level"`
	ClimateResilience    string   `json:"climate_resilience"`
	GrowthRate           string   `json:"growth_rate"`
	CareTips             []string `json:"care_tips"`
	Precautions          []string `json:"precautions"`
	HarvestingGuide      string   `json:"harvesting_guide"`

	MaxHeight         float64 `json:"max_height"`
	CO2AbsorptionRate float64 `json:"co2_absorption_rate"`
	ImageURL          string  `json:"image_url"`
	Model3DURL        string  `json:"model_3d_url"`
	IsFeatured        bool    `json:"is_featured"`
}

// Form defaults applied by Normalize when a new plant leaves these blank.
const (
	DefaultDifficultyLevel   = "Intermediate"
	DefaultClimateResilience = "Moderate"
	DefaultGrowthRate        = "Slow"
	DefaultMaxHeight         = 1
)

// NormalizedKey returns the ordering/equality key of a common name.
func NormalizedKey(commonName string) string {
	return strings.ToLower(commonName)
}

// Key returns the record's normalized key.
func (r *PlantRecord) Key() string {
	return NormalizedKey(r.CommonName)
}

// Validate checks the index precondition: a non-empty common name.
func (r *PlantRecord) Validate() error {
	if r == nil {
		return Error{Code: InvalidRecord, Err: fmt.Errorf("plant record is nil")}
	}
	if strings.TrimSpace(r.CommonName) == "" {
		return Error{Code: InvalidRecord, Err: fmt.Errorf("common name is required"), UserData: r.ID.String()}
	}
	return nil
}

// ValidateForInsert applies the admin insert form's rules: common and botanical names are both required.
func (r *PlantRecord) ValidateForInsert() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.BotanicalName) == "" {
		return Error{Code: InvalidRecord, Err: fmt.Errorf("common name and botanical name are required"), UserData: r.CommonName}
	}
	return nil
}

// Normalize trims text fields, drops blank list entries and fills the insert form's defaults.
func (r *PlantRecord) Normalize() {
	for _, s := range []*string{
		&r.CommonName, &r.BotanicalName, &r.Family, &r.Description, &r.CultivationMethod,
		&r.WateringNeeds, &r.SunlightRequirements, &r.SoilType, &r.DifficultyLevel,
		&r.ClimateResilience, &r.GrowthRate, &r.HarvestingGuide, &r.ImageURL, &r.Model3DURL,
	} {
		*s = strings.TrimSpace(*s)
	}
	for _, l := range []*[]string{
		&r.MedicinalUses, &r.HealthBenefits, &r.ClimateZones, &r.Region, &r.CareTips, &r.Precautions,
	} {
		*l = compact(*l)
	}
	if r.DifficultyLevel == "" {
		r.DifficultyLevel = DefaultDifficultyLevel
	}
	if r.ClimateResilience == "" {
		r.ClimateResilience = DefaultClimateResilience
	}
	if r.GrowthRate == "" {
		r.GrowthRate = DefaultGrowthRate
	}
	if r.MaxHeight <= 0 {
		r.MaxHeight = DefaultMaxHeight
	}
	if r.CO2AbsorptionRate < 0 {
		r.CO2AbsorptionRate = 0
	}
}

// SplitList turns a comma separated form value into a list field.
func SplitList(s string) []string {
	return compact(strings.Split(s, ","))
}

func compact(items []string) []string {
	r := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			r = append(r, item)
		}
	}
	return r
}
