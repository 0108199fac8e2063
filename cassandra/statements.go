package cassandra

import (
	"fmt"
	"strings"

	"github.com/gocql/gocql"

	"github.com/herbverse/plantdb"
)

const tableName = "plants"

type column struct {
	name    string
	cqlType string
}

// plantColumns is the plants table layout. Order matters: rowValues and scanTargets follow it.
var plantColumns = []column{
	{"id", "uuid"},
	{"common_name", "text"},
	{"botanical_name", "text"},
	{"family", "text"},
	{"description", "text"},
	{"medicinal_uses", "list<text>"},
	{"health_benefits", "list<text>"},
	{"cultivation_method", "text"},
	{"watering_needs", "text"},
	{"sunlight_requirements", "text"},
	{"soil_type", "text"},
	{"climate_zones", "list<text>"},
	{"region", "list<text>"},
	{"difficulty_level", "text"},
	{"climate_resilience", "text"},
	{"growth_rate", "text"},
	{"care_tips", "list<text>"},
	{"precautions", "list<text>"},
	{"harvesting_guide", "text"},
	{"max_height", "double"},
	{"co2_absorption_rate", "double"},
	{"image_url", "text"},
	{"model_3d_url", "text"},
	{"is_featured", "boolean"},
}

func columnNames() string {
	names := make([]string, len(plantColumns))
	for i, c := range plantColumns {
		names[i] = c.name
	}
	return strings.Join(names, ", ")
}

func createKeyspaceStatement(keyspace, replicationClause string) string {
	return fmt.Sprintf("CREATE KEYSPACE IF NOT EXISTS %s WITH REPLICATION = %s;", keyspace, replicationClause)
}

func createTableStatement(keyspace string) string {
	defs := make([]string, len(plantColumns))
	for i, c := range plantColumns {
		defs[i] = c.name + " " + c.cqlType
		if i == 0 {
			defs[i] += " PRIMARY KEY"
		}
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.%s (%s);", keyspace, tableName, strings.Join(defs, ", "))
}

func selectStatement(keyspace string) string {
	return fmt.Sprintf("SELECT %s FROM %s.%s;", columnNames(), keyspace, tableName)
}

func insertStatement(keyspace string) string {
	marks := strings.TrimSuffix(strings.Repeat("?,", len(plantColumns)), ",")
	return fmt.Sprintf("INSERT INTO %s.%s (%s) VALUES(%s) IF NOT EXISTS;", keyspace, tableName, columnNames(), marks)
}

func deleteStatement(keyspace string) string {
	return fmt.Sprintf("DELETE FROM %s.%s WHERE id = ? IF EXISTS;", keyspace, tableName)
}

// rowValues returns rec's bind values in plantColumns order.
func rowValues(rec *plantdb.PlantRecord) []interface{} {
	return []interface{}{
		gocql.UUID(rec.ID),
		rec.CommonName,
		rec.BotanicalName,
		rec.Family,
		rec.Description,
		rec.MedicinalUses,
		rec.HealthBenefits,
		rec.CultivationMethod,
		rec.WateringNeeds,
		rec.SunlightRequirements,
		rec.SoilType,
		rec.ClimateZones,
		rec.Region,
		rec.DifficultyLevel,
		rec.ClimateResilience,
		rec.GrowthRate,
		rec.CareTips,
		rec.Precautions,
		rec.HarvestingGuide,
		rec.MaxHeight,
		rec.CO2AbsorptionRate,
		rec.ImageURL,
		rec.Model3DURL,
		rec.IsFeatured,
	}
}

// scanTargets returns pointers into rec in plantColumns order.
func scanTargets(rec *plantdb.PlantRecord) []interface{} {
	return []interface{}{
		(*gocql.UUID)(&rec.ID),
		&rec.CommonName,
		&rec.BotanicalName,
		&rec.Family,
		&rec.Description,
		&rec.MedicinalUses,
		&rec.HealthBenefits,
		&rec.CultivationMethod,
		&rec.WateringNeeds,
		&rec.SunlightRequirements,
		&rec.SoilType,
		&rec.ClimateZones,
		&rec.Region,
		&rec.DifficultyLevel,
		&rec.ClimateResilience,
		&rec.GrowthRate,
		&rec.CareTips,
		&rec.Precautions,
		&rec.HarvestingGuide,
		&rec.MaxHeight,
		&rec.CO2AbsorptionRate,
		&rec.ImageURL,
		&rec.Model3DURL,
		&rec.IsFeatured,
	}
}
