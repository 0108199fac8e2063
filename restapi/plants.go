package restapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/herbverse/plantdb"
	"github.com/herbverse/plantdb/avl"
	"github.com/herbverse/plantdb/catalog"
)

// Exporter writes a full catalog dump somewhere durable, e.g. an S3 bucket.
type Exporter func(ctx context.Context, records []*plantdb.PlantRecord) error

// Plants holds the handlers of the /plants resource.
type Plants struct {
	Catalog *catalog.Catalog
	// Export is optional; without it POST /plants/export answers 501.
	Export Exporter
}

// Register adds the /plants routes to r.
func (p *Plants) Register(r *Registry) error {
	for _, m := range []RestMethod{
		{GET, "/plants", p.List},
		{GET, "/plants/search", p.Search},
		{GET, "/plants/search/all", p.SearchAll},
		{GET, "/plants/filter", p.Filter},
		{GET, "/plants/stats", p.Stats},
		{POST, "/plants", p.Insert},
		{DELETE, "/plants/:name", p.Delete},
		{POST, "/plants/reload", p.Reload},
		{POST, "/plants/export", p.ExportSnapshot},
	} {
		if err := r.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// List godoc
// @Summary List returns every plant ordered by common name.
// @Schemes
// @Description List responds with all plants, ascending by default, as JSON.
// @Tags Plants
// @Produce json
// @Param order query string false "asc or desc" Enums(asc, desc)
// @Failure 400 {object} map[string]any
// @Success 200 {object} []plantdb.Entry
// @Router /plants [get]
func (p *Plants) List(c *gin.Context) {
	order, err := catalog.ParseOrder(c.Query("order"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, p.Catalog.List(order))
}

// Search godoc
// @Summary Search looks a plant up by common name.
// @Schemes
// @Description Search walks the index from the root and returns the first plant whose common name contains the key, with the number of nodes compared.
// @Tags Plants
// @Produce json
// @Param key query string true "Search term" minlength(1)
// @Failure 400 {object} map[string]any
// @Success 200 {object} catalog.SearchResult
// @Router /plants/search [get]
func (p *Plants) Search(c *gin.Context) {
	r, err := p.Catalog.Search(c.Query("key"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, r)
}

// SearchAll godoc
// @Summary SearchAll returns every plant mentioning a term.
// @Schemes
// @Description SearchAll scans every text and list field, ignoring case, and responds with the matches in ascending order.
// @Tags Plants
// @Produce json
// @Param q query string true "Search term" minlength(1)
// @Failure 400 {object} map[string]any
// @Success 200 {object} []plantdb.Entry
// @Router /plants/search/all [get]
func (p *Plants) SearchAll(c *gin.Context) {
	r, err := p.Catalog.SearchAll(c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, r)
}

// Filter godoc
// @Summary Filter returns the plants matching a CEL expression.
// @Schemes
// @Description Filter evaluates a boolean CEL expression over the variable plant, e.g. "India" in plant.region.
// @Tags Plants
// @Produce json
// @Param expr query string true "CEL expression"
// @Failure 400 {object} map[string]any
// @Success 200 {object} []plantdb.Entry
// @Router /plants/filter [get]
func (p *Plants) Filter(c *gin.Context) {
	r, err := p.Catalog.Filter(c.Query("expr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, r)
}

// Stats godoc
// @Summary Stats returns index statistics.
// @Schemes
// @Description Stats responds with the number of plants, the number of tree levels and the last search's comparisons.
// @Tags Plants
// @Produce json
// @Success 200 {object} catalog.Stats
// @Router /plants/stats [get]
func (p *Plants) Stats(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, p.Catalog.Stats())
}

// Insert godoc
// @Summary Insert adds a plant.
// @Schemes
// @Description Insert persists a new plant then indexes it. Admin only. Accepts JSON, or a form where list fields are comma separated.
// @Tags Plants
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param plant body plantdb.PlantRecord true "Plant to add"
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Success 201 {object} plantdb.PlantRecord
// @Router /plants [post]
// @Security Bearer
func (p *Plants) Insert(c *gin.Context) {
	var rec *plantdb.PlantRecord
	var err error
	if c.ContentType() == binding.MIMEPOSTForm || c.ContentType() == binding.MIMEMultipartPOSTForm {
		rec, err = recordFromForm(c)
	} else {
		rec = &plantdb.PlantRecord{}
		err = c.ShouldBindJSON(rec)
	}
	if err != nil {
		writeError(c, plantdb.NewError(plantdb.InvalidRecord, fmt.Errorf("malformed plant: %w", err), nil))
		return
	}
	if _, err := p.Catalog.Insert(c.Request.Context(), roleOf(c), rec); err != nil {
		writeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, rec)
}

// Delete godoc
// @Summary Delete removes a plant by common name.
// @Schemes
// @Description Delete removes the plant from the store then from the index. Admin only. The name is matched ignoring case.
// @Tags Plants
// @Produce json
// @Param name path string true "Common name" minlength(1)
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Success 200 {object} map[string]any
// @Router /plants/{name} [delete]
// @Security Bearer
func (p *Plants) Delete(c *gin.Context) {
	name := c.Param("name")
	r, err := p.Catalog.Delete(c.Request.Context(), roleOf(c), name)
	if err != nil {
		writeError(c, err)
		return
	}
	if r == avl.NotFound {
		writeError(c, plantdb.NewError(plantdb.NotFound, fmt.Errorf("plant %q not found", name), name))
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": fmt.Sprintf("plant %q deleted", name)})
}

// Reload godoc
// @Summary Reload rebuilds the index from the store.
// @Schemes
// @Description Reload reads the store's snapshot and rebuilds the index. Admin only.
// @Tags Plants
// @Produce json
// @Failure 403 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Success 200 {object} map[string]any
// @Router /plants/reload [post]
// @Security Bearer
func (p *Plants) Reload(c *gin.Context) {
	if roleOf(c) != catalog.RoleAdmin {
		writeError(c, plantdb.NewError(plantdb.Unauthorized, fmt.Errorf("only administrators can reload plants"), "reload"))
		return
	}
	n, err := p.Catalog.Load(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"plants": n})
}

// ExportSnapshot godoc
// @Summary ExportSnapshot dumps the catalog.
// @Schemes
// @Description ExportSnapshot uploads every indexed plant as one JSON document. Admin only.
// @Tags Plants
// @Produce json
// @Failure 403 {object} map[string]any
// @Failure 501 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Success 200 {object} map[string]any
// @Router /plants/export [post]
// @Security Bearer
func (p *Plants) ExportSnapshot(c *gin.Context) {
	if roleOf(c) != catalog.RoleAdmin {
		writeError(c, plantdb.NewError(plantdb.Unauthorized, fmt.Errorf("only administrators can export plants"), "export"))
		return
	}
	if p.Export == nil {
		c.IndentedJSON(http.StatusNotImplemented, gin.H{"message": "no export destination is configured"})
		return
	}
	records := p.Catalog.Records()
	if err := p.Export(c.Request.Context(), records); err != nil {
		writeError(c, plantdb.NewError(plantdb.StoreFailure, err, "export"))
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"plants": len(records)})
}

// recordFromForm reads the insert form: text inputs as-is, list inputs comma separated.
func recordFromForm(c *gin.Context) (*plantdb.PlantRecord, error) {
	rec := &plantdb.PlantRecord{
		CommonName:           c.PostForm("common_name"),
		BotanicalName:        c.PostForm("botanical_name"),
		Family:               c.PostForm("family"),
		Description:          c.PostForm("description"),
		MedicinalUses:        plantdb.SplitList(c.PostForm("medicinal_uses")),
		HealthBenefits:       plantdb.SplitList(c.PostForm("health_benefits")),
		CultivationMethod:    c.PostForm("cultivation_method"),
		WateringNeeds:        c.PostForm("watering_needs"),
		SunlightRequirements: c.PostForm("sunlight_requirements"),
		SoilType:             c.PostForm("soil_type"),
		ClimateZones:         plantdb.SplitList(c.PostForm("climate_zones")),
		Region:               plantdb.SplitList(c.PostForm("region")),
		DifficultyLevel:      c.PostForm("difficulty_level"),
		ClimateResilience:    c.PostForm("climate_resilience"),
		GrowthRate:           c.PostForm("growth_rate"),
		CareTips:             plantdb.SplitList(c.PostForm("care_tips")),
		Precautions:          plantdb.SplitList(c.PostForm("precautions")),
		HarvestingGuide:      c.PostForm("harvesting_guide"),
		ImageURL:             c.PostForm("image_url"),
		Model3DURL:           c.PostForm("model_3d_url"),
	}
	var err error
	if rec.MaxHeight, err = formFloat(c, "max_height"); err != nil {
		return nil, err
	}
	if rec.CO2AbsorptionRate, err = formFloat(c, "co2_absorption_rate"); err != nil {
		return nil, err
	}
	if v := c.PostForm("is_featured"); v != "" {
		if rec.IsFeatured, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("is_featured: %w", err)
		}
	}
	return rec, nil
}

func formFloat(c *gin.Context, name string) (float64, error) {
	v := strings.TrimSpace(c.PostForm(name))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}
