package avl

import (
	"strings"

	"github.com/herbverse/plantdb"
)

// Find returns the first record on the search path whose common name contains query,
// case-insensitively. At each node the containment check runs first; on a miss the search
// descends left when query sorts before the node's key and right otherwise.
//
// Find is a best-effort accelerated lookup: a match lying off the lexicographic path of query is
// not found. Use SubstringSearch for full recall. Comparisons reports the visited node count.
func (t *Tree) Find(query string) (*plantdb.PlantRecord, bool) {
	t.comparisons = 0
	n := t.find(t.root, strings.ToLower(query))
	if n == nil {
		return nil, false
	}
	return n.rec, true
}

// find counts one comparison per call, including calls on an absent subtree.
func (t *Tree) find(n *node, query string) *node {
	t.comparisons++
	if n == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(n.rec.CommonName), query) {
		return n
	}
	if query < n.key {
		return t.find(n.left, query)
	}
	return t.find(n.right, query)
}

// SubstringSearch returns, in ascending key order, every record having needle as a
// case-insensitive substring of any textual field or of any element of any list field.
// Every node is visited; the tree supplies ordering, not pruning.
func (t *Tree) SubstringSearch(needle string) []plantdb.Entry {
	r := []plantdb.Entry{}
	substringSearch(t.root, strings.ToLower(needle), &r)
	return r
}

func substringSearch(n *node, needle string, r *[]plantdb.Entry) {
	if n == nil {
		return
	}
	substringSearch(n.left, needle, r)
	if matches(n.rec, needle) {
		*r = append(*r, entryOf(n))
	}
	substringSearch(n.right, needle, r)
}

// matches tests needle (already lower-cased) against the searchable fields of rec.
func matches(rec *plantdb.PlantRecord, needle string) bool {
	for _, s := range []string{
		rec.CommonName,
		rec.BotanicalName,
		rec.Family,
		rec.Description,
		rec.CultivationMethod,
		rec.WateringNeeds,
		rec.SunlightRequirements,
		rec.SoilType,
		rec.DifficultyLevel,
		rec.ClimateResilience,
		rec.GrowthRate,
		rec.HarvestingGuide,
	} {
		if contains(s, needle) {
			return true
		}
	}
	for _, l := range [][]string{
		rec.MedicinalUses,
		rec.HealthBenefits,
		rec.ClimateZones,
		rec.Region,
		rec.CareTips,
		rec.Precautions,
	} {
		for _, s := range l {
			if contains(s, needle) {
				return true
			}
		}
	}
	return false
}

func contains(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
