package species

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shoalhq/shoal/internal/model"
)

// Default parameter ranges applied when the catalog entry carries none.
var (
	defaultTemperature = model.Range{Low: 22, High: 26}
	defaultPH          = model.Range{Low: 6.5, High: 7.5}
	defaultHardness    = model.Range{Low: 1, High: 12}
)

const (
	defaultTemperament  = "Unknown"
	defaultDiet         = "Omnivore"
	placeholderImage    = "/static/fish/placeholder.jpg"
	schoolingGroupGuess = 6
)

// Catalog holds the normalized species list, ordered as found in the data
// file, with an index by ID.
type Catalog struct {
	list []model.Species
	byID map[string]int
}

// Load reads and normalizes the catalog JSON at path. A missing file or a
// file that does not parse yields an empty catalog rather than an error; the
// planner stays usable with no species to offer.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return New(nil), nil
	}

	var out []model.Species
	for _, item := range raw {
		sp, ok := normalize(item)
		if !ok {
			continue
		}
		out = append(out, sp)
	}
	return New(out), nil
}

// New builds a catalog from an already-normalized species list.
func New(list []model.Species) *Catalog {
	c := &Catalog{list: list, byID: make(map[string]int, len(list))}
	for i, sp := range list {
		c.byID[sp.ID] = i
	}
	return c
}

// Len reports the number of species in the catalog.
func (c *Catalog) Len() int {
	return len(c.list)
}

// All returns the species list in catalog order.
func (c *Catalog) All() []model.Species {
	return c.list
}

// ByID looks up one species by its identifier.
func (c *Catalog) ByID(id string) (model.Species, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Species{}, false
	}
	return c.list[i], true
}

// normalize converts one raw catalog entry into a Species, tolerating the
// alternate key spellings the data file has accumulated. Entries without an
// id or name are dropped.
func normalize(item map[string]any) (model.Species, bool) {
	id := strings.TrimSpace(asString(first(item, "id", "ID")))
	name := strings.TrimSpace(asString(first(item, "name", "Name")))
	if id == "" || name == "" {
		return model.Species{}, false
	}

	sp := model.Species{
		ID:            id,
		Name:          name,
		Compatibility: asStringSlice(first(item, "compatibility", "compat")),
		MinTankLitres: firstNum(item, "min_tank_size", "minTankSize"),
		AdultSizeCM:   firstNum(item, "adult_size", "avg_size"),
		Temperature:   getRange(item, "temperature", defaultTemperature),
		PH:            getRange(item, "ph", defaultPH),
		Hardness:      getRange(item, "hardness", defaultHardness),
		Temperament:   defaultTemperament,
		Diet:          defaultDiet,
		Schooling:     asBool(item["schooling"]),
		Image:         placeholderImage,
	}

	if v := asString(first(item, "temperament", "behavior")); v != "" {
		sp.Temperament = v
	}
	if v := asString(item["diet"]); v != "" {
		sp.Diet = v
	}
	if v := asString(first(item, "image", "img")); v != "" {
		sp.Image = v
	}

	// A group key that is present but null or unparseable falls back to a
	// schooling guess; an absent key means a group size of 1.
	sp.MinGroupSize = 1
	if v, present := lookup(item, "min_group_size", "min_group", "minGroup"); present {
		if n, ok := asInt(v); ok {
			sp.MinGroupSize = n
		} else if sp.Schooling {
			sp.MinGroupSize = schoolingGroupGuess
		}
	}

	return sp, true
}

// getRange resolves a parameter range from either a [low, high] array or a
// <key>_min / <key>_max pair, falling back to def.
func getRange(item map[string]any, key string, def model.Range) model.Range {
	if arr, ok := item[key].([]any); ok && len(arr) >= 2 {
		low, okLow := asFloat(arr[0])
		high, okHigh := asFloat(arr[1])
		if okLow && okHigh {
			return model.Range{Low: low, High: high}
		}
		return def
	}

	low, okLow := asFloat(item[key+"_min"])
	high, okHigh := asFloat(item[key+"_max"])
	if okLow && okHigh {
		return model.Range{Low: low, High: high}
	}
	return def
}

// lookup returns the first key found in the map, even when its value is
// null, and whether any of the keys exist.
func lookup(item map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := item[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// first returns the first present key's value.
func first(item map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := item[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstNum returns the first key whose value parses to a nonzero number.
func firstNum(item map[string]any, keys ...string) *float64 {
	for _, k := range keys {
		if f, ok := asFloat(item[k]); ok && f != 0 {
			return &f
		}
	}
	return nil
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func asStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s := asString(e); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return strings.EqualFold(b, "true")
	default:
		return false
	}
}
