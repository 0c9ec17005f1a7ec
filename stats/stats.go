package stats

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed catalog.json
var embeddedCatalog embed.FS

// Record holds the per-type tuning for one monster archetype. Values are the
// level-1 baseline; level scaling is applied by the formulas in this package.
type Record struct {
	Type            string  `json:"type"`
	MaxHealth       float64 `json:"maxHealth"`
	MoveSpeed       float64 `json:"moveSpeed"`
	Damage          float64 `json:"damage"`
	AttackCooldown  float64 `json:"attackCooldown"`
	AttackRange     float64 `json:"attackRange"`
	AggroRange      float64 `json:"aggroRange"`
	DeaggroRange    float64 `json:"deaggroRange"`
	MinStopDistance float64 `json:"minStopDistance"`
	PatrolRadius    float64 `json:"patrolRadius"`
	Color           string  `json:"color"`
	Boss            bool    `json:"boss,omitempty"`
	Roamer          bool    `json:"roamer,omitempty"`
	CanChat         bool    `json:"canChat,omitempty"`
	SpecialCooldown float64 `json:"specialCooldown,omitempty"`
	SpecialRange    float64 `json:"specialRange,omitempty"`
}

// Catalog maps monster type names to their tuning records.
type Catalog struct {
	records  map[string]Record
	fallback Record
}

type catalogFile struct {
	Default Record   `json:"default"`
	Records []Record `json:"records"`
}

var globalCatalog = mustLoadCatalog()

func mustLoadCatalog() *Catalog {
	catalog, err := loadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

func loadCatalog() (*Catalog, error) {
	data, err := embeddedCatalog.ReadFile("catalog.json")
	if err != nil {
		return nil, fmt.Errorf("read stat catalog: %w", err)
	}
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse stat catalog: %w", err)
	}
	if len(file.Records) == 0 {
		return nil, fmt.Errorf("stat catalog defines no records")
	}
	catalog := &Catalog{
		records:  make(map[string]Record, len(file.Records)),
		fallback: file.Default,
	}
	for _, record := range file.Records {
		if record.Type == "" {
			return nil, fmt.Errorf("stat catalog record missing type")
		}
		if _, exists := catalog.records[record.Type]; exists {
			return nil, fmt.Errorf("stat catalog duplicates type %q", record.Type)
		}
		catalog.records[record.Type] = record
	}
	return catalog, nil
}

// Default returns the process-wide catalog embedded in the binary.
func Default() *Catalog {
	return globalCatalog
}

// Lookup resolves a type name to its record. Unknown types resolve to the
// documented default record so spawning never fails on stale map data; the
// second return reports whether the type was recognized.
func (c *Catalog) Lookup(typeName string) (Record, bool) {
	if c == nil {
		return Record{}, false
	}
	if record, ok := c.records[typeName]; ok {
		return record, true
	}
	fallback := c.fallback
	fallback.Type = typeName
	return fallback, false
}

// Types lists the known type names in sorted order.
func (c *Catalog) Types() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.records))
	for name := range c.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fallback exposes the default record used for unrecognized types.
func (c *Catalog) Fallback() Record {
	if c == nil {
		return Record{}
	}
	return c.fallback
}
