package draft

import (
	"log"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ChampionMeta is one champion's metadata: default role, damage type
// (physical | magic | mixed | true), and synergy/frontline/carry tags.
type ChampionMeta struct {
	Role       string   `json:"role"`
	DamageType string   `json:"damage_type"`
	Tags       []string `json:"tags"`
}

// Table is an immutable champion metadata lookup, keyed by lower-cased
// champion name. Safe for unlimited concurrent readers.
type Table struct {
	champions map[string]ChampionMeta
}

// tableFile is the on-disk TOML shape:
//
//	[[champions]]
//	name = "Ahri"
//	role = "mid"
//	damage_type = "magic"
//	tags = ["pick", "burst", "mobility"]
type tableFile struct {
	Champions []struct {
		Name       string   `toml:"name"`
		Role       string   `toml:"role"`
		DamageType string   `toml:"damage_type"`
		Tags       []string `toml:"tags"`
	} `toml:"champions"`
}

// LoadTable reads a champion metadata TOML file. A missing, unreadable, or
// empty file falls back to the built-in default table; LoadTable never fails.
func LoadTable(path string) *Table {
	if path == "" {
		return DefaultTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("champion metadata: %v, using built-in table", err)
		return DefaultTable()
	}
	var file tableFile
	if err := toml.Unmarshal(data, &file); err != nil {
		log.Printf("champion metadata: parse %s: %v, using built-in table", path, err)
		return DefaultTable()
	}

	champions := make(map[string]ChampionMeta, len(file.Champions))
	for _, entry := range file.Champions {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if name == "" {
			continue
		}
		tags := make([]string, 0, len(entry.Tags))
		for _, t := range entry.Tags {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				tags = append(tags, t)
			}
		}
		champions[name] = ChampionMeta{
			Role:       strings.ToLower(strings.TrimSpace(entry.Role)),
			DamageType: strings.ToLower(strings.TrimSpace(entry.DamageType)),
			Tags:       tags,
		}
	}
	if len(champions) == 0 {
		return DefaultTable()
	}
	return &Table{champions: champions}
}

// DefaultTable returns the small built-in metadata table used when no
// external source is available.
func DefaultTable() *Table {
	return &Table{champions: map[string]ChampionMeta{
		"ahri":   {Role: "mid", DamageType: "magic", Tags: []string{"pick", "burst", "mobility"}},
		"amumu":  {Role: "jungle", DamageType: "magic", Tags: []string{"tank", "frontline", "engage", "teamfight"}},
		"vayne":  {Role: "adc", DamageType: "physical", Tags: []string{"hyper_carry", "scaling", "dps"}},
		"thresh": {Role: "support", DamageType: "magic", Tags: []string{"frontline", "engage", "pick", "utility"}},
	}}
}

// Lookup finds a champion's metadata by name, case-insensitively.
func (t *Table) Lookup(name string) (ChampionMeta, bool) {
	meta, ok := t.champions[strings.ToLower(strings.TrimSpace(name))]
	return meta, ok
}

// Len reports the number of champions in the table.
func (t *Table) Len() int {
	return len(t.champions)
}
