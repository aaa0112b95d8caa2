package draft

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// RequiredRoles are the five roles a full composition must cover.
var RequiredRoles = []string{"top", "jungle", "mid", "adc", "support"}

// defaultRoleByIndex assigns a role to unknown picks by draft position,
// cycling for indices beyond the fifth pick.
var defaultRoleByIndex = []string{"top", "jungle", "mid", "adc", "support"}

const (
	synergyHigh    = 70
	synergyMedium  = 40
	damageBalanced = 70
	damageLeaning  = 40
)

// sharedSynergyTags are the tags the synergy score rewards when multiple
// picks carry them.
var sharedSynergyTags = []string{"engage", "teamfight", "pick", "aoe", "scaling"}

// Pick is one proposed draft selection. It decodes from either a bare
// champion name string or a structured object with optional role,
// damage_type, and tags.
type Pick struct {
	Champion   string   `json:"champion"`
	Role       string   `json:"role,omitempty"`
	DamageType string   `json:"damage_type,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// UnmarshalJSON accepts "Ahri" as well as {"champion": "Ahri", "role": ...}.
func (p *Pick) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Pick{Champion: name}
		return nil
	}
	var obj struct {
		Champion   string   `json:"champion"`
		Name       string   `json:"name"`
		ID         string   `json:"id"`
		Role       string   `json:"role"`
		DamageType string   `json:"damage_type"`
		Tags       []string `json:"tags"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode pick: %w", err)
	}
	champion := obj.Champion
	if champion == "" {
		champion = obj.Name
	}
	if champion == "" {
		champion = obj.ID
	}
	*p = Pick{Champion: champion, Role: obj.Role, DamageType: obj.DamageType, Tags: obj.Tags}
	return nil
}

// NormalizedPick is a pick enriched with inferred role, damage type, and tags.
type NormalizedPick struct {
	Champion   string   `json:"champion"`
	Role       string   `json:"role"`
	DamageType string   `json:"damage_type"`
	Tags       []string `json:"tags"`
}

// SynergyDetails expose the inputs behind the synergy score.
type SynergyDetails struct {
	TagCounts    map[string]int `json:"tag_counts"`
	HasFrontline bool           `json:"has_frontline"`
	HasCarry     bool           `json:"has_carry"`
}

// SynergyResult is the 0-100 synergy score with classification.
type SynergyResult struct {
	Score          float64        `json:"score"`
	Classification string         `json:"classification"`
	Details        SynergyDetails `json:"details"`
}

// DamageCounts tallies picks by damage type.
type DamageCounts struct {
	Physical int `json:"physical"`
	Magic    int `json:"magic"`
	Mixed    int `json:"mixed"`
	True     int `json:"true"`
	Unknown  int `json:"unknown"`
}

// DamageResult is the 0-100 physical/magic balance score.
type DamageResult struct {
	Score          float64      `json:"score"`
	Classification string       `json:"classification"`
	Details        DamageCounts `json:"details"`
}

// RoleCoverage reports which of the five required roles the draft fills.
type RoleCoverage struct {
	Status         string         `json:"status"`
	MissingRoles   []string       `json:"missing_roles"`
	DuplicateRoles []string       `json:"duplicate_roles"`
	RolesPresent   map[string]int `json:"roles_present"`
}

// RiskAlert flags a composition issue with a fixed severity and type tag.
type RiskAlert struct {
	Severity string `json:"severity"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

// Evaluation is the full draft-risk scorecard.
type Evaluation struct {
	Synergy           SynergyResult    `json:"synergy"`
	DamageComposition DamageResult     `json:"damage_composition"`
	RoleCoverage      RoleCoverage     `json:"role_coverage"`
	RiskAlerts        []RiskAlert      `json:"risk_alerts"`
	Picks             []NormalizedPick `json:"picks"`
}

// Evaluator scores proposed lineups against a champion metadata table.
type Evaluator struct {
	table *Table
}

// NewEvaluator creates an Evaluator; a nil table uses the built-in default.
func NewEvaluator(table *Table) *Evaluator {
	if table == nil {
		table = DefaultTable()
	}
	return &Evaluator{table: table}
}

// Evaluate scores a proposed lineup for synergy, damage balance, role
// coverage, and risks. An empty draft is padded to five unknown picks so the
// position fallback still yields a full scorecard.
func (e *Evaluator) Evaluate(picks []Pick) Evaluation {
	if len(picks) == 0 {
		picks = make([]Pick, len(defaultRoleByIndex))
		for i := range picks {
			picks[i].Champion = "unknown"
		}
	}

	normalized := make([]NormalizedPick, len(picks))
	for i, p := range picks {
		normalized[i] = e.normalizePick(p)
	}
	applyPositionFallback(normalized)

	roles := roleCoverage(normalized)
	synergy := synergyScore(normalized, roles)
	damage := damageBalance(normalized)
	alerts := riskAlerts(synergy, damage, roles)

	return Evaluation{
		Synergy:           synergy,
		DamageComposition: damage,
		RoleCoverage:      roles,
		RiskAlerts:        alerts,
		Picks:             normalized,
	}
}

// normalizePick fills a pick's unspecified fields from the metadata table.
func (e *Evaluator) normalizePick(p Pick) NormalizedPick {
	out := NormalizedPick{
		Champion:   strings.TrimSpace(p.Champion),
		Role:       strings.ToLower(strings.TrimSpace(p.Role)),
		DamageType: strings.ToLower(strings.TrimSpace(p.DamageType)),
		Tags:       []string{},
	}
	for _, t := range p.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out.Tags = append(out.Tags, t)
		}
	}

	if meta, ok := e.table.Lookup(out.Champion); ok {
		if out.Role == "" {
			out.Role = meta.Role
		}
		if out.DamageType == "" {
			out.DamageType = meta.DamageType
		}
		for _, t := range meta.Tags {
			if !containsTag(out.Tags, t) {
				out.Tags = append(out.Tags, t)
			}
		}
	}
	return out
}

// applyPositionFallback fills role, damage type, and tags for picks that have
// none (unknown champions), guaranteeing every draft yields non-zero synergy
// and a full role-coverage accounting.
func applyPositionFallback(picks []NormalizedPick) {
	for i := range picks {
		p := &picks[i]
		if p.Role == "" {
			p.Role = defaultRoleByIndex[i%len(defaultRoleByIndex)]
		}
		if p.DamageType == "" {
			p.DamageType = "mixed"
		}
		if len(p.Tags) == 0 {
			if p.Role == "top" || p.Role == "jungle" {
				p.Tags = []string{"frontline", "engage"}
			} else {
				p.Tags = []string{"carry", "dps"}
			}
		}
	}
}

func roleCoverage(picks []NormalizedPick) RoleCoverage {
	present := make(map[string]int, len(RequiredRoles))
	for _, r := range RequiredRoles {
		present[r] = 0
	}
	for _, p := range picks {
		if _, ok := present[p.Role]; ok {
			present[p.Role]++
		}
	}

	missing := []string{}
	duplicates := []string{}
	for _, r := range RequiredRoles {
		switch {
		case present[r] == 0:
			missing = append(missing, r)
		case present[r] > 1:
			duplicates = append(duplicates, r)
		}
	}

	status := "complete"
	switch {
	case len(missing) > 0:
		status = "incomplete"
	case len(duplicates) > 0:
		status = "overlapping"
	}
	return RoleCoverage{
		Status:         status,
		MissingRoles:   missing,
		DuplicateRoles: duplicates,
		RolesPresent:   present,
	}
}

// synergyScore credits role coverage, a frontline/carry core, and shared
// synergy tags, capped at 100.
func synergyScore(picks []NormalizedPick, roles RoleCoverage) SynergyResult {
	if len(picks) == 0 {
		return SynergyResult{Classification: "unknown", Details: SynergyDetails{TagCounts: map[string]int{}}}
	}

	tagCounts := map[string]int{}
	for _, p := range picks {
		for _, t := range p.Tags {
			tagCounts[t]++
		}
	}

	roleScore := 0.0
	switch {
	case roles.Status == "complete":
		roleScore = 25
	case len(roles.MissingRoles) == 0:
		roleScore = 15
	}

	hasFrontline := tagCounts["tank"] > 0 || tagCounts["frontline"] > 0
	hasCarry := tagCounts["hyper_carry"] > 0 || tagCounts["carry"] > 0 || tagCounts["dps"] > 0
	coreScore := 0.0
	switch {
	case hasFrontline && hasCarry:
		coreScore = 25
	case hasFrontline || hasCarry:
		coreScore = 10
	}

	sharedScore := 0.0
	for _, t := range sharedSynergyTags {
		switch c := tagCounts[t]; {
		case c >= 2:
			sharedScore += math.Min(15, 4*float64(c-1))
		case c == 1:
			sharedScore += 2
		}
	}

	score := math.Min(100, roleScore+coreScore+sharedScore)
	label := "low"
	switch {
	case score >= synergyHigh:
		label = "high"
	case score >= synergyMedium:
		label = "medium"
	}
	return SynergyResult{
		Score:          round2(score),
		Classification: label,
		Details: SynergyDetails{
			TagCounts:    tagCounts,
			HasFrontline: hasFrontline,
			HasCarry:     hasCarry,
		},
	}
}

// damageBalance scores how evenly the draft splits physical and magic damage;
// "true" damage counts toward neither, and drafts with no known damage types
// score 0 with classification "unknown".
func damageBalance(picks []NormalizedPick) DamageResult {
	var counts DamageCounts
	for _, p := range picks {
		switch p.DamageType {
		case "physical", "ad":
			counts.Physical++
		case "magic", "ap":
			counts.Magic++
		case "mixed":
			counts.Mixed++
		case "true":
			counts.True++
		default:
			counts.Unknown++
		}
	}

	totalKnown := counts.Physical + counts.Magic + counts.Mixed
	if totalKnown == 0 {
		return DamageResult{Classification: "unknown", Details: counts}
	}

	physRatio := float64(counts.Physical) / float64(totalKnown)
	magicRatio := float64(counts.Magic) / float64(totalKnown)
	skew := math.Abs(physRatio - magicRatio)
	score := math.Max(0, 100*(1-skew))

	label := "one_dimensional"
	switch {
	case score >= damageBalanced:
		label = "balanced"
	case score >= damageLeaning:
		label = "leaning"
	}
	return DamageResult{Score: round2(score), Classification: label, Details: counts}
}

// riskAlerts emits deterministic composition warnings.
func riskAlerts(synergy SynergyResult, damage DamageResult, roles RoleCoverage) []RiskAlert {
	alerts := []RiskAlert{}

	if damage.Classification == "one_dimensional" {
		dominant := "magic"
		if damage.Details.Physical > damage.Details.Magic {
			dominant = "physical"
		}
		alerts = append(alerts, RiskAlert{
			Severity: "high",
			Type:     "damage_profile",
			Message:  fmt.Sprintf("Draft is heavily skewed towards %s damage; easily itemized against.", dominant),
		})
	}

	if roles.Status == "incomplete" {
		if containsTag(roles.MissingRoles, "jungle") {
			alerts = append(alerts, RiskAlert{
				Severity: "high",
				Type:     "role_gap",
				Message:  "No dedicated jungler detected; early objective and map control may be weak.",
			})
		}
		if !synergy.Details.HasFrontline {
			alerts = append(alerts, RiskAlert{
				Severity: "medium",
				Type:     "frontline",
				Message:  "Draft lacks clear frontline/tank presence; hard to start or absorb fights.",
			})
		}
	}

	if synergy.Classification == "low" {
		alerts = append(alerts, RiskAlert{
			Severity: "medium",
			Type:     "synergy",
			Message:  "Low inferred synergy between picks; game plan may be unclear or disjointed.",
		})
	}

	if synergy.Details.TagCounts["scaling"] >= 3 {
		alerts = append(alerts, RiskAlert{
			Severity: "info",
			Type:     "scaling",
			Message:  "Heavy reliance on scaling champions; early game may be fragile.",
		})
	}
	return alerts
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
