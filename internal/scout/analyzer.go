package scout

// Analyzer runs the scouting computations over normalized match records. It
// carries only immutable configuration (the champion archetype table), so one
// Analyzer is safe for unlimited concurrent use.
type Analyzer struct {
	archetypes map[string]string
}

// Config holds Analyzer configuration.
type Config struct {
	// Archetypes maps lower-cased champion names to a coarse strategic
	// archetype (teamfight, pick, scaling, split_push). Defaults to
	// DefaultArchetypes when empty.
	Archetypes map[string]string
}

// New creates an Analyzer, defaulting unset configuration.
func New(cfg Config) *Analyzer {
	archetypes := cfg.Archetypes
	if len(archetypes) == 0 {
		archetypes = DefaultArchetypes()
	}
	return &Analyzer{archetypes: archetypes}
}

// DefaultArchetypes returns the built-in champion -> archetype table.
func DefaultArchetypes() map[string]string {
	return map[string]string{
		"ahri":         "pick",
		"zed":          "pick",
		"leblanc":      "pick",
		"talon":        "pick",
		"pyke":         "pick",
		"thresh":       "pick",
		"amumu":        "teamfight",
		"orianna":      "teamfight",
		"malphite":     "teamfight",
		"miss fortune": "teamfight",
		"kayle":        "scaling",
		"nasus":        "scaling",
		"vayne":        "scaling",
		"kassadin":     "scaling",
		"tryndamere":   "split_push",
		"fiora":        "split_push",
		"yorick":       "split_push",
	}
}
