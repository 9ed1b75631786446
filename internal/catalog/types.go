package catalog

import (
	"regexp"
)

// Category distinguishes single-resource patterns from composed stacks.
type Category string

const (
	CategorySingle    Category = "single"
	CategoryComposite Category = "composite"
)

// Size is a t-shirt capacity tier used to select sizing-matrix overrides.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Sizes lists every valid tier in ascending capacity order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// Valid reports whether s is a recognised tier.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Environment is a deployment target.
type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// Environments lists every valid environment in promotion order.
var Environments = []Environment{EnvDev, EnvStaging, EnvProd}

// Valid reports whether e is a recognised environment.
func (e Environment) Valid() bool {
	switch e {
	case EnvDev, EnvStaging, EnvProd:
		return true
	}
	return false
}

// DetectionRule pairs a compiled matcher with an evidence weight. Rules are
// tested against both file contents and file paths.
type DetectionRule struct {
	Pattern string `yaml:"pattern"`
	Weight  int    `yaml:"weight"`

	matcher *regexp.Regexp
}

// Matches reports whether the rule matches the given text.
func (r *DetectionRule) Matches(text string) bool {
	if r == nil || r.matcher == nil {
		return false
	}
	return r.matcher.MatchString(text)
}

// ItemSchema describes the element shape of an array option.
type ItemSchema struct {
	Type string `yaml:"type"`
}

// ConfigOption describes one optional configuration field of a pattern.
type ConfigOption struct {
	Type        string      `yaml:"type"`
	Default     any         `yaml:"default"`
	Description string      `yaml:"description,omitempty"`
	Required    bool        `yaml:"required,omitempty"`
	Items       *ItemSchema `yaml:"items,omitempty"`
}

// ConfigSchema declares the configuration surface of a pattern.
type ConfigSchema struct {
	Required []string                `yaml:"required"`
	Optional map[string]ConfigOption `yaml:"optional"`
}

// SizingMatrix maps size and environment to a flat key/value override map.
type SizingMatrix map[Size]map[Environment]map[string]any

// CostMatrix maps size and environment to estimated USD per month.
type CostMatrix map[Size]map[Environment]float64

// PatternDefinition is one entry of the pattern catalog.
type PatternDefinition struct {
	Name           string          `yaml:"name"`
	Category       Category        `yaml:"category"`
	Description    string          `yaml:"description"`
	Components     []string        `yaml:"components"`
	UseCases       []string        `yaml:"use_cases"`
	Config         ConfigSchema    `yaml:"config"`
	Sizing         SizingMatrix    `yaml:"sizing"`
	Costs          CostMatrix      `yaml:"estimated_costs"`
	DetectionRules []DetectionRule `yaml:"detection_rules"`
}

// SizingFor returns a copy of the override map for the given cell, or nil
// when the cell is absent.
func (p *PatternDefinition) SizingFor(size Size, env Environment) map[string]any {
	cell, ok := p.Sizing[size][env]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(cell))
	for k, v := range cell {
		out[k] = v
	}
	return out
}

// Cost returns the estimated monthly cost for the given cell. The second
// return value is false when no cost data exists; zero is a legitimate cost
// and must not be conflated with missing data.
func (p *PatternDefinition) Cost(size Size, env Environment) (float64, bool) {
	cost, ok := p.Costs[size][env]
	return cost, ok
}

// HasOption reports whether name is declared as an optional field.
func (p *PatternDefinition) HasOption(name string) bool {
	_, ok := p.Config.Optional[name]
	return ok
}

// IsRequired reports whether name is a required configuration field.
func (p *PatternDefinition) IsRequired(name string) bool {
	for _, field := range p.Config.Required {
		if field == name {
			return true
		}
	}
	return false
}

// SizingPolicy holds environment-level sizing defaults, cost ceilings and
// conditional feature flags. Loaded once at startup, immutable afterwards.
type SizingPolicy struct {
	EnvironmentDefaults map[Environment]Size            `yaml:"environment_defaults"`
	CostLimits          map[Environment]float64         `yaml:"cost_limits"`
	ConditionalFeatures map[string]map[Environment]bool `yaml:"conditional_features"`
}

// DefaultSize returns the default tier for an environment.
func (p *SizingPolicy) DefaultSize(env Environment) Size {
	if size, ok := p.EnvironmentDefaults[env]; ok {
		return size
	}
	return SizeSmall
}

// CostLimit returns the advisory monthly cost ceiling for an environment.
func (p *SizingPolicy) CostLimit(env Environment) (float64, bool) {
	limit, ok := p.CostLimits[env]
	return limit, ok
}

// FeatureEnabled reports whether a conditional feature is on for env.
func (p *SizingPolicy) FeatureEnabled(feature string, env Environment) bool {
	return p.ConditionalFeatures[feature][env]
}
