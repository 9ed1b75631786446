package catalog

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	patternerrors "github.com/platformeng/patternctl/pkg/errors"
)

// Version identifies the canonical catalog rule set. Earlier forks of the
// catalog carried overlapping rule sets; this is the single versioned source.
const Version = "2025.08.1"

const (
	sizingFile  = "sizing.yaml"
	patternGlob = "patterns/*.yaml"
)

var optionTypes = map[string]struct{}{
	"string": {}, "number": {}, "boolean": {}, "array": {}, "object": {},
}

// Catalog is the immutable, in-memory pattern table shared by all requests.
type Catalog struct {
	patterns []*PatternDefinition
	byName   map[string]*PatternDefinition
	policy   SizingPolicy
}

// Load parses the embedded catalog data. Any malformed entry is fatal: the
// caller must stop startup rather than serve a partially loaded catalog.
func Load() (*Catalog, error) {
	return loadFrom(dataFS, "data")
}

func loadFrom(fsys fs.FS, root string) (*Catalog, error) {
	sub, err := fs.Sub(fsys, root)
	if err != nil {
		return nil, patternerrors.NewCatalogError("", "catalog data unavailable", err)
	}

	policyData, err := fs.ReadFile(sub, sizingFile)
	if err != nil {
		return nil, patternerrors.NewCatalogError(sizingFile, "sizing policy unreadable", err)
	}

	var policy SizingPolicy
	if err := yaml.Unmarshal(policyData, &policy); err != nil {
		return nil, patternerrors.NewCatalogError(sizingFile, "sizing policy malformed", err)
	}
	if err := validatePolicy(&policy); err != nil {
		return nil, err
	}

	// Lexical file order defines catalog order; classifier tie-breaking
	// depends on it being stable across restarts.
	files, err := fs.Glob(sub, patternGlob)
	if err != nil {
		return nil, patternerrors.NewCatalogError("", "pattern files unreadable", err)
	}
	sort.Strings(files)

	c := &Catalog{
		byName: make(map[string]*PatternDefinition, len(files)),
		policy: policy,
	}

	for _, file := range files {
		data, err := fs.ReadFile(sub, file)
		if err != nil {
			return nil, patternerrors.NewCatalogError(file, "pattern file unreadable", err)
		}

		var def PatternDefinition
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, patternerrors.NewCatalogError(file, "pattern file malformed", err)
		}

		if err := validatePattern(&def); err != nil {
			return nil, err
		}

		if _, exists := c.byName[def.Name]; exists {
			return nil, patternerrors.NewCatalogError(def.Name, "duplicate pattern name", nil)
		}

		c.patterns = append(c.patterns, &def)
		c.byName[def.Name] = &def
	}

	if len(c.patterns) == 0 {
		return nil, patternerrors.NewCatalogError("", "catalog contains no patterns", nil)
	}

	return c, nil
}

// Lookup returns the pattern definition for name.
func (c *Catalog) Lookup(name string) (*PatternDefinition, error) {
	def, ok := c.byName[name]
	if !ok {
		return nil, patternerrors.NewNotFoundError("pattern", name)
	}
	return def, nil
}

// ValidNames returns every pattern name in sorted order.
func (c *Catalog) ValidNames() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Patterns returns all definitions in catalog order.
func (c *Catalog) Patterns() []*PatternDefinition {
	out := make([]*PatternDefinition, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// Policy returns the sizing policy loaded alongside the patterns.
func (c *Catalog) Policy() *SizingPolicy {
	return &c.policy
}

func validatePolicy(policy *SizingPolicy) error {
	if len(policy.EnvironmentDefaults) == 0 {
		return patternerrors.NewCatalogError(sizingFile, "environment_defaults is empty", nil)
	}
	for env, size := range policy.EnvironmentDefaults {
		if !env.Valid() {
			return patternerrors.NewCatalogError(sizingFile, fmt.Sprintf("unknown environment %q in environment_defaults", env), nil)
		}
		if !size.Valid() {
			return patternerrors.NewCatalogError(sizingFile, fmt.Sprintf("unknown size %q for environment %q", size, env), nil)
		}
	}
	for env := range policy.CostLimits {
		if !env.Valid() {
			return patternerrors.NewCatalogError(sizingFile, fmt.Sprintf("unknown environment %q in cost_limits", env), nil)
		}
	}
	for feature, envs := range policy.ConditionalFeatures {
		for env := range envs {
			if !env.Valid() {
				return patternerrors.NewCatalogError(sizingFile, fmt.Sprintf("unknown environment %q for feature %q", env, feature), nil)
			}
		}
	}
	return nil
}

func validatePattern(def *PatternDefinition) error {
	if def.Name == "" {
		return patternerrors.NewCatalogError("", "pattern is missing a name", nil)
	}
	if def.Category != CategorySingle && def.Category != CategoryComposite {
		return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("unknown category %q", def.Category), nil)
	}
	if len(def.Components) == 0 {
		return patternerrors.NewCatalogError(def.Name, "component list is empty", nil)
	}

	for name, opt := range def.Config.Optional {
		if _, ok := optionTypes[opt.Type]; !ok {
			return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("option %q has unknown type %q", name, opt.Type), nil)
		}
	}

	for size, envs := range def.Sizing {
		if !size.Valid() {
			return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("unknown size %q in sizing matrix", size), nil)
		}
		for env, cell := range envs {
			if !env.Valid() {
				return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("unknown environment %q in sizing matrix", env), nil)
			}
			// Sizing supplies derived fields only; identity fields such
			// as name must always come from the request.
			for key := range cell {
				if def.IsRequired(key) {
					return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("required field %q must not appear in sizing", key), nil)
				}
			}
		}
	}

	for size, envs := range def.Costs {
		if !size.Valid() {
			return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("unknown size %q in cost table", size), nil)
		}
		for env, cost := range envs {
			if !env.Valid() {
				return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("unknown environment %q in cost table", env), nil)
			}
			if cost < 0 {
				return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("negative cost for %s/%s", size, env), nil)
			}
		}
	}

	for i := range def.DetectionRules {
		rule := &def.DetectionRules[i]
		if rule.Pattern == "" {
			return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("detection rule %d has an empty pattern", i), nil)
		}
		if rule.Weight <= 0 {
			return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("detection rule %q has non-positive weight %d", rule.Pattern, rule.Weight), nil)
		}
		matcher, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return patternerrors.NewCatalogError(def.Name, fmt.Sprintf("detection rule %q does not compile", rule.Pattern), err)
		}
		rule.matcher = matcher
	}

	return nil
}
