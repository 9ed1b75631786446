package resolver

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/platformeng/patternctl/internal/catalog"
	"github.com/platformeng/patternctl/internal/request"
	patternerrors "github.com/platformeng/patternctl/pkg/errors"
)

// featureComponents maps conditional feature flags to the auxiliary
// component each one provisions when enabled for the environment.
var featureComponents = []struct {
	feature   string
	component string
}{
	{"enable_diagnostics", "diagnostic-settings"},
	{"enable_access_review", "access-review"},
}

// Plan is the immutable outcome of resolving one request document.
type Plan struct {
	Pattern     string              `json:"pattern"`
	Action      request.Action      `json:"action"`
	Environment catalog.Environment `json:"environment,omitempty"`
	Size        catalog.Size        `json:"size,omitempty"`

	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	EffectiveConfig map[string]any `json:"effective_config,omitempty"`
	Components      []string       `json:"components,omitempty"`
	ResourceGroup   string         `json:"resource_group,omitempty"`
	StateKey        string         `json:"state_key,omitempty"`

	// EstimatedCostUSD is nil when the catalog has no cost data for the
	// resolved cell. A zero cost is real data and is kept as zero.
	EstimatedCostUSD *float64 `json:"estimated_cost_usd"`
}

// Resolver merges request documents with catalog data and sizing policy.
// It is a pure decision layer: no file system or network access happens
// during resolution, so concurrent use needs no locking.
type Resolver struct {
	catalog *catalog.Catalog
}

// New constructs a Resolver over the loaded catalog.
func New(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Resolve validates one document against the catalog and produces its plan.
// All schema violations for the document are collected before returning;
// resolution never panics on unknown input.
func (r *Resolver) Resolve(doc request.Document) Plan {
	plan := Plan{
		Pattern:  doc.Pattern,
		Action:   doc.Action,
		Errors:   []string{},
		Warnings: []string{},
	}

	errs, warnings := doc.Validate()
	plan.Errors = append(plan.Errors, errs...)
	plan.Warnings = append(plan.Warnings, warnings...)

	var def *catalog.PatternDefinition
	if doc.Pattern != "" {
		found, err := r.catalog.Lookup(doc.Pattern)
		if err != nil {
			var nf *patternerrors.NotFoundError
			if errors.As(err, &nf) {
				plan.Errors = append(plan.Errors, fmt.Sprintf("Unknown pattern: %s. Available: %s", doc.Pattern, strings.Join(r.catalog.ValidNames(), ", ")))
			} else {
				plan.Errors = append(plan.Errors, err.Error())
			}
			// Without a schema there is nothing further to check.
			return plan
		}
		def = found
	}

	env := doc.Metadata.Environment
	policy := r.catalog.Policy()

	size, sizeErr := effectiveSize(doc, policy)
	if sizeErr != "" {
		plan.Errors = append(plan.Errors, sizeErr)
	} else {
		plan.Size = size
	}
	if env.Valid() {
		plan.Environment = env
	}

	if def != nil {
		for _, field := range def.Config.Required {
			if _, ok := doc.Config[field]; ok {
				continue
			}
			if opt, ok := def.Config.Optional[field]; ok && opt.Default != nil {
				continue
			}
			plan.Errors = append(plan.Errors, fmt.Sprintf("Missing required config field: %s", field))
		}

		for _, key := range sortedKeys(doc.Config) {
			if key == "size" || def.IsRequired(key) || def.HasOption(key) {
				continue
			}
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("Unknown config key: %s", key))
		}

		if name, ok := doc.Config["name"].(string); ok {
			plan.Warnings = append(plan.Warnings, nameWarnings(name)...)
		}
	}

	plan.Valid = len(plan.Errors) == 0
	if !plan.Valid || def == nil {
		return plan
	}

	plan.EffectiveConfig = buildEffectiveConfig(def, policy, doc, size, env)
	plan.Components = provisionedComponents(def, policy, env)
	plan.ResourceGroup = ResourceGroupName(doc.Metadata.Project, def.Name, env)
	plan.StateKey = StateKey(doc)

	if cost, ok := def.Cost(size, env); ok {
		plan.EstimatedCostUSD = &cost
		if limit, hasLimit := policy.CostLimit(env); hasLimit && cost > limit {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("Estimated cost $%.0f/month exceeds the %s ceiling of $%.0f/month", cost, env, limit))
		}
	}

	return plan
}

func effectiveSize(doc request.Document, policy *catalog.SizingPolicy) (catalog.Size, string) {
	raw, ok := doc.Config["size"]
	if !ok {
		return policy.DefaultSize(doc.Metadata.Environment), ""
	}

	text, isString := raw.(string)
	size := catalog.Size(text)
	if !isString || !size.Valid() {
		return "", fmt.Sprintf("Invalid size: %v. Must be small, medium, or large", raw)
	}
	return size, ""
}

// buildEffectiveConfig merges the three layers of configuration. Precedence,
// lowest to highest: option defaults, sizing-matrix overrides for the
// resolved size and environment, explicit request config.
func buildEffectiveConfig(def *catalog.PatternDefinition, policy *catalog.SizingPolicy, doc request.Document, size catalog.Size, env catalog.Environment) map[string]any {
	effective := make(map[string]any)

	for key, opt := range def.Config.Optional {
		if opt.Default == nil {
			continue
		}
		if list, isList := opt.Default.([]any); isList && len(list) == 0 {
			continue
		}
		effective[key] = opt.Default
	}

	for key, value := range def.SizingFor(size, env) {
		effective[key] = value
	}

	for key, value := range doc.Config {
		if key == "size" {
			continue
		}
		effective[key] = value
	}

	// Conditional feature flags ride along unless the caller pinned them.
	for _, fc := range featureComponents {
		if _, ok := effective[fc.feature]; !ok {
			effective[fc.feature] = policy.FeatureEnabled(fc.feature, env)
		}
	}

	return effective
}

func provisionedComponents(def *catalog.PatternDefinition, policy *catalog.SizingPolicy, env catalog.Environment) []string {
	components := append([]string(nil), def.Components...)
	for _, fc := range featureComponents {
		if policy.FeatureEnabled(fc.feature, env) {
			components = append(components, fc.component)
		}
	}
	return components
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
