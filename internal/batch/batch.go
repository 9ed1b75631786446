package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/platformeng/patternctl/internal/request"
	"github.com/platformeng/patternctl/internal/resolver"
)

// DocumentResult is the per-document slice of a batch plan. Provisioning
// fields are populated only when the document resolved as valid.
type DocumentResult struct {
	Index    int            `json:"index"`
	Pattern  string         `json:"pattern"`
	Action   request.Action `json:"action"`
	Valid    bool           `json:"valid"`
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`

	Components    []string `json:"components,omitempty"`
	ResourceGroup string   `json:"resource_group,omitempty"`
	StateKey      string   `json:"state_key,omitempty"`

	EstimatedCostUSD *float64 `json:"estimated_cost_usd"`
}

// Plan is the outcome of validating one multi-document submission. The
// execution order lists valid document indices with destroys first, so a
// create that reuses a name freed by a destroy in the same batch cannot
// collide.
type Plan struct {
	ID            string           `json:"plan_id"`
	Valid         bool             `json:"valid"`
	Errors        []string         `json:"errors,omitempty"`
	DocumentCount int              `json:"document_count"`
	Documents     []DocumentResult `json:"documents"`

	// TotalMonthlyCostUSD sums known costs over valid create-action
	// documents. Nil when no document contributes cost data.
	TotalMonthlyCostUSD *float64 `json:"total_monthly_cost_usd"`

	ExecutionOrder []int `json:"execution_order"`
	CreateCount    int   `json:"create_count"`
	DestroyCount   int   `json:"destroy_count"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Validator resolves whole submissions. Like the resolver it wraps, it is
// stateless and safe for concurrent use.
type Validator struct {
	resolver *resolver.Resolver
}

// New constructs a Validator over the given resolver.
func New(r *resolver.Resolver) *Validator {
	return &Validator{resolver: r}
}

// Validate resolves every document independently and assembles the batch
// plan. One invalid document never stops the others from resolving; the
// plan always carries the full per-document breakdown.
func (v *Validator) Validate(docs []request.Document) Plan {
	plan := Plan{
		ID:            uuid.NewString(),
		DocumentCount: len(docs),
		Documents:     make([]DocumentResult, 0, len(docs)),
		GeneratedAt:   time.Now().UTC(),
	}

	var (
		destroyOrder []int
		createOrder  []int
		totalCost    float64
		costKnown    bool
	)

	allValid := true
	for i, doc := range docs {
		resolved := v.resolver.Resolve(doc)

		result := DocumentResult{
			Index:    i,
			Pattern:  resolved.Pattern,
			Action:   resolved.Action,
			Valid:    resolved.Valid,
			Errors:   resolved.Errors,
			Warnings: resolved.Warnings,
		}

		if resolved.Valid {
			result.Components = resolved.Components
			result.ResourceGroup = resolved.ResourceGroup
			result.StateKey = resolved.StateKey
			result.EstimatedCostUSD = resolved.EstimatedCostUSD

			if resolved.Action == request.ActionDestroy {
				destroyOrder = append(destroyOrder, i)
				plan.DestroyCount++
			} else {
				createOrder = append(createOrder, i)
				plan.CreateCount++

				if resolved.EstimatedCostUSD != nil {
					totalCost += *resolved.EstimatedCostUSD
					costKnown = true
				}
			}
		} else {
			allValid = false
			for _, msg := range resolved.Errors {
				plan.Errors = append(plan.Errors, fmt.Sprintf("Document %d: %s", i, msg))
			}
		}

		plan.Documents = append(plan.Documents, result)
	}

	plan.Valid = allValid
	plan.ExecutionOrder = append(destroyOrder, createOrder...)
	if plan.ExecutionOrder == nil {
		plan.ExecutionOrder = []int{}
	}
	if costKnown {
		plan.TotalMonthlyCostUSD = &totalCost
	}

	return plan
}
