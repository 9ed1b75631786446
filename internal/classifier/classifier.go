package classifier

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/platformeng/patternctl/internal/catalog"
)

const (
	// normalizationWeight is the accumulated rule weight at which
	// confidence saturates. Two or three strong signals should be enough
	// to reach full confidence; many weak ones should not.
	normalizationWeight = 10

	// noiseFloor hides recommendations below this confidence unless the
	// caller asks for unfiltered output.
	noiseFloor = 0.2

	// evidenceCap bounds the evidence list per recommendation. Scoring is
	// unaffected; only the displayed matches are truncated.
	evidenceCap = 8
)

// File is one unit of classifier input.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Recommendation is a ranked, explainable pattern suggestion.
type Recommendation struct {
	Pattern         string         `json:"pattern_name"`
	Confidence      float64        `json:"confidence"`
	Evidence        []string       `json:"evidence"`
	SuggestedConfig map[string]any `json:"suggested_config"`
}

// Classifier scores file sets against the catalog's detection rules.
type Classifier struct {
	catalog *catalog.Catalog
}

// New constructs a Classifier over the loaded catalog.
func New(c *catalog.Catalog) *Classifier {
	return &Classifier{catalog: c}
}

// Classify scores every pattern against the given files and returns ranked
// recommendations above the noise floor. An empty file set yields an empty
// result, not an error.
func (c *Classifier) Classify(files []File) []Recommendation {
	return c.classify(files, false)
}

// ClassifyAll is the unfiltered variant: every pattern with a nonzero score
// is returned, for operator inspection of whole-directory scans.
func (c *Classifier) ClassifyAll(files []File) []Recommendation {
	return c.classify(files, true)
}

func (c *Classifier) classify(files []File, unfiltered bool) []Recommendation {
	patterns := c.catalog.Patterns()

	type score struct {
		def      *catalog.PatternDefinition
		matched  map[int]struct{}
		weight   int
		evidence []string
	}

	scores := make([]*score, len(patterns))
	for i, def := range patterns {
		scores[i] = &score{def: def, matched: make(map[int]struct{})}
	}

	for _, file := range files {
		// Binary blobs carry no textual signal; skip them silently
		// rather than aborting the scan.
		if !utf8.ValidString(file.Content) {
			continue
		}

		for _, s := range scores {
			for i := range s.def.DetectionRules {
				if _, seen := s.matched[i]; seen {
					// A rule contributes its weight once, no matter how
					// many files (or both content and path) it hits.
					continue
				}

				rule := &s.def.DetectionRules[i]
				inContent := rule.Matches(file.Content)
				inPath := rule.Matches(file.Path)
				if !inContent && !inPath {
					continue
				}

				s.matched[i] = struct{}{}
				s.weight += rule.Weight

				where := "content"
				if !inContent {
					where = "path"
				}
				s.evidence = append(s.evidence, fmt.Sprintf("%s of %s matches %q (weight %d)", where, file.Path, rule.Pattern, rule.Weight))
			}
		}
	}

	results := make([]Recommendation, 0, len(scores))
	for _, s := range scores {
		if s.weight == 0 {
			continue
		}

		confidence := float64(s.weight) / normalizationWeight
		if confidence > 1.0 {
			confidence = 1.0
		}
		if !unfiltered && confidence < noiseFloor {
			continue
		}

		evidence := s.evidence
		if len(evidence) > evidenceCap {
			evidence = evidence[:evidenceCap]
		}

		results = append(results, Recommendation{
			Pattern:         s.def.Name,
			Confidence:      confidence,
			Evidence:        evidence,
			SuggestedConfig: suggestedConfig(s.def),
		})
	}

	// Descending confidence; the stable sort keeps catalog order on ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	c.inferRuntime(results, files)

	return results
}

func suggestedConfig(def *catalog.PatternDefinition) map[string]any {
	config := make(map[string]any)
	for key, opt := range def.Config.Optional {
		if opt.Default == nil {
			continue
		}
		if list, isList := opt.Default.([]any); isList && len(list) == 0 {
			continue
		}
		config[key] = opt.Default
	}
	return config
}
