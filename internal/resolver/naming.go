package resolver

import (
	"fmt"
	"regexp"

	"github.com/platformeng/patternctl/internal/catalog"
	"github.com/platformeng/patternctl/internal/request"
)

// maxResourceNameLength is the tightest limit among the resource kinds the
// platform provisions (key vaults and storage accounts cap at 24).
const maxResourceNameLength = 24

var canonicalNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ResourceGroupName derives the resource group deterministically from
// project, pattern and environment. Downstream drift detection relies on
// identical inputs always producing the identical name.
func ResourceGroupName(project, pattern string, env catalog.Environment) string {
	return fmt.Sprintf("rg-%s-%s-%s", project, pattern, env)
}

// StateKey derives the backend state path for a document.
func StateKey(doc request.Document) string {
	name := doc.Pattern
	if explicit, ok := doc.Config["name"].(string); ok && explicit != "" {
		name = explicit
	}
	return fmt.Sprintf("%s/%s/%s/%s-%s/terraform.tfstate",
		doc.Metadata.BusinessUnit, doc.Metadata.Environment, doc.Metadata.Project, doc.Pattern, name)
}

// nameWarnings flags non-canonical resource names. Advisory only: the
// provisioning layer normalises names, but surprises are better surfaced
// before anything is built.
func nameWarnings(name string) []string {
	var warnings []string
	if name == "" {
		return warnings
	}
	if !canonicalNamePattern.MatchString(name) {
		warnings = append(warnings, fmt.Sprintf("Resource name %q is not canonical; use lowercase letters, digits and hyphens", name))
	}
	if len(name) > maxResourceNameLength {
		warnings = append(warnings, fmt.Sprintf("Resource name %q exceeds %d characters and will be truncated by some resource kinds", name, maxResourceNameLength))
	}
	return warnings
}
