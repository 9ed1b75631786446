package request

import (
	"gopkg.in/yaml.v3"

	"github.com/platformeng/patternctl/internal/catalog"
)

// Action states whether a document provisions or tears down its pattern.
type Action string

const (
	ActionCreate  Action = "create"
	ActionDestroy Action = "destroy"
)

// DefaultLocation is applied when metadata omits a location.
const DefaultLocation = "eastus"

// Metadata carries the ownership and placement facts of a request.
type Metadata struct {
	Project      string              `yaml:"project" json:"project" validate:"required"`
	Environment  catalog.Environment `yaml:"environment" json:"environment" validate:"required,oneof=dev staging prod"`
	BusinessUnit string              `yaml:"business_unit" json:"business_unit" validate:"required"`
	Owners       []string            `yaml:"owners" json:"owners" validate:"required,min=1,dive,owner"`
	Location     string              `yaml:"location" json:"location"`
}

// Document is one unit of work: a single pattern request. It is consumed
// exactly once by the resolver and never mutated after resolution.
type Document struct {
	Version        string         `yaml:"version" json:"version"`
	Action         Action         `yaml:"action" json:"action" validate:"omitempty,oneof=create destroy"`
	Metadata       Metadata       `yaml:"metadata" json:"metadata"`
	Pattern        string         `yaml:"pattern" json:"pattern" validate:"required"`
	PatternVersion string         `yaml:"pattern_version" json:"pattern_version"`
	Config         map[string]any `yaml:"config" json:"config"`
}

// UnmarshalYAML decodes a document and applies defaults: action falls back
// to create and location to the platform default region.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	type rawDocument Document
	var temp rawDocument
	if err := value.Decode(&temp); err != nil {
		return err
	}

	*d = Document(temp)
	if d.Action == "" {
		d.Action = ActionCreate
	}
	if d.Metadata.Location == "" {
		d.Metadata.Location = DefaultLocation
	}
	return nil
}
