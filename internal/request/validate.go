package request

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Owners anchor downstream access-control provisioning; a value
		// without an @ cannot be routed anywhere.
		_ = v.RegisterValidation("owner", func(fl validator.FieldLevel) bool {
			return strings.Contains(fl.Field().String(), "@")
		})

		validateInst = v
	})

	return validateInst
}

// Validate performs structural validation of a single document and returns
// every violation, not just the first. Warnings never affect validity.
func (d *Document) Validate() (errs []string, warnings []string) {
	metadataMissing := d.Metadata.Project == "" && d.Metadata.BusinessUnit == "" &&
		d.Metadata.Environment == "" && len(d.Metadata.Owners) == 0

	if metadataMissing {
		errs = append(errs, "Missing required field: metadata")
	} else {
		if d.Metadata.Project == "" {
			errs = append(errs, "Missing required metadata field: project")
		}
		if d.Metadata.BusinessUnit == "" {
			errs = append(errs, "Missing required metadata field: business_unit")
		}
		if len(d.Metadata.Owners) == 0 {
			errs = append(errs, "Missing required metadata field: owners")
		}
	}
	if d.Pattern == "" {
		errs = append(errs, "Missing required field: pattern")
	}

	v := validatorInstance()
	if err := v.Struct(d); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range ves {
				if metadataMissing && strings.Contains(ve.StructNamespace(), "Metadata.") {
					continue
				}
				if msg := describeViolation(d, ve); msg != "" {
					errs = appendUnique(errs, msg)
				}
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if d.PatternVersion == "" {
		warnings = append(warnings, "pattern_version not specified; will use latest version")
	}

	return errs, warnings
}

func describeViolation(d *Document, ve validator.FieldError) string {
	switch {
	case strings.HasSuffix(ve.StructNamespace(), "Metadata.Environment"):
		return fmt.Sprintf("Invalid environment: %s. Must be dev, staging, or prod", d.Metadata.Environment)
	case strings.HasSuffix(ve.StructNamespace(), "Action"):
		return fmt.Sprintf("Invalid action: %s. Must be 'create' or 'destroy'", d.Action)
	case ve.Tag() == "owner":
		return fmt.Sprintf("Invalid owner address: %v", ve.Value())
	case ve.Tag() == "required" || ve.Tag() == "min":
		// Already reported with a field-specific message above.
		return ""
	}
	return fmt.Sprintf("Invalid value for %s", strings.ToLower(ve.StructNamespace()))
}

func appendUnique(list []string, msg string) []string {
	for _, existing := range list {
		if existing == msg {
			return list
		}
	}
	return append(list, msg)
}
