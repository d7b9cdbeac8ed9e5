package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations wires the project-specific validation rules into
// the shared validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("asset_tag", isAssetTag); err != nil {
		return err
	}
	if err := v.RegisterValidation("transfer_status", isTransferStatus); err != nil {
		return err
	}
	return nil
}

var assetTagRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-]*$`)

func isAssetTag(fl validator.FieldLevel) bool {
	return assetTagRe.MatchString(fl.Field().String())
}

func isTransferStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "PENDING", "APPROVED", "REJECTED", "COMPLETED":
		return true
	}
	return false
}
