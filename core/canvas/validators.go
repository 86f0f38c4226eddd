package canvas

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
)

var (
	cellTypeTag  = "celltype"
	cellTypeText = "unknown cell type"
)

// InitValidators registers the canvas validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(cellTypeTag, cellTypeValidation)
	core.RegisterCustomTranslation(validate, translator, cellTypeTag, cellTypeText)
}

// cellTypeValidation checks that the field names a cell of the catalog.
func cellTypeValidation(fl validator.FieldLevel) bool {
	if cellType, ok := fl.Field().Interface().(string); ok {
		_, found := CellByType(cellType)
		return found
	}
	return false
}
