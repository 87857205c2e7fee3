package inventory

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"warehouse-inventory/orm"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return v
}

// Validate checks an entity before it is persisted and returns every rule it
// breaks, or nil when it is valid. Rules that need the store (business key
// uniqueness, existence of stock item references) are enforced again by the
// repository inside its write transaction.
func Validate(entity any) []orm.FieldError {
	switch e := entity.(type) {
	case *orm.Warehouse:
		if e == nil {
			return []orm.FieldError{missing("warehouse")}
		}

		return validateStruct(e)
	case *orm.Address:
		if e == nil {
			return []orm.FieldError{missing("address")}
		}

		fields := validateStruct(e)
		if e.Warehouse == nil && e.WarehouseID == 0 {
			fields = append(fields, orm.FieldError{
				Field:   "warehouse",
				Reason:  orm.ReasonMissingField,
				Message: "address must belong to a warehouse",
			})
		}

		return fields
	case *orm.Product:
		if e == nil {
			return []orm.FieldError{missing("product")}
		}

		return validateStruct(e)
	case *orm.Tag:
		if e == nil {
			return []orm.FieldError{missing("tag")}
		}

		return validateStruct(e)
	case *orm.StockItem:
		if e == nil {
			return []orm.FieldError{missing("stockItem")}
		}

		fields := validateStruct(e)
		if e.Warehouse == nil {
			fields = append(fields, orm.FieldError{
				Field:   "warehouse",
				Reason:  orm.ReasonUnknownWarehouse,
				Message: "Given Warehouse does not exist.",
			})
		}
		if e.Product == nil {
			fields = append(fields, orm.FieldError{
				Field:   "product",
				Reason:  orm.ReasonUnknownProduct,
				Message: "Given Product does not exist.",
			})
		}

		return fields
	default:
		return []orm.FieldError{{
			Field:   "entity",
			Reason:  orm.ReasonInvalidValue,
			Message: fmt.Sprintf("unsupported entity %T", entity),
		}}
	}
}

func validateStruct(s any) []orm.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []orm.FieldError{{
			Field:   "entity",
			Reason:  orm.ReasonInvalidValue,
			Message: err.Error(),
		}}
	}

	fields := make([]orm.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, toFieldError(fe))
	}

	return fields
}

func toFieldError(fe validator.FieldError) orm.FieldError {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return missing(field)
	case "ne":
		return orm.FieldError{
			Field:   field,
			Reason:  orm.ReasonReservedName,
			Message: fmt.Sprintf("%s cannot be %q", field, fe.Param()),
		}
	case "len":
		return orm.FieldError{
			Field:   field,
			Reason:  orm.ReasonInvalidState,
			Message: fmt.Sprintf("%s must be exactly %s characters", field, fe.Param()),
		}
	case "min":
		reason := orm.ReasonInvalidValue
		switch field {
		case "zipcode":
			reason = orm.ReasonInvalidZip
		case "quantity":
			reason = orm.ReasonInvalidQuantity
		}

		return orm.FieldError{
			Field:   field,
			Reason:  reason,
			Message: field + " must not be negative",
		}
	default:
		return orm.FieldError{
			Field:   field,
			Reason:  orm.ReasonInvalidValue,
			Message: fmt.Sprintf("%s failed %q", field, fe.Tag()),
		}
	}
}

func missing(field string) orm.FieldError {
	return orm.FieldError{
		Field:   field,
		Reason:  orm.ReasonMissingField,
		Message: field + " is required",
	}
}
