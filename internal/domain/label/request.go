package label

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/karolis-jablonskis/label-printer/internal/domain/shared"
)

// ErrValidation is matched by every ValidationError through errors.Is
var ErrValidation = shared.NewDomainError("VALIDATION_FAILED", "Please fill in all fields.")

// ValidationError reports the form fields that were left empty
type ValidationError struct {
	Fields []Field
}

func (e *ValidationError) Error() string {
	return ErrValidation.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldNames returns the display names of the empty fields
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.DisplayName())
	}
	return names
}

// Request is the value collected by the form for one label.
// Any non-empty string is accepted for every field, including a non-numeric quantity.
type Request struct {
	PartNumber string `json:"part_number" validate:"notblank"`
	Quantity   string `json:"quantity" validate:"notblank"`
	Division   string `json:"division" validate:"notblank"`
	TrackingID string `json:"tracking_id" validate:"notblank"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic("label: register notblank validator: " + err.Error())
	}
	return v
}

// NewRequest trims the raw field values and validates that none is empty
func NewRequest(partNumber, quantity, division, trackingID string) (Request, error) {
	req := Request{
		PartNumber: strings.TrimSpace(partNumber),
		Quantity:   strings.TrimSpace(quantity),
		Division:   strings.TrimSpace(division),
		TrackingID: strings.TrimSpace(trackingID),
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// NewRequestFromValues builds a request from a field->value map
func NewRequestFromValues(values map[Field]string) (Request, error) {
	return NewRequest(
		values[FieldPartNumber],
		values[FieldQuantity],
		values[FieldDivision],
		values[FieldTrackingID],
	)
}

// Validate returns a *ValidationError naming every blank field
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, Field(fe.Field()))
	}
	return verr
}

// Value returns the value of the given field
func (r Request) Value(f Field) string {
	switch f {
	case FieldPartNumber:
		return r.PartNumber
	case FieldQuantity:
		return r.Quantity
	case FieldDivision:
		return r.Division
	case FieldTrackingID:
		return r.TrackingID
	default:
		return ""
	}
}
