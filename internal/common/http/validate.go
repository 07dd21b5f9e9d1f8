package http

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/postboard-app/postboard/backend/internal/common/errors"
)

var validate = newValidator()

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	return v
}

// ValidateStruct runs validator/v10 tags on a request DTO and converts
// failures into the VALIDATION_FAILED envelope with per-field details.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return commonerrors.ErrValidationFailed.WithCause(err)
	}

	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}

	return commonerrors.ErrValidationFailed.WithDetails(details)
}
