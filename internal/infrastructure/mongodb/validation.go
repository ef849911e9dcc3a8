package mongodb

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Restaurante-api/internal/domain"
)

var (
	docValidator     *validator.Validate
	docValidatorOnce sync.Once
)

// documentValidator valida documentos con los nombres de campo BSON.
func documentValidator() *validator.Validate {
	docValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("bson"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		docValidator = v
	})
	return docValidator
}

// validateDocument aplica el esquema declarado en las etiquetas validate del modelo.
func validateDocument(model string, doc any) error {
	err := documentValidator().Struct(doc)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &domain.ValidationError{Model: model, Violations: make([]domain.FieldViolation, 0, len(verrs))}
	for _, fe := range verrs {
		out.Violations = append(out.Violations, domain.FieldViolation{
			Field:   fieldPath(fe.Namespace()),
			Message: violationMessage(fe),
			Value:   fe.Value(),
		})
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "User.email" -> "email".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
