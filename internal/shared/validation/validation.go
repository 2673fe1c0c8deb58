package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	apperrors "pharma-prep-core/internal/shared/errors"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator instance partagée, les noms de champs suivent les tags json
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// Struct valide une requête et retourne une erreur de validation
// listant chaque champ en défaut dans details.champs
func Struct(req interface{}) error {
	err := Validator().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Validation("VALIDATION_ERROR", "Données invalides", map[string]interface{}{
			"message": err.Error(),
		})
	}

	champs := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		champs[fieldPath(fieldErr)] = Message(fieldErr)
	}

	return apperrors.Validation("VALIDATION_ERROR", "Erreur de validation", map[string]interface{}{
		"champs": champs,
	})
}

// fieldPath retire le nom de la structure racine : "CreatePatientRequest.preparations[0].dci" -> "preparations[0].dci"
func fieldPath(fieldErr validator.FieldError) string {
	ns := fieldErr.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fieldErr.Field()
}

// Message traduit une erreur de champ en message lisible
func Message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "Ce champ est requis"
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Doit contenir au moins %s caractères", err.Param())
		}
		return fmt.Sprintf("Doit être supérieur ou égal à %s", err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Doit contenir au maximum %s caractères", err.Param())
		}
		return fmt.Sprintf("Doit être inférieur ou égal à %s", err.Param())
	case "gt":
		return fmt.Sprintf("Doit être supérieur à %s", err.Param())
	case "gte":
		return fmt.Sprintf("Doit être supérieur ou égal à %s", err.Param())
	case "lte":
		return fmt.Sprintf("Doit être inférieur ou égal à %s", err.Param())
	case "email":
		return "Format d'email invalide"
	case "oneof":
		return fmt.Sprintf("Valeur invalide. Valeurs autorisées: %s", err.Param())
	default:
		return "Valeur invalide"
	}
}
