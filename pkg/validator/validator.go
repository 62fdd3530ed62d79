package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Username":          "Username",
		"Email":             "Email",
		"Password":          "Password",
		"Name":              "Name",
		"Sex":               "Sex",
		"ActivityLevel":     "Activity level",
		"FitnessGoal":       "Fitness goal",
		"HeightCm":          "Height",
		"WeightKg":          "Weight",
		"DateOfBirth":       "Date of birth",
		"PrivacyLevel":      "Privacy level",
		"ProteinPerKg":      "Protein per kg",
		"CarbohydratePerKg": "Carbohydrate per kg",
		"FatPerKg":          "Fat per kg",
		"EnergyBurntKcal":   "Energy burnt",
		"Notes":             "Notes",
		"LoggedAt":          "Log date",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
