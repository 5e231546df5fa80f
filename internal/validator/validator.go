// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var monthLabelRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ReceiptCategories is the fixed allow-list of categories the receipt
// scanner may assign. Stored categories remain an open string domain; this
// list only constrains what the OCR collaborator produces.
var ReceiptCategories = map[string]bool{
	"Groceries":              true,
	"Utilities":              true,
	"Transportation":         true,
	"Housing":                true,
	"Home Maintenance":       true,
	"Healthcare":             true,
	"Education":              true,
	"Childcare":              true,
	"Entertainment":          true,
	"Subscriptions":          true,
	"Dining Out":             true,
	"Clothing":               true,
	"Personal Care":          true,
	"Fitness & Sports":       true,
	"Household Supplies":     true,
	"Pet Care":               true,
	"Gifts & Donations":      true,
	"Travel":                 true,
	"Loans & Debt Payments":  true,
	"Bank Fees & Overdrafts": true,
	"Insurance":              true,
	"Taxes":                  true,
	"Other":                  true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month_label", validateMonthLabel)
	}
}

func validateMonthLabel(fl validator.FieldLevel) bool {
	return monthLabelRegex.MatchString(fl.Field().String())
}
