package validation

import (
	"fmt"

	"restaurant-menu/internal/models"
)

const (
	maxCustomerName = 100
	maxItemName     = 50
	maxOrderLines   = 20
	maxQuantity     = 10
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidatePlaceOrderRequest(req *models.PlaceOrderRequest) error {
	if err := validateCustomerName(req.CustomerName); err != nil {
		return err
	}

	if err := validateLines(req.Items); err != nil {
		return err
	}

	return nil
}

// ValidateMenuItemRequest checks the fields needed to build an entry. Price
// and discount are not range checked.
func ValidateMenuItemRequest(req *models.MenuItemRequest) error {
	if _, err := models.ParseKind(req.Kind); err != nil {
		return ValidationError{
			Field:   "kind",
			Message: err.Error(),
		}
	}

	if req.Name == "" {
		return ValidationError{
			Field:   "name",
			Message: "item name is required",
		}
	}

	if len(req.Name) > maxItemName {
		return ValidationError{
			Field:   "name",
			Message: "item name must be less than 50 characters",
		}
	}
	return nil
}

func ValidateCategory(category string) error {
	if category == "" {
		return ValidationError{
			Field:   "category",
			Message: "category is required",
		}
	}
	return nil
}

func validateCustomerName(name string) error {
	if name == "" {
		return ValidationError{
			Field:   "customer_name",
			Message: "customer name is required",
		}
	}

	if len(name) > maxCustomerName {
		return ValidationError{
			Field:   "customer_name",
			Message: "customer name must be less than 100 characters",
		}
	}
	return nil
}

func validateLines(lines []models.OrderLine) error {
	if len(lines) == 0 {
		return ValidationError{
			Field:   "items",
			Message: "items cannot be empty",
		}
	}

	if len(lines) > maxOrderLines {
		return ValidationError{
			Field:   "items",
			Message: "a maximum of 20 items is allowed",
		}
	}

	for i, line := range lines {
		if err := validateLine(line, i); err != nil {
			return err
		}
	}
	return nil
}

func validateLine(line models.OrderLine, index int) error {
	if line.Category == "" {
		return ValidationError{
			Field:   fmt.Sprintf("items[%d].category", index),
			Message: "item category is required",
		}
	}

	if line.Name == "" {
		return ValidationError{
			Field:   fmt.Sprintf("items[%d].name", index),
			Message: "item name is required",
		}
	}

	if line.Quantity <= 0 {
		return ValidationError{
			Field:   fmt.Sprintf("items[%d].quantity", index),
			Message: "item quantity must be greater than 0",
		}
	}

	if line.Quantity > maxQuantity {
		return ValidationError{
			Field:   fmt.Sprintf("items[%d].quantity", index),
			Message: "item quantity must be less than or equal to 10",
		}
	}
	return nil
}
