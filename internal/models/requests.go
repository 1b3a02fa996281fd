package models

// OrderLine asks for quantity copies of a catalog entry
type OrderLine struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// PlaceOrderRequest represents the request to place a new order
type PlaceOrderRequest struct {
	CustomerName string      `json:"customer_name"`
	Items        []OrderLine `json:"items"`
}

// PlaceOrderResponse represents the response after placing an order
type PlaceOrderResponse struct {
	OrderNumber string  `json:"order_number"`
	Status      string  `json:"status"`
	ItemCount   int     `json:"item_count"`
	TotalAmount float64 `json:"total_amount"`
	Priority    int     `json:"priority"`
}

// MenuItemRequest describes a new catalog entry. Only the field matching
// Kind is used for the variant attribute.
type MenuItemRequest struct {
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"descuento"`
	Size        string  `json:"size,omitempty"`
	Vegetarian  bool    `json:"vegetarian,omitempty"`
	CountryFood string  `json:"country_food,omitempty"`
}

// Entry builds the typed menu entry described by the request
func (r *MenuItemRequest) Entry() (MenuEntry, error) {
	kind, err := ParseKind(r.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindBeverage:
		return NewBeverage(r.Name, r.Price, r.Size, r.Discount), nil
	case KindAppetizer:
		return NewAppetizer(r.Name, r.Price, r.Vegetarian, r.Discount), nil
	default:
		return NewMainCourse(r.Name, r.Price, r.CountryFood, r.Discount), nil
	}
}
