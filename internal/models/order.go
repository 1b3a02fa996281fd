package models

import (
	"fmt"
	"iter"
	"time"
)

// beverageReduction is taken off every beverage's discounted price when the
// order also contains a main course.
const beverageReduction = 0.10

// Order represents a customer order. Items keep insertion order and may repeat.
type Order struct {
	Number   string
	Customer string
	items    []MenuEntry
}

func NewOrder() *Order {
	return &Order{}
}

// AppendItem adds an entry to the end of the order
func (o *Order) AppendItem(entry MenuEntry) {
	o.items = append(o.items, entry)
}

// CalculateTotalPrice sums the discounted price of every item and, when the
// order holds at least one main course, takes a further 10% off each beverage.
func (o *Order) CalculateTotalPrice() float64 {
	total := 0.0
	hasMainCourse := false
	for _, entry := range o.items {
		total += entry.ComputePrice()
		if entry.Kind() == KindMainCourse {
			hasMainCourse = true
		}
	}

	if hasMainCourse {
		for _, entry := range o.items {
			if entry.Kind() == KindBeverage {
				total -= entry.ComputePrice() * beverageReduction
			}
		}
	}

	return total
}

// All yields the order's entries in insertion order. Each call starts a new traversal.
func (o *Order) All() iter.Seq[MenuEntry] {
	return func(yield func(MenuEntry) bool) {
		for _, entry := range o.items {
			if !yield(entry) {
				return
			}
		}
	}
}

func (o *Order) Len() int {
	return len(o.items)
}

// Records returns the serialized form of every item, in order.
func (o *Order) Records() []Record {
	records := make([]Record, 0, len(o.items))
	for entry := range o.All() {
		records = append(records, entry.Serialize())
	}
	return records
}

// CalculatePriority calculates the kitchen priority based on total amount
func CalculatePriority(total float64) int {
	if total > 100.0 {
		return 10
	}
	if total >= 50.0 {
		return 5
	}
	return 1
}

// GenerateOrderNumber generates a unique order number in format ORD_YYYYMMDD_NNN
func GenerateOrderNumber(date time.Time, sequence int) string {
	dateStr := date.Format("20060102")
	return fmt.Sprintf("ORD_%s_%03d", dateStr, sequence)
}
