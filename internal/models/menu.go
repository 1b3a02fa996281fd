package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies the variant of a menu entry
type Kind string

const (
	KindBeverage   Kind = "beverage"
	KindAppetizer  Kind = "appetizer"
	KindMainCourse Kind = "main_course"
)

// Serialized record keys. The variant key present in a record identifies its kind.
const (
	KeyName        = "name"
	KeyPrice       = "price"
	KeyDiscount    = "descuento"
	KeySize        = "size"
	KeyVegetarian  = "vegetarian"
	KeyCountryFood = "country_food"
)

var ErrUnknownVariant = errors.New("record has no variant field")

// Record is the flat serialized form of a menu entry as stored in the catalog.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Name returns the record's name field, or "" when missing or not a string.
func (r Record) Name() string {
	name, _ := r[KeyName].(string)
	return name
}

// MenuEntry is anything that can be sold from the menu.
type MenuEntry interface {
	Details() Item
	Kind() Kind
	ComputePrice() float64
	Serialize() Record
}

// Item holds the fields shared by every menu entry. Price and Discount are
// not range checked; Discount is a percentage.
type Item struct {
	Name     string
	Price    float64
	Discount float64
}

// ComputePrice returns the price after the item's own percentage discount.
func (i Item) ComputePrice() float64 {
	return i.Price * (1 - i.Discount/100)
}

func (i Item) Details() Item {
	return i
}

func (i Item) record() Record {
	return Record{
		KeyName:     i.Name,
		KeyPrice:    i.Price,
		KeyDiscount: i.Discount,
	}
}

type Beverage struct {
	Item
	Size string
}

func NewBeverage(name string, price float64, size string, discount float64) Beverage {
	return Beverage{Item: Item{Name: name, Price: price, Discount: discount}, Size: size}
}

func (b Beverage) Kind() Kind { return KindBeverage }

func (b Beverage) Serialize() Record {
	r := b.record()
	r[KeySize] = b.Size
	return r
}

type Appetizer struct {
	Item
	Vegetarian bool
}

func NewAppetizer(name string, price float64, vegetarian bool, discount float64) Appetizer {
	return Appetizer{Item: Item{Name: name, Price: price, Discount: discount}, Vegetarian: vegetarian}
}

func (a Appetizer) Kind() Kind { return KindAppetizer }

func (a Appetizer) Serialize() Record {
	r := a.record()
	r[KeyVegetarian] = a.Vegetarian
	return r
}

type MainCourse struct {
	Item
	CountryFood string
}

func NewMainCourse(name string, price float64, countryFood string, discount float64) MainCourse {
	return MainCourse{Item: Item{Name: name, Price: price, Discount: discount}, CountryFood: countryFood}
}

func (m MainCourse) Kind() Kind { return KindMainCourse }

func (m MainCourse) Serialize() Record {
	r := m.record()
	r[KeyCountryFood] = m.CountryFood
	return r
}

// ParseKind converts a kind name into a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBeverage, KindAppetizer, KindMainCourse:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("kind must be one of: beverage, appetizer, main_course")
	}
}

// EntryFromRecord rebuilds a typed entry from its serialized record. The variant
// is chosen by which of size, vegetarian or country_food is present.
func EntryFromRecord(r Record) (MenuEntry, error) {
	item, err := itemFromRecord(r)
	if err != nil {
		return nil, err
	}

	if v, ok := r[KeySize]; ok {
		size, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected string, got %T", KeySize, v)
		}
		return Beverage{Item: item, Size: size}, nil
	}
	if v, ok := r[KeyVegetarian]; ok {
		vegetarian, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%s: expected bool, got %T", KeyVegetarian, v)
		}
		return Appetizer{Item: item, Vegetarian: vegetarian}, nil
	}
	if v, ok := r[KeyCountryFood]; ok {
		country, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected string, got %T", KeyCountryFood, v)
		}
		return MainCourse{Item: item, CountryFood: country}, nil
	}

	return nil, fmt.Errorf("%q: %w", item.Name, ErrUnknownVariant)
}

func itemFromRecord(r Record) (Item, error) {
	name, ok := r[KeyName].(string)
	if !ok {
		return Item{}, fmt.Errorf("%s: expected string, got %T", KeyName, r[KeyName])
	}
	price, err := number(r, KeyPrice)
	if err != nil {
		return Item{}, err
	}
	discount := 0.0
	if _, present := r[KeyDiscount]; present {
		if discount, err = number(r, KeyDiscount); err != nil {
			return Item{}, err
		}
	}
	return Item{Name: name, Price: price, Discount: discount}, nil
}

func number(r Record, key string) (float64, error) {
	switch v := r[key].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s: expected number, got %T", key, v)
	}
}
