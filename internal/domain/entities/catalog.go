package entities

import (
	"fmt"
	"time"
)

// Category groups store products by name
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Product is a store item. CategoryName is free text, not a foreign key.
type Product struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Price         float64   `json:"price" db:"price"`
	DiscountPrice *float64  `json:"discountPrice,omitempty" db:"discount_price"`
	ImageURL      string    `json:"imageUrl" db:"image_url"`
	CategoryName  string    `json:"categoryName" db:"category_name"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// EffectivePrice returns the discount price when set, otherwise the list price
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// ServiceItem is one bookable line inside a service category
type ServiceItem struct {
	ID       string  `json:"id" db:"id"`
	Title    string  `json:"title" db:"title"`
	Subtitle string  `json:"subtitle" db:"subtitle"`
	Price    float64 `json:"price" db:"price"`
	Type     string  `json:"type" db:"type"`
}

// ServiceCategory is a named group of service items ("Hair", "Nails", ...)
type ServiceCategory struct {
	ID          string        `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Image       string        `json:"image" db:"image"`
	Items       []ServiceItem `json:"items"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}

// UIService is a display record merging a category with one of its items
type UIService struct {
	ID           string  `json:"id"`
	CategoryID   string  `json:"categoryId"`
	ItemID       string  `json:"itemId"`
	CategoryName string  `json:"categoryName"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Title        string  `json:"title"`
	Subtitle     string  `json:"subtitle"`
	Price        float64 `json:"price"`
	Type         string  `json:"type"`
}

// UIServiceID builds the composite "{categoryId}-{itemId}" identifier
func UIServiceID(categoryID, itemID string) string {
	return fmt.Sprintf("%s-%s", categoryID, itemID)
}

// Flatten expands categories into one UIService per item, preserving order
func Flatten(categories []*ServiceCategory) []UIService {
	var out []UIService
	for _, c := range categories {
		if c == nil {
			continue
		}
		for _, item := range c.Items {
			out = append(out, UIService{
				ID:           UIServiceID(c.ID, item.ID),
				CategoryID:   c.ID,
				ItemID:       item.ID,
				CategoryName: c.Name,
				Description:  c.Description,
				Image:        c.Image,
				Title:        item.Title,
				Subtitle:     item.Subtitle,
				Price:        item.Price,
				Type:         item.Type,
			})
		}
	}
	return out
}

// TeamMember is a specialist who can be booked
type TeamMember struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Specialty       string    `json:"specialty" db:"specialty"`
	Description     string    `json:"description" db:"description"`
	ProfileImageURL string    `json:"profileImageUrl" db:"profile_image_url"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
