package client

import (
	"fmt"
	"time"
)

// User is the account profile returned by the API
type User struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LoginRequest is the /auth/login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the /auth/register payload
type RegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// AuthResult is what a successful login returns
type AuthResult struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// Appointment is a booking
type Appointment struct {
	ID              string    `json:"id,omitempty"`
	CustomerName    string    `json:"customerName"`
	ServiceName     string    `json:"serviceName"`
	SpecialistName  string    `json:"specialistName"`
	AppointmentDate string    `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	IsApproved      bool      `json:"isApproved"`
	UserID          string    `json:"userId,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// CreateAppointment is the booking payload
type CreateAppointment struct {
	CustomerName    string `json:"customerName"`
	ServiceName     string `json:"serviceName"`
	SpecialistName  string `json:"specialistName"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
}

// AppointmentFilter narrows the admin appointment list
type AppointmentFilter struct {
	Specialist string
	Date       string
	Approved   *bool
	Limit      int
	Offset     int
}

// Availability lists free and taken slots for a specialist on a date
type Availability struct {
	SpecialistName string   `json:"specialistName"`
	Date           string   `json:"date"`
	Slots          []string `json:"slots"`
	Unavailable    []string `json:"unavailable"`
}

// Category is a product category
type Category struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Product is a store item
type Product struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	ImageURL      string   `json:"imageUrl"`
	CategoryName  string   `json:"categoryName"`
}

// EffectivePrice is the discount price when set, otherwise the list price
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// ProductSearchResult is one page of search hits
type ProductSearchResult struct {
	Products   []Product `json:"products"`
	TotalCount int       `json:"totalCount"`
}

// ServiceItem is one bookable line of a service category
type ServiceItem struct {
	ID       string  `json:"id,omitempty"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Price    float64 `json:"price"`
	Type     string  `json:"type"`
}

// ServiceCategory groups service items
type ServiceCategory struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Items       []ServiceItem `json:"items"`
}

// UIService is one category item flattened for display
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

// Flatten expands categories into one UIService per item, keeping order.
// The id is "{categoryId}-{itemId}".
func Flatten(categories []ServiceCategory) []UIService {
	out := []UIService{}
	for _, c := range categories {
		for _, item := range c.Items {
			out = append(out, UIService{
				ID:           fmt.Sprintf("%s-%s", c.ID, item.ID),
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

// TeamMember is a bookable specialist
type TeamMember struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	Specialty       string `json:"specialty"`
	Description     string `json:"description"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// CartItem is a checkout line
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderLine is a priced order line
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

// Order is a placed order
type Order struct {
	ID         string      `json:"id"`
	Lines      []OrderLine `json:"lines"`
	Subtotal   float64     `json:"subtotal"`
	Tax        float64     `json:"tax"`
	Total      float64     `json:"total"`
	Status     string      `json:"status"`
	PaymentURL string      `json:"paymentUrl,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}
