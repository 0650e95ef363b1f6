package models

import "time"

// Restaurant holds the contact profile spoken back to callers.
type Restaurant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Website string `json:"website,omitempty"`
}

// FullAddress joins the address components for prompts.
func (r Restaurant) FullAddress() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.Address, r.City, r.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	s := parts[0]
	for _, p := range parts[1:] {
		s += ", " + p
	}
	return s
}

// BusinessHour is one weekday's opening hours. Opens and Closes are display
// strings ("09:00 AM") ready to be spoken.
type BusinessHour struct {
	Day          string `json:"day"`
	Opens        string `json:"opens,omitempty"`
	Closes       string `json:"closes,omitempty"`
	ClosedAllDay bool   `json:"closed_all_day,omitempty"`
}

// MenuCategory is an orderable menu section. Categories are presented in
// name order.
type MenuCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// MenuItem is one dish. Price <= 0 means no price is announced.
// Presentation order is (display_order, name) ascending.
type MenuItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price,omitempty"`
	Available    bool    `json:"available"`
	DisplayOrder int     `json:"display_order"`
}

// OrderRequest is the immutable order emitted at the confirmation step.
// Persistence and notification happen behind the order boundary.
type OrderRequest struct {
	RestaurantID   string         `json:"restaurant_id"`
	RestaurantName string         `json:"restaurant_name"`
	CategoryID     string         `json:"category_id"`
	CategoryName   string         `json:"category_name"`
	Items          []SelectedItem `json:"items"`
	CustomerPhone  string         `json:"customer_phone"`
	Notes          string         `json:"notes,omitempty"`
	PlacedAt       time.Time      `json:"placed_at"`
}
