// Package models defines the domain types for the DialDish voice-ordering core.
package models

import "time"

// Step identifies the stage of the ordering state machine.
type Step string

// Ordering dialogue steps. A session moves forward through these except for
// the two backward edges (item selection back to menu selection, and
// cancellation back to welcome).
const (
	StepWelcome           Step = "welcome"
	StepMenuSelection     Step = "menu_selection"
	StepItemSelection     Step = "item_selection"
	StepOrderConfirmation Step = "order_confirmation"
	StepComplete          Step = "complete"
)

// Valid reports whether s is one of the defined dialogue steps.
func (s Step) Valid() bool {
	switch s {
	case StepWelcome, StepMenuSelection, StepItemSelection, StepOrderConfirmation, StepComplete:
		return true
	}
	return false
}

// SelectedItem is one line of an in-progress order.
type SelectedItem struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Session tracks one ordering conversation per call. RestaurantID and
// CustomerInfo are set once at creation and never reassigned.
type Session struct {
	ID             string            `json:"id"`
	Step           Step              `json:"step"`
	RestaurantID   string            `json:"restaurant_id"`
	SelectedMenuID string            `json:"selected_menu_id,omitempty"`
	SelectedItems  []SelectedItem    `json:"selected_items,omitempty"`
	CustomerInfo   map[string]string `json:"customer_info,omitempty"`

	// Last applied turn, used to recognise duplicate webhook deliveries.
	LastInput  string `json:"last_input,omitempty"`
	LastPrompt string `json:"last_prompt,omitempty"`
	LastStep   Step   `json:"last_step,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a session at the welcome step.
func NewSession(id, restaurantID string, customerInfo map[string]string, now time.Time) Session {
	return Session{
		ID:           id,
		Step:         StepWelcome,
		RestaurantID: restaurantID,
		CustomerInfo: customerInfo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ResetToWelcome clears the menu/item selections and returns the session to
// the welcome step. Used by the cancellation edge.
func (s *Session) ResetToWelcome() {
	s.Step = StepWelcome
	s.SelectedMenuID = ""
	s.SelectedItems = nil
}

// Customer returns a customer info field, or empty string when absent.
func (s *Session) Customer(key string) string {
	if s.CustomerInfo == nil {
		return ""
	}
	return s.CustomerInfo[key]
}
