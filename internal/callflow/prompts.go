package callflow

import (
	"fmt"
	"strings"

	"github.com/dialdish/dialdish/internal/models"
)

// Fixed prompts for error recovery. Every turn must yield a spoken prompt.
const (
	restaurantUnavailablePrompt = "Sorry, restaurant information is not available."

	apologyPrompt = "I'm sorry, there was an error processing your request. " +
		"Please try again or contact the restaurant directly."

	confirmRetryPrompt = "Please press 1 to confirm order or 2 to cancel."

	completePrompt = "Your order has already been placed. Thank you for calling, goodbye!"
)

// welcomeGreeting derives the greeting from the restaurant name, today's
// business hours, and the active category count.
func welcomeGreeting(r models.Restaurant, today *models.BusinessHour, activeCategories int) string {
	var hours string
	switch {
	case today != nil && today.ClosedAllDay:
		hours = "We are closed today"
	case today != nil:
		hours = fmt.Sprintf("We are open today from %s to %s", today.Opens, today.Closes)
	default:
		hours = "Please check our website for business hours"
	}

	return fmt.Sprintf("Welcome to %s! %s. I can help you place an order today. "+
		"We have %d menu categories available. "+
		"Press 1 to continue with your order, or say menu to hear our options.",
		r.Name, hours, activeCategories)
}

// categoriesPrompt lists the active menu categories, numbered in name order.
func categoriesPrompt(r models.Restaurant, categories []models.MenuCategory) string {
	if len(categories) == 0 {
		return fmt.Sprintf("Sorry, we don't have any active menus available right now. "+
			"Please call us directly at %s for assistance.", r.Phone)
	}

	var b strings.Builder
	b.WriteString("Here are our available menu categories: ")
	for i, cat := range categories {
		fmt.Fprintf(&b, "Press %d for %s. ", i+1, cat.Name)
		if cat.Description != "" {
			b.WriteString(cat.Description + ". ")
		}
	}
	b.WriteString("Which category would you like to order from?")
	return b.String()
}

// itemsPrompt lists the available items of a category with prices, always
// offering 0 to go back.
func itemsPrompt(category models.MenuCategory, items []models.MenuItem) string {
	if len(items) == 0 {
		return fmt.Sprintf("Sorry, %s items are not available right now. "+
			"Press 0 to go back to menu categories or try again later.", category.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Great! You selected %s. Here are the available items: ", category.Name)
	for i, item := range items {
		fmt.Fprintf(&b, "Press %d for %s", i+1, item.Name)
		if item.Price > 0 {
			fmt.Fprintf(&b, " at %s rupees", formatPrice(item.Price))
		}
		b.WriteString(". ")
		if item.Description != "" {
			b.WriteString(item.Description + ". ")
		}
	}
	b.WriteString("Press 0 to go back to menu categories. Which item would you like to order?")
	return b.String()
}

// confirmationPrompt summarizes the pending order and asks for confirmation.
func confirmationPrompt(r models.Restaurant, category models.MenuCategory, item models.MenuItem, callerPhone string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Excellent choice! You've selected %s", item.Name)
	if item.Price > 0 {
		fmt.Fprintf(&b, " for %s rupees", formatPrice(item.Price))
	}
	b.WriteString(". Order summary: ")
	fmt.Fprintf(&b, "Restaurant: %s. Category: %s. Item: %s. ", r.Name, category.Name, item.Name)
	if item.Price > 0 {
		fmt.Fprintf(&b, "Price: %s rupees. ", formatPrice(item.Price))
	}
	fmt.Fprintf(&b, "Your phone: %s. ", orUnknown(callerPhone))
	fmt.Fprintf(&b, "Restaurant details: Address: %s. Phone: %s. ", orUnknown(r.FullAddress()), r.Phone)
	b.WriteString("Press 1 to confirm and submit your order request. Press 2 to cancel and start over. ")
	b.WriteString("A staff member will contact you shortly to confirm details and arrange pickup or delivery.")
	return b.String()
}

// successPrompt announces the submitted order with its reference.
func successPrompt(r models.Restaurant, category models.MenuCategory, items []models.SelectedItem, callerPhone, orderRef string) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order successful! Your order %s has been submitted. ", orderRef)
	fmt.Fprintf(&b, "Restaurant: %s. Category: %s. Items ordered: %s. ",
		r.Name, category.Name, strings.Join(names, ", "))
	fmt.Fprintf(&b, "Your phone: %s. ", orUnknown(callerPhone))
	fmt.Fprintf(&b, "Restaurant contact: %s, phone %s. ", orUnknown(r.FullAddress()), r.Phone)
	fmt.Fprintf(&b, "A staff member will call you shortly to confirm details and pricing. "+
		"Thank you for choosing %s!", r.Name)
	return b.String()
}

func invalidChoicePrompt(n int) string {
	return fmt.Sprintf("Please choose a valid option between 1 and %d.", n)
}

func invalidItemChoicePrompt(n int) string {
	return fmt.Sprintf("Please choose a valid option between 1 and %d, or press 0 to go back.", n)
}

// formatPrice renders a price without trailing zeros ("250", "12.5").
func formatPrice(p float64) string {
	s := fmt.Sprintf("%.2f", p)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
