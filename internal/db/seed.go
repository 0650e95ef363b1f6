package db

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// SeedDemoData loads a demo restaurant with menus, hours and a small
// knowledge base. Existing records are left in place; the demo restaurant is
// recreated under a fixed ID so repeated seeding stays idempotent.
func (c *Client) SeedDemoData(ctx context.Context) error {
	c.logger.Info("seeding demo data")

	_, err := surrealdb.Query[any](ctx, c.db, `
		UPSERT restaurant:demo CONTENT {
			name: "Spice Garden",
			phone: "+91 98765 43210",
			email: "hello@spicegarden.example",
			address: "14 MG Road",
			city: "Bengaluru",
			state: "Karnataka",
			website: "https://spicegarden.example",
			active: true
		};

		DELETE business_hour WHERE restaurant = restaurant:demo;
		CREATE business_hour CONTENT { restaurant: restaurant:demo, day: "monday", opens: "11:00 AM", closes: "10:00 PM" };
		CREATE business_hour CONTENT { restaurant: restaurant:demo, day: "tuesday", opens: "11:00 AM", closes: "10:00 PM" };
		CREATE business_hour CONTENT { restaurant: restaurant:demo, day: "wednesday", opens: "11:00 AM", closes: "10:00 PM" };
		CREATE business_hour CONTENT { restaurant: restaurant:demo, day: "thursday", opens: "11:00 AM", closes: "10:00 PM" };
		CREATE business_hour CONTENT { restaurant: restaurant:demo, day: "friday", opens: "11:00 AM", closes: "11:00 PM" };
		CREATE business_hour CONTENT { restaurant: restaurant:demo, day: "saturday", opens: "12:00 PM", closes: "11:00 PM" };
		CREATE business_hour CONTENT { restaurant: restaurant:demo, day: "sunday", closed_all_day: true };

		DELETE menu_item WHERE category.restaurant = restaurant:demo;
		DELETE menu_category WHERE restaurant = restaurant:demo;
		CREATE menu_category:demo_starters CONTENT { restaurant: restaurant:demo, name: "Starters", active: true };
		CREATE menu_category:demo_mains CONTENT { restaurant: restaurant:demo, name: "Main Course", active: true };
		CREATE menu_category:demo_sweets CONTENT { restaurant: restaurant:demo, name: "Desserts", active: true };

		CREATE menu_item CONTENT { category: menu_category:demo_starters, name: "Paneer Tikka", price: 220.0, available: true, display_order: 1 };
		CREATE menu_item CONTENT { category: menu_category:demo_starters, name: "Veg Spring Rolls", price: 180.0, available: true, display_order: 2 };
		CREATE menu_item CONTENT { category: menu_category:demo_starters, name: "Chicken 65", price: 260.0, available: true, display_order: 3 };
		CREATE menu_item CONTENT { category: menu_category:demo_mains, name: "Butter Chicken", price: 340.0, available: true, display_order: 1 };
		CREATE menu_item CONTENT { category: menu_category:demo_mains, name: "Dal Makhani", price: 240.0, available: true, display_order: 2 };
		CREATE menu_item CONTENT { category: menu_category:demo_mains, name: "Veg Biryani", price: 280.0, available: true, display_order: 3 };
		CREATE menu_item CONTENT { category: menu_category:demo_sweets, name: "Gulab Jamun", price: 120.0, available: true, display_order: 1 };
		CREATE menu_item CONTENT { category: menu_category:demo_sweets, name: "Rasmalai", price: 140.0, available: true, display_order: 2 };
	`, nil)
	if err != nil {
		return fmt.Errorf("seed restaurant: %w", wrapQueryError(err))
	}

	_, err = surrealdb.Query[any](ctx, c.db, `
		DELETE faq; DELETE pricing_plan; DELETE knowledge_item; DELETE service_feature; DELETE success_story;

		CREATE faq CONTENT {
			question: "How does the voice ordering work?",
			answer: "Callers dial your restaurant number, hear your menu and place an order with their phone keypad or voice. You receive the order instantly.",
			category: "general",
			keywords: ["voice", "ordering", "work", "phone"],
			active: true
		};
		CREATE faq CONTENT {
			question: "Do I need new hardware?",
			answer: "No. The service runs entirely in the cloud and forwards orders to the phone and dashboard you already use.",
			category: "setup",
			keywords: ["hardware", "equipment", "install"],
			active: true
		};

		CREATE pricing_plan CONTENT {
			name: "Basic", plan_type: "basic", price: "$99/month",
			description: "For single-location restaurants getting started.",
			features: ["Voice ordering", "Order notifications", "Email support"],
			call_limit: "500 calls per month", display_order: 1, active: true
		};
		CREATE pricing_plan CONTENT {
			name: "Professional", plan_type: "professional", price: "$299/month",
			description: "For busy restaurants that live on the phone.",
			features: ["Everything in Basic", "Menu analytics", "Priority support", "Custom greetings"],
			call_limit: "2000 calls per month", display_order: 2, active: true
		};
		CREATE pricing_plan CONTENT {
			name: "Enterprise", plan_type: "enterprise", price: "custom pricing",
			description: "For chains and franchises.",
			features: ["Everything in Professional", "Dedicated account manager", "Custom integrations"],
			call_limit: "Unlimited calls", display_order: 3, active: true
		};

		CREATE knowledge_item CONTENT {
			title: "Getting started",
			content: "Setup takes under a day: we provision your number, load your menu and run a test call with you before going live.",
			category: "setup",
			keywords: ["setup", "onboarding", "start"],
			confidence_boost: 10, display_order: 1, active: true
		};

		CREATE service_feature CONTENT { name: "24/7 call answering", description: "Never miss an order, even after hours.", display_order: 1, active: true };
		CREATE service_feature CONTENT { name: "Menu management", description: "Update dishes and prices from a simple dashboard.", display_order: 2, active: true };
		CREATE service_feature CONTENT { name: "Order notifications", description: "Instant alerts on every confirmed order.", display_order: 3, active: true };

		CREATE success_story CONTENT {
			restaurant_name: "Tandoor Express",
			restaurant_type: "North Indian takeaway",
			story: "Tandoor Express stopped missing dinner-rush calls and now takes a third of its orders through the assistant.",
			metrics: ["35% of orders by phone assistant", "Zero missed calls in six months"],
			featured: true, display_order: 1, active: true
		};
	`, nil)
	if err != nil {
		return fmt.Errorf("seed knowledge base: %w", wrapQueryError(err))
	}

	c.logger.Info("demo data seeded", "restaurant", "restaurant:demo")
	return nil
}
