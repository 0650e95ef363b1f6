package knowledge

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dialdish/dialdish/internal/models"
)

// Fixed replies for queries the knowledge base cannot serve.
const (
	redirectReply = "I'd be happy to help you learn about our restaurant voice assistant services. " +
		"Could you please ask me something specific about our AI voice solutions for restaurants?"

	farewellReply = "Thank you for your interest in our restaurant voice assistant services. " +
		"Have a wonderful day. Goodbye!"

	pricingFallback = "We offer three pricing tiers: Basic at $99/month for smaller restaurants, " +
		"Professional at $299/month for growing businesses, and Enterprise with custom pricing " +
		"for larger operations. Which would you like to know more about?"

	genericFallback = "I have information about that topic, but I'm having trouble formatting " +
		"the response right now. Could you try asking in a different way?"
)

// Format renders the best match into one conversational reply. Formatting
// never fails: a panic inside a type branch is replaced by that type's
// fallback sentence.
func Format(matches []models.Match, query string) string {
	if len(matches) == 0 {
		return redirectReply
	}

	best := matches[0]
	for _, m := range matches[1:] {
		if m.Confidence > best.Confidence {
			best = m
		}
	}

	reply, ok := formatMatch(best, query)
	if !ok {
		if best.Source == models.SourcePricing {
			return pricingFallback
		}
		return genericFallback
	}
	return reply
}

// formatMatch dispatches on the match source. ok is false when the branch
// panicked and the caller should substitute a fallback.
func formatMatch(m models.Match, query string) (reply string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("response formatting failed", "source", m.Source, "panic", r)
			ok = false
		}
	}()

	switch m.Source {
	case models.SourceGoodbye:
		return farewellReply, true
	case models.SourceFAQ:
		return m.FAQ.Answer, true
	case models.SourcePricing:
		return formatPricing(m.Plans, strings.ToLower(query)), true
	case models.SourceKnowledgeItem:
		return models.Truncate(m.Item.Content, 300), true
	case models.SourceFeatures:
		return formatFeatures(m.Features), true
	case models.SourceStories:
		return formatStories(m.Stories), true
	default:
		return "I have information about that topic. Could you be more specific about what " +
			"you'd like to know regarding our restaurant voice assistant services?", true
	}
}

func formatPricing(plans []models.PricingPlan, q string) string {
	if len(plans) == 0 {
		return "We offer multiple pricing plans. Let me get the specific pricing details for you."
	}

	if plan := requestedPlan(plans, q); plan != nil {
		return formatPlanDetail(*plan)
	}

	if len(plans) >= 3 {
		summaries := make([]string, 0, 3)
		for _, plan := range plans[:3] {
			summaries = append(summaries, fmt.Sprintf("%s at %s", plan.Name, plan.Price))
		}
		return fmt.Sprintf("We offer three main pricing plans: %s, %s, and %s. "+
			"Which plan would you like detailed information about?",
			summaries[0], summaries[1], summaries[2])
	}

	return fmt.Sprintf("We offer %d pricing plans starting from %s. "+
		"Would you like details about our plans and features?", len(plans), plans[0].Price)
}

// requestedPlan returns the plan whose tier the caller named, if any.
func requestedPlan(plans []models.PricingPlan, q string) *models.PricingPlan {
	var tier string
	switch {
	case strings.Contains(q, "basic"):
		tier = "basic"
	case strings.Contains(q, "professional"), strings.Contains(q, "pro"):
		tier = "professional"
	case strings.Contains(q, "enterprise"):
		tier = "enterprise"
	default:
		return nil
	}
	for i := range plans {
		if plans[i].PlanType == tier {
			return &plans[i]
		}
	}
	return nil
}

func formatPlanDetail(plan models.PricingPlan) string {
	price := plan.Price
	if price == "" {
		price = "Contact us"
	}

	var features string
	switch {
	case len(plan.Features) > 3:
		features = fmt.Sprintf(" Key features include: %s, and %s.",
			strings.Join(plan.Features[:3], ", "), plan.Features[3])
	case len(plan.Features) > 0:
		features = fmt.Sprintf(" Key features include: %s.", strings.Join(plan.Features, ", "))
	}

	var callLimit string
	if plan.CallLimit != "" {
		callLimit = fmt.Sprintf(" This plan supports %s.", plan.CallLimit)
	}

	return fmt.Sprintf("The %s is priced at %s.%s%s Would you like to know more about "+
		"this plan or compare it with others?", plan.Name, price, callLimit, features)
}

func formatFeatures(features []models.ServiceFeature) string {
	if len(features) > 4 {
		features = features[:4]
	}
	if len(features) == 0 {
		return "Our voice assistant has many powerful features. Would you like me to tell you about them?"
	}

	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.Name)
	}

	if len(names) >= 3 {
		reply := fmt.Sprintf("Our voice assistant includes key features like %s", strings.Join(names[:3], ", "))
		if len(names) > 3 {
			reply += ", and " + names[3]
		}
		return reply + ". Would you like details about any specific feature?"
	}
	return fmt.Sprintf("Our voice assistant includes features like %s. "+
		"Would you like more details about these capabilities?", strings.Join(names, ", "))
}

func formatStories(stories []models.SuccessStory) string {
	if len(stories) == 0 {
		return "We have many success stories from restaurants. Would you like to hear some examples?"
	}
	story := stories[0]
	return fmt.Sprintf("Here's a great example: %s %s Would you like to hear more success stories?",
		story.RestaurantName, models.Truncate(story.Story, 200))
}
