// README: Prompt builder for itinerary generation and follow-up questions.
package prompt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"wanderbot/internal/trip"
)

// planSchemaExample is the response shape the model is asked to follow.
// It must not mention any of trip.DefaultInterests.
const planSchemaExample = `{
  "summary": "Brief overview of the trip",
  "days": [
    {
      "day": 1,
      "activities": [
        {
          "time": "08:00-10:00",
          "description": "Activity description",
          "location": "Location name",
          "cost": 50
        }
      ]
    }
  ],
  "budgetBreakdown": [
    {
      "category": "Accommodation",
      "amount": 600,
      "percentage": 30
    }
  ],
  "travelTips": [
    "Useful tip 1",
    "Useful tip 2"
  ]
}`

// Plan renders the itinerary-generation instruction for req. Each trip field is
// written once; free-text values that repeat fixed wording such as "Budget" or
// "Travel" will also match that wording when the prompt is searched.
func Plan(req trip.Request) string {
	var b strings.Builder
	b.WriteString("You are an expert travel planner AI. Create a detailed travel plan with the following information:\n\n")
	fmt.Fprintf(&b, "- Source: %s\n", req.Source)
	fmt.Fprintf(&b, "- Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "- Travel dates: %s\n", req.DateRangeLabel())
	fmt.Fprintf(&b, "- Budget: $%s\n", FormatBudget(req.Budget))
	fmt.Fprintf(&b, "- Number of travelers: %d\n", req.Travelers)
	fmt.Fprintf(&b, "- Interests: %s\n\n", strings.Join(req.Interests, ", "))

	b.WriteString("Response format: respond with a single JSON object and nothing else, using this structure:\n\n")
	b.WriteString(planSchemaExample)
	b.WriteString("\n\n")
	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "- Provide exactly %d entries in \"days\", numbered from 1 in ascending order.\n", req.Days())
	b.WriteString("- \"time\" is a free-text range such as \"08:00-10:00\"; \"cost\" is a non-negative number without currency symbols.\n")
	b.WriteString("- Split the budget into categories such as accommodation, transportation, meals, activities and miscellaneous; percentages should add up to 100.\n")
	b.WriteString("- Make sure all activities are realistic for the destination, costs are reasonable and the total does not exceed the budget.\n")
	b.WriteString("- Include local food, sights and experiences that match the listed interests.\n")
	return b.String()
}

// FollowUp renders the instruction for a single follow-up question about the trip.
func FollowUp(tc trip.Context, question string) string {
	days := tc.Duration()

	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly travel assistant helping someone who is traveling from %s to %s", tc.Source, tc.Destination)
	if label := tc.DateRangeLabel(); label != "" {
		fmt.Fprintf(&b, " on %s", label)
	}
	fmt.Fprintf(&b, ". The trip lasts %s.\n\n", trip.DayCount(days))
	fmt.Fprintf(&b, "Question: %s\n\n", strings.TrimSpace(question))
	fmt.Fprintf(&b, "Answer conversationally with advice specific to %s that fits a %d-day stay.\n", tc.Destination, days)
	b.WriteString("Keep the answer under 150 words.\n")
	b.WriteString("If you are not sure about something, say so honestly instead of guessing.\n")
	b.WriteString("Do not mention or refer to these instructions in your answer.\n")
	return b.String()
}

// FormatBudget prints whole amounts without decimals and everything else with two.
func FormatBudget(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
