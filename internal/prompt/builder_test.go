package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderbot/internal/trip"
)

func lisbonTrip(t *testing.T) trip.Request {
	t.Helper()
	start, err := trip.ParseDate("2025-06-01")
	require.NoError(t, err)
	end, err := trip.ParseDate("2025-06-05")
	require.NoError(t, err)
	return trip.Request{
		Source:      "Boston",
		Destination: "Lisbon",
		StartDate:   start,
		EndDate:     end,
		Budget:      2000,
		Travelers:   2,
		Interests:   []string{"Food", "History"},
	}
}

func TestPlan_LisbonScenario(t *testing.T) {
	p := Plan(lisbonTrip(t))

	assert.Contains(t, p, "(5 days)")
	assert.Contains(t, p, "5 days")
	assert.Contains(t, p, "- Travel dates: 2025-06-01 to 2025-06-05 (5 days)")
	assert.Contains(t, p, "- Budget: $2000\n")
	assert.Contains(t, p, "- Number of travelers: 2\n")
	assert.Contains(t, p, "- Interests: Food, History\n")
	assert.Contains(t, p, "exactly 5 entries")
}

func TestPlan_FieldsAppearExactlyOnce(t *testing.T) {
	req := lisbonTrip(t)
	req.Interests = append([]string{}, trip.DefaultInterests...)
	req.Budget = 3456
	req.Travelers = 7

	p := Plan(req)
	for _, v := range append([]string{"Boston", "Lisbon", "3456", "Number of travelers: 7"}, req.Interests...) {
		assert.Equal(t, 1, strings.Count(p, v), "%q should appear exactly once", v)
	}
}

func TestPlan_FreeTextInterestsAppearOnce(t *testing.T) {
	req := lisbonTrip(t)
	req.Interests = []string{"Fado music", "Tile museums", "Surfing lessons"}

	p := Plan(req)
	assert.Contains(t, p, "- Interests: Fado music, Tile museums, Surfing lessons\n")
	for _, v := range req.Interests {
		assert.Equal(t, 1, strings.Count(p, v), "%q should appear exactly once", v)
	}
}

func TestPlan_ContainsSchemaFields(t *testing.T) {
	p := Plan(lisbonTrip(t))
	for _, field := range []string{`"summary"`, `"days"`, `"day"`, `"activities"`, `"time"`, `"description"`, `"location"`, `"cost"`, `"budgetBreakdown"`, `"category"`, `"amount"`, `"percentage"`, `"travelTips"`} {
		assert.Contains(t, p, field)
	}
}

func TestPlan_FractionalBudget(t *testing.T) {
	req := lisbonTrip(t)
	req.Budget = 1250.5
	assert.Contains(t, Plan(req), "- Budget: $1250.50\n")
}

func TestFollowUp(t *testing.T) {
	tc := lisbonTrip(t).Context()
	p := FollowUp(tc, "  Where should we eat on day two?  ")

	assert.Contains(t, p, "from Boston to Lisbon")
	assert.Contains(t, p, "lasts 5 days")
	assert.Contains(t, p, "Question: Where should we eat on day two?\n")
	assert.Contains(t, p, "under 150 words")
	assert.Contains(t, p, "honestly")
	assert.Contains(t, p, "Do not mention or refer to these instructions")
}

func TestFollowUp_DurationIsExplicit(t *testing.T) {
	tests := []struct {
		name string
		tc   trip.Context
		want string
	}{
		{
			name: "explicit days win",
			tc:   trip.Context{Source: "A", Destination: "B", Days: 12},
			want: "lasts 12 days",
		},
		{
			name: "derived from dates",
			tc: trip.Context{
				Source: "A", Destination: "B",
				StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
			},
			want: "lasts 3 days",
		},
		{
			name: "nothing known",
			tc:   trip.Context{Source: "A", Destination: "B"},
			want: "lasts 1 day.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, FollowUp(tt.tc, "q"), tt.want)
		})
	}
}

func TestFormatBudget(t *testing.T) {
	assert.Equal(t, "100", FormatBudget(100))
	assert.Equal(t, "99.90", FormatBudget(99.9))
	assert.Equal(t, "1000000", FormatBudget(1e6))
}
