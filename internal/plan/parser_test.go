package plan

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlan = `{
  "summary": "Five days of food and history in Lisbon.",
  "days": [
    {"day": 1, "activities": [
      {"time": "9:00 AM - 11:00 AM", "description": "Tram 28 ride", "location": "Alfama", "cost": 3},
      {"time": "1:00 PM - 2:00 PM", "description": "Lunch", "location": "Time Out Market", "cost": 25.5}
    ]},
    {"day": 2, "activities": []}
  ],
  "budgetBreakdown": [
    {"category": "Accommodation", "amount": 800, "percentage": 40},
    {"category": "Food", "amount": 600, "percentage": 30},
    {"category": "Activities", "amount": 600, "percentage": 30}
  ],
  "travelTips": ["Buy a Viva Viagem card", "Wear comfortable shoes"]
}`

func TestParse_ScenarioFencedEmptyPlan(t *testing.T) {
	raw := "Here:\n```json\n{\"summary\":\"ok\",\"days\":[],\"budgetBreakdown\":[],\"travelTips\":[]}\n```"

	it, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, &Itinerary{
		Summary:         "ok",
		Days:            []Day{},
		BudgetBreakdown: []BudgetItem{},
		TravelTips:      []string{},
	}, it)
}

func TestParse_BareAndFencedAreIdentical(t *testing.T) {
	bare, err := Parse(samplePlan)
	require.NoError(t, err)

	wrappers := map[string]string{
		"json fence":        "```json\n" + samplePlan + "\n```",
		"bare fence":        "```\n" + samplePlan + "\n```",
		"with prose":        "Sure! Here is your plan:\n\n```json\n" + samplePlan + "\n```\nEnjoy.",
		"crlf fence":        "```json\r\n" + samplePlan + "\r\n```",
		"surrounding space": "\n\n  " + samplePlan + "  \n",
	}
	for name, raw := range wrappers {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, bare, got)
		})
	}
}

func TestParse_CopiesFields(t *testing.T) {
	it, err := Parse(samplePlan)
	require.NoError(t, err)

	assert.Equal(t, "Five days of food and history in Lisbon.", it.Summary)
	require.Len(t, it.Days, 2)
	assert.Equal(t, 1, it.Days[0].Day)
	assert.Equal(t, Activity{
		Time:        "1:00 PM - 2:00 PM",
		Description: "Lunch",
		Location:    "Time Out Market",
		Cost:        25.5,
	}, it.Days[0].Activities[1])
	assert.NotNil(t, it.Days[1].Activities)
	assert.Empty(t, it.Days[1].Activities)
	assert.Equal(t, BudgetItem{Category: "Food", Amount: 600, Percentage: 30}, it.BudgetBreakdown[1])
	assert.Equal(t, []string{"Buy a Viva Viagem card", "Wear comfortable shoes"}, it.TravelTips)
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		samplePlan,
		`{"summary":"","days":[{"day":1.0,"activities":[]}],"budgetBreakdown":[],"travelTips":[],"extra":true}`,
		`{"summary":"s","days":[],"budgetBreakdown":[{"category":"x","amount":-5,"percentage":0.5}],"travelTips":["a"]}`,
		`{"summary":"s","days":[{"day":10000,"activities":[]}],"budgetBreakdown":[],"travelTips":[]}`,
	}
	for _, in := range inputs {
		first, err := Parse(in)
		require.NoError(t, err)

		out, err := json.Marshal(first)
		require.NoError(t, err)

		second, err := Parse(string(out))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestParse_IgnoresExtraProperties(t *testing.T) {
	it, err := Parse(`{"summary":"s","days":[{"day":1,"activities":[{"time":"t","description":"d","location":"l","cost":0,"rating":5}],"theme":"x"}],"budgetBreakdown":[],"travelTips":[],"currency":"EUR"}`)
	require.NoError(t, err)
	assert.Equal(t, "l", it.Days[0].Activities[0].Location)
}

func TestParse_Failures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		msg  string
	}{
		{"empty", "", msgParseFailed},
		{"whitespace", "   \n\t", msgParseFailed},
		{"prose only", "Sorry, I cannot help with that.", msgParseFailed},
		{"empty fence", "```json\n\n```", msgParseFailed},
		{"truncated", `{"summary":"s","days":[`, msgParseFailed},
		{"missing summary", `{"days":[],"budgetBreakdown":[],"travelTips":[]}`, msgInvalidFormat},
		{"missing days", `{"summary":"s","budgetBreakdown":[],"travelTips":[]}`, msgInvalidFormat},
		{"missing breakdown", `{"summary":"s","days":[],"travelTips":[]}`, msgInvalidFormat},
		{"missing tips", `{"summary":"s","days":[],"budgetBreakdown":[]}`, msgInvalidFormat},
		{"days not array", `{"summary":"s","days":{},"budgetBreakdown":[],"travelTips":[]}`, msgInvalidFormat},
		{"summary not string", `{"summary":1,"days":[],"budgetBreakdown":[],"travelTips":[]}`, msgInvalidFormat},
		{"top level array", `[1,2,3]`, msgInvalidFormat},
		{"null", `null`, msgInvalidFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it, err := Parse(tc.raw)
			assert.Nil(t, it)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tc.msg, perr.Msg)
			assert.Equal(t, tc.raw, perr.Raw)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestParse_RejectsMistypedLeaves(t *testing.T) {
	wrap := func(days, breakdown, tips string) string {
		return `{"summary":"s","days":` + days + `,"budgetBreakdown":` + breakdown + `,"travelTips":` + tips + `}`
	}
	act := func(fields string) string {
		return `[{"day":1,"activities":[` + fields + `]}]`
	}
	cases := map[string]string{
		"cost as string":       wrap(act(`{"time":"t","description":"d","location":"l","cost":"12"}`), `[]`, `[]`),
		"negative cost":        wrap(act(`{"time":"t","description":"d","location":"l","cost":-1}`), `[]`, `[]`),
		"location missing":     wrap(act(`{"time":"t","description":"d","cost":1}`), `[]`, `[]`),
		"time as number":       wrap(act(`{"time":9,"description":"d","location":"l","cost":1}`), `[]`, `[]`),
		"day as string":        wrap(`[{"day":"1","activities":[]}]`, `[]`, `[]`),
		"day zero":             wrap(`[{"day":0,"activities":[]}]`, `[]`, `[]`),
		"fractional day":       wrap(`[{"day":1.5,"activities":[]}]`, `[]`, `[]`),
		"day above maximum":    wrap(`[{"day":10001,"activities":[]}]`, `[]`, `[]`),
		"day 1e300":            wrap(`[{"day":1e300,"activities":[]}]`, `[]`, `[]`),
		"day max int64":        wrap(`[{"day":9223372036854775807,"activities":[]}]`, `[]`, `[]`),
		"activities missing":   wrap(`[{"day":1}]`, `[]`, `[]`),
		"amount as string":     wrap(`[]`, `[{"category":"c","amount":"5","percentage":5}]`, `[]`),
		"percentage over 100":  wrap(`[]`, `[{"category":"c","amount":5,"percentage":120}]`, `[]`),
		"category as number":   wrap(`[]`, `[{"category":3,"amount":5,"percentage":5}]`, `[]`),
		"tip as object":        wrap(`[]`, `[]`, `[{"tip":"x"}]`),
		"day entry not object": wrap(`[1]`, `[]`, `[]`),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(raw)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, msgInvalidFormat, perr.Msg)
		})
	}
}

func TestParse_PrefersLabeledFence(t *testing.T) {
	raw := "```\nnot json\n```\nand the plan:\n```json\n{\"summary\":\"labeled\",\"days\":[],\"budgetBreakdown\":[],\"travelTips\":[]}\n```"
	it, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "labeled", it.Summary)
}
