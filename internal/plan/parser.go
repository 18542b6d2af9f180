// README: Turns a raw model completion into a validated Itinerary.
package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	msgParseFailed   = "failed to parse travel plan"
	msgInvalidFormat = "invalid travel plan format"
)

var (
	labeledFence = regexp.MustCompile("(?s)```json[ \\t]*\\r?\\n(.*?)\\r?\\n?```")
	bareFence    = regexp.MustCompile("(?s)```[ \\t]*\\r?\\n(.*?)\\r?\\n?```")
)

// extractCandidate returns the interior of the first ```json block, else of the
// first bare ``` block, else the text unchanged.
func extractCandidate(raw string) string {
	if m := labeledFence.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := bareFence.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// Parse extracts and validates an itinerary from raw model output. Every failure
// is a *ParseError carrying the raw text.
func Parse(raw string) (*Itinerary, error) {
	candidate := strings.TrimSpace(extractCandidate(raw))
	if candidate == "" {
		return nil, &ParseError{Msg: msgParseFailed, Raw: raw, Err: errors.New("empty completion")}
	}
	body := []byte(candidate)
	if !json.Valid(body) {
		var probe any
		err := json.Unmarshal(body, &probe)
		return nil, &ParseError{Msg: msgParseFailed, Raw: raw, Err: err}
	}

	result, err := gojsonschema.Validate(itinerarySchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, &ParseError{Msg: msgParseFailed, Raw: raw, Err: err}
	}
	if !result.Valid() {
		return nil, &ParseError{Msg: msgInvalidFormat, Raw: raw, Err: schemaErrors(result.Errors())}
	}

	var wire wireItinerary
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &ParseError{Msg: msgInvalidFormat, Raw: raw, Err: err}
	}
	return wire.itinerary(), nil
}

func schemaErrors(errs []gojsonschema.ResultError) error {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}
	return fmt.Errorf("%s", strings.Join(parts, "; "))
}

// wire types accept integral floats such as 1.0 for day numbers, which the
// schema treats as integers but encoding/json would reject for an int field.
type wireItinerary struct {
	Summary         string       `json:"summary"`
	Days            []wireDay    `json:"days"`
	BudgetBreakdown []BudgetItem `json:"budgetBreakdown"`
	TravelTips      []string     `json:"travelTips"`
}

type wireDay struct {
	Day        float64    `json:"day"`
	Activities []Activity `json:"activities"`
}

func (w wireItinerary) itinerary() *Itinerary {
	it := &Itinerary{
		Summary:         w.Summary,
		Days:            make([]Day, 0, len(w.Days)),
		BudgetBreakdown: make([]BudgetItem, 0, len(w.BudgetBreakdown)),
		TravelTips:      make([]string, 0, len(w.TravelTips)),
	}
	for _, d := range w.Days {
		acts := make([]Activity, 0, len(d.Activities))
		acts = append(acts, d.Activities...)
		it.Days = append(it.Days, Day{Day: int(d.Day), Activities: acts})
	}
	it.BudgetBreakdown = append(it.BudgetBreakdown, w.BudgetBreakdown...)
	it.TravelTips = append(it.TravelTips, w.TravelTips...)
	return it
}
