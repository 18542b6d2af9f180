// README: Itinerary types returned by the plan parser, plus parse errors and warnings.
package plan

type Itinerary struct {
	Summary         string       `json:"summary"`
	Days            []Day        `json:"days"`
	BudgetBreakdown []BudgetItem `json:"budgetBreakdown"`
	TravelTips      []string     `json:"travelTips"`
}

type Day struct {
	Day        int        `json:"day"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Time        string  `json:"time"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Cost        float64 `json:"cost"`
}

type BudgetItem struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// WarningCode identifies a consistency problem that does not invalidate a plan.
type WarningCode string

const (
	WarnPercentageSum WarningCode = "budget_percentage_sum"
	WarnExceedsBudget WarningCode = "budget_exceeds_request"
	WarnDaySequence   WarningCode = "day_sequence"
)

type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// ParseError reports a completion that could not be turned into an Itinerary.
// Raw keeps the full completion for logging; it is never part of Error().
type ParseError struct {
	Msg string
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }
