// README: Trip request captured from the planning form, plus the typed context used for follow-up questions.
package trip

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the wire and display format for trip dates.
const DateLayout = "2006-01-02"

// DefaultInterests are the predefined interest labels offered by the planning form.
var DefaultInterests = []string{
	"Nature",
	"History",
	"Culture",
	"Cuisine",
	"Adventure",
	"Shopping",
	"Relaxation",
	"Architecture",
	"Art",
	"Nightlife",
	"Wildlife",
	"Photography",
	"Beaches",
	"Mountains",
	"Local Experiences",
}

// Request holds the user-supplied trip parameters. It is built once per form
// submission and treated as immutable afterwards.
type Request struct {
	Source      string    `validate:"required"`
	Destination string    `validate:"required"`
	StartDate   time.Time `validate:"required"`
	EndDate     time.Time `validate:"required,gtefield=StartDate"`
	Budget      float64   `validate:"gte=100,lte=1000000"`
	Travelers   int       `validate:"gte=1,lte=20"`
	Interests   []string  `validate:"min=1,dive,required"`
}

// Normalize trims text fields and drops repeated interests, keeping the first occurrence.
func (r Request) Normalize() Request {
	r.Source = strings.TrimSpace(r.Source)
	r.Destination = strings.TrimSpace(r.Destination)

	seen := make(map[string]struct{}, len(r.Interests))
	interests := make([]string, 0, len(r.Interests))
	for _, in := range r.Interests {
		in = strings.TrimSpace(in)
		if _, dup := seen[in]; dup && in != "" {
			continue
		}
		seen[in] = struct{}{}
		interests = append(interests, in)
	}
	r.Interests = interests
	return r
}

// Days returns the inclusive trip length in whole days: ceil((end-start)/24h) + 1.
func (r Request) Days() int {
	return DaysBetween(r.StartDate, r.EndDate)
}

// DateRangeLabel renders "<start> to <end> (<N> days)" for display.
func (r Request) DateRangeLabel() string {
	return r.Context().DateRangeLabel()
}

// Context returns the typed trip context used by follow-up questions.
func (r Request) Context() Context {
	return Context{
		Source:      r.Source,
		Destination: r.Destination,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Days:        r.Days(),
	}
}

// Context is what a follow-up question needs to know about the trip.
// Days is carried explicitly so nothing downstream has to re-derive it from display text.
type Context struct {
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Days        int       `json:"days"`
}

// Duration returns Days, falling back to the dates and finally to 1.
func (c Context) Duration() int {
	if c.Days > 0 {
		return c.Days
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() {
		if d := DaysBetween(c.StartDate, c.EndDate); d > 0 {
			return d
		}
	}
	return 1
}

// DateRangeLabel renders "<start> to <end> (<N> days)", or "(1 day)" for a single day.
func (c Context) DateRangeLabel() string {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s to %s (%s)", c.StartDate.Format(DateLayout), c.EndDate.Format(DateLayout), DayCount(c.Duration()))
}

// DayCount renders n with "day" or "days".
func DayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// DaysBetween computes ceil((end-start)/24h) + 1.
func DaysBetween(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", v, DateLayout)
	}
	return t, nil
}
