// README: Command-line client: stores the API key, generates an itinerary and asks follow-up questions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"wanderbot/internal/app"
	"wanderbot/internal/config"
	"wanderbot/internal/plan"
	"wanderbot/internal/service"
	"wanderbot/internal/trip"
)

type options struct {
	setKey    string
	from      string
	to        string
	start     string
	end       string
	budget    float64
	travelers int
	interests string
	ask       string
	timeout   time.Duration
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("wanderbot", flag.ContinueOnError)
	fs.StringVar(&o.setKey, "set-key", "", "store the Gemini API key and exit")
	fs.StringVar(&o.from, "from", "", "departure city")
	fs.StringVar(&o.to, "to", "", "destination")
	fs.StringVar(&o.start, "start", "", "start date (YYYY-MM-DD)")
	fs.StringVar(&o.end, "end", "", "end date (YYYY-MM-DD)")
	fs.Float64Var(&o.budget, "budget", 2000, "total budget in dollars")
	fs.IntVar(&o.travelers, "travelers", 1, "number of travelers")
	fs.StringVar(&o.interests, "interests", "", "comma-separated interests, e.g. Food,History")
	fs.StringVar(&o.ask, "ask", "", "follow-up question about the generated trip")
	fs.DurationVar(&o.timeout, "timeout", 2*time.Minute, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func (o options) request() (trip.Request, error) {
	start, err := trip.ParseDate(o.start)
	if err != nil {
		return trip.Request{}, err
	}
	end, err := trip.ParseDate(o.end)
	if err != nil {
		return trip.Request{}, err
	}
	var interests []string
	for _, in := range strings.Split(o.interests, ",") {
		if in = strings.TrimSpace(in); in != "" {
			interests = append(interests, in)
		}
	}
	return trip.Request{
		Source:      o.from,
		Destination: o.to,
		StartDate:   start,
		EndDate:     end,
		Budget:      o.budget,
		Travelers:   o.travelers,
		Interests:   interests,
	}, nil
}

func main() {
	log.SetFlags(0)
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	planner, closeStore, err := app.NewPlanner(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	if err := run(ctx, planner, opts, os.Stdout); err != nil {
		log.Print(userMessage(err))
		closeStore()
		os.Exit(1)
	}
}

func run(ctx context.Context, planner *service.TripPlanner, opts options, out io.Writer) error {
	if opts.setKey != "" {
		if err := planner.SetCredential(ctx, opts.setKey); err != nil {
			return err
		}
		fmt.Fprintln(out, "API key saved.")
		return nil
	}

	req, err := opts.request()
	if err != nil {
		return err
	}
	res, err := planner.GeneratePlan(ctx, req)
	if err != nil {
		return err
	}
	printPlan(out, res)

	if strings.TrimSpace(opts.ask) != "" {
		answer, err := planner.AskCurrent(ctx, opts.ask)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nQ: %s\nA: %s\n", strings.TrimSpace(opts.ask), answer)
	}
	return nil
}

func userMessage(err error) string {
	var perr *plan.ParseError
	switch {
	case errors.Is(err, service.ErrMissingCredential):
		return "No API key stored. Run: wanderbot -set-key YOUR_KEY"
	case errors.As(err, &perr):
		return "failed to generate travel plan: " + perr.Msg
	default:
		return err.Error()
	}
}

func printPlan(out io.Writer, res *service.PlanResult) {
	fmt.Fprintf(out, "%s -> %s, %s\n\n", res.Trip.Source, res.Trip.Destination, res.DateRange)
	fmt.Fprintf(out, "%s\n", res.Plan.Summary)
	for _, d := range res.Plan.Days {
		fmt.Fprintf(out, "\nDay %d\n", d.Day)
		for _, a := range d.Activities {
			fmt.Fprintf(out, "  %-20s %s @ %s ($%.2f)\n", a.Time, a.Description, a.Location, a.Cost)
		}
	}
	fmt.Fprintf(out, "\nBudget (total $%.2f)\n", res.TotalBudget)
	for _, b := range res.Plan.BudgetBreakdown {
		fmt.Fprintf(out, "  %-16s $%9.2f  %5.1f%%\n", b.Category, b.Amount, b.Percentage)
	}
	if len(res.Plan.TravelTips) > 0 {
		fmt.Fprintln(out, "\nTips")
		for _, tip := range res.Plan.TravelTips {
			fmt.Fprintf(out, "  - %s\n", tip)
		}
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "\nwarning: %s\n", w.Message)
	}
}
