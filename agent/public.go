package agent

import (
	"context"
	"fmt"

	"github.com/danhodge/harvest"
	"github.com/danhodge/harvest/docs"
	"github.com/danhodge/harvest/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and keep context of your previous questions.

			The user tracks a personal investment portfolio: balances, prices,
			allocations and a rebalancing target. They are here primarily to learn how
			their portfolio is valued and allocated, and what to move to reach their target.

			Devise a plan of questions to ask each expert and come up with the best
			response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the expert with access to live market information.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a market analyst,
		well aware of financial products, funds and companies,
		and of the latest news about them.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a market analyst. You can search and find anything related to
			financial institutions, companies, markets and funds. You leverage Google
			Search to ground your assertions, and you know how to relate the latest
			news to the user's request.
				`}}},
		},
	}
}

// NewAccountant creates the expert in charge of the user's event log. Its
// tools run the same report pipeline as the report subcommand, minus the CSV
// export.
func NewAccountant(log *harvest.EventLog, fetch harvest.Fetcher) *Expert {
	lib := []Function{reportFunc(log, fetch)}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant, who reads the user's event log and
		computes valuation and rebalancing reports from it. Ask the Accountant for
		holdings, totals, current or target allocations, and rebalancing corrections.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's portfolio event log.
				You know how to use the Tools to compute the relevant figures about the
				user's holdings and wealth. You are part of a team of experts; pardon
				their approximative language and figure out what they meant.

				Use the Report tool to get the current valuation table, the allocation
				percentages, the target and the rebalancing corrections. Holdings that
				are missing a price or an allocation are listed as incomplete.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// reportFunc exposes the report pipeline as a model-callable tool.
func reportFunc(log *harvest.EventLog, fetch harvest.Fetcher) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Report",
			Description: `Report reconciles the event log as of a cutoff date and returns the
			valuation table: one row per (account, asset) holding with its value split
			across allocation categories, plus totals, percentages and, when a target
			allocation exists, the dollar corrections to reach it.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type: genai.TypeString,
						Description: `The cutoff date for the report. Today is the default.
						Otherwise it uses a date format based on YYYY-MM-DD:

						` + must(docs.GetTopic("dates")),
					},
					"account": {
						Type:        genai.TypeString,
						Description: "Restrict the report to one account. All accounts by default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report table, followed by the holdings too incomplete to value.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			fresp := &genai.FunctionResponse{
				ID:       id,
				Name:     "Report",
				Response: map[string]any{},
			}

			date, err := parseDate(args)
			if err != nil {
				fresp.Response["error"] = err.Error()
				return fresp
			}
			account, _ := args["account"].(string)

			md, err := runReport(log, fetch, date, account)
			if err != nil {
				fresp.Response["error"] = err.Error()
				return fresp
			}
			fresp.Response["output"] = md
			return fresp
		},
	}
}

// runReport reconciles and renders the report without exporting a file.
func runReport(log *harvest.EventLog, fetch harvest.Fetcher, date harvest.Date, account string) (string, error) {
	events, err := log.ReadAll()
	if err != nil {
		return "", fmt.Errorf("could not load event log: %w", err)
	}
	rr := harvest.RunReport{Date: date, Account: account}
	if fetch != nil {
		fresh, err := harvest.QuoteEvents(events, rr, fetch)
		if err != nil {
			return "", err
		}
		events = append(events, fresh...)
	}

	report := harvest.Reconcile(events, date, account)
	rows, err := report.Rows()
	if err != nil {
		return "", err
	}
	return renderer.ReportMarkdown(rows, date) + renderer.IncompleteMarkdown(report), nil
}

func parseDate(args map[string]any) (harvest.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return harvest.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return harvest.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}

	date, err := harvest.ParseDate(sdate)
	if err != nil {
		return harvest.Today(), fmt.Errorf("argument 'date' must be a valid date, got %q. Below is the doc about the date format\n\n%s ", sdate, must(docs.GetTopic("dates")))
	}
	return date, nil
}
