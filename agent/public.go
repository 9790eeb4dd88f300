package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand the weekly performance of the instruments
			he follows: portfolios, funds and benchmarks. Devise a plan of questions to ask each
			expert and come up with the best response to the user's request.

			The user will assume you know his instruments, ask the Analyst for the report first
			to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns the market research expert, grounded on Google
// Search for news about funds, indexes and companies.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert market researcher,
		very well aware of financial products and institutions,
		and of the latest news about funds, indexes and companies.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets, you can search and find about anything related
			to financial institutions, companies, markets, funds and indexes. You leverage Google
			Search to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// ReportFunc produces the weekly report markdown for a reference date and a
// week mode, both optional.
type ReportFunc func(ctx context.Context, reference, week string) (string, error)

// MonthlyFunc produces the monthly return pivot markdown of one instrument.
type MonthlyFunc func(ctx context.Context, instrument string) (string, error)

// NewAnalyst returns the performance expert. It answers from the stored
// data through the two injected report functions.
func NewAnalyst(weekly ReportFunc, monthly MonthlyFunc) *Expert {
	lib := []Function{weeklyReportFunc(weekly), monthlyReturnsFunc(monthly)}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He is in charge of the user's performance data.
		He can compute the weekly performance report over any window and the monthly
		return history of any instrument the user follows.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's performance data.
				You know how to use the Tools to extract the relevant figures about the
				instruments the user follows. You are part of a team of experts, yours is
				everything about returns, volatility, Sharpe ratios and drawdowns. Pardon
				their approximative language and figure out what they meant.

				Use the available tools to get
				  - the weekly performance report, with its week, month-to-date and year-to-date windows
				  - the monthly return history of one instrument
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID: id, Name: name,
		Response: map[string]any{"error": err.Error()},
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", nil
	}
	s, isString := v.(string)
	if !isString {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", key, v)
	}
	return s, nil
}

func weeklyReportFunc(weekly ReportFunc) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "WeeklyReport",
			Description: `WeeklyReport computes the full performance report: accumulated return,
			volatility, Sharpe ratio and maximum drawdown per instrument over the week,
			month-to-date and year-to-date windows, grouped by category.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type:        genai.TypeString,
						Description: "The reference date (YYYY-MM-DD). Today is the default.",
					},
					"week": {
						Type:        genai.TypeString,
						Description: "The week window: 'last' for the last complete week (default) or 'current' for the week in progress.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted performance report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			reference, err := stringArg(args, "date")
			if err != nil {
				return errorResponse(id, "WeeklyReport", err)
			}
			week, err := stringArg(args, "week")
			if err != nil {
				return errorResponse(id, "WeeklyReport", err)
			}
			md, err := weekly(ctx, reference, week)
			if err != nil {
				return errorResponse(id, "WeeklyReport", err)
			}
			return &genai.FunctionResponse{
				ID: id, Name: "WeeklyReport",
				Response: map[string]any{"output": md},
			}
		},
	}
}

func monthlyReturnsFunc(monthly MonthlyFunc) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "MonthlyReturns",
			Description: `MonthlyReturns computes the month-by-month accumulated returns of one
			instrument, one row per year, with year-to-date and since-inception columns.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"instrument": {
						Type:        genai.TypeString,
						Description: "The instrument identifier as it appears in the weekly report.",
					},
				},
				Required: []string{"instrument"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of monthly returns.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			instrument, err := stringArg(args, "instrument")
			if err != nil {
				return errorResponse(id, "MonthlyReturns", err)
			}
			if instrument == "" {
				return errorResponse(id, "MonthlyReturns", fmt.Errorf("argument 'instrument' is required"))
			}
			md, err := monthly(ctx, instrument)
			if err != nil {
				return errorResponse(id, "MonthlyReturns", err)
			}
			return &genai.FunctionResponse{
				ID: id, Name: "MonthlyReturns",
				Response: map[string]any{"output": md},
			}
		},
	}
}
