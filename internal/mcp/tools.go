package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/snagasawa/nippo/internal/domain/summary"
	"github.com/snagasawa/nippo/internal/domain/worklog"
	"github.com/snagasawa/nippo/internal/report"
	"github.com/snagasawa/nippo/internal/summarize"
	"github.com/snagasawa/nippo/internal/template"
)

// domainError converts a mapped domain error into a tool-level error
// result so clients see a structured code instead of a protocol failure.
// Unmapped errors pass through as protocol errors.
func domainError(err error) (*sdkmcp.CallToolResult, error) {
	apiErr := MapError(err)
	if apiErr == nil {
		return nil, err
	}
	data, merr := json.Marshal(apiErr)
	if merr != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

// Work logs

type saveWorkLogInput struct {
	Date    string   `json:"date" jsonschema:"Log date in YYYY-MM-DD format"`
	Content string   `json:"content" jsonschema:"Free-text work note for the date"`
	Tags    []string `json:"tags,omitempty" jsonschema:"Optional tags for the entry"`
}

type workLogOutput struct {
	Log *worklog.WorkLog `json:"log"`
}

type dateInput struct {
	Date string `json:"date" jsonschema:"Log date in YYYY-MM-DD format"`
}

type listWorkLogsInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"Range start in YYYY-MM-DD (with end_date)"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"Range end in YYYY-MM-DD (with start_date)"`
	Period    string `json:"period,omitempty" jsonschema:"Shorthand period: weekly or monthly, anchored at date"`
	Date      string `json:"date,omitempty" jsonschema:"Anchor date for period in YYYY-MM-DD"`
}

type workLogListOutput struct {
	Logs  []worklog.WorkLog `json:"logs"`
	Count int               `json:"count"`
}

type deleteWorkLogOutput struct {
	Deleted bool   `json:"deleted"`
	Date    string `json:"date"`
}

type searchWorkLogsInput struct {
	Keyword   string `json:"keyword" jsonschema:"Keyword to match against content and tags"`
	StartDate string `json:"start_date,omitempty" jsonschema:"Optional range start in YYYY-MM-DD"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"Optional range end in YYYY-MM-DD"`
}

type statisticsOutput struct {
	Statistics *worklog.Statistics `json:"statistics"`
}

// rangeLogs resolves a list input to the logs it covers: an explicit
// start/end range, or a weekly/monthly period around the anchor date.
func rangeLogs(ctx context.Context, svc WorklogService, in listWorkLogsInput) ([]worklog.WorkLog, error) {
	switch in.Period {
	case "weekly":
		return svc.WeeklyRange(ctx, in.Date)
	case "monthly":
		return svc.MonthlyRange(ctx, in.Date)
	case "":
		return svc.Range(ctx, in.StartDate, in.EndDate)
	default:
		return nil, fmt.Errorf("%w: unknown period %q", worklog.ErrInvalidDate, in.Period)
	}
}

// Summaries

type summarizeLogsInput struct {
	StartDate     string `json:"start_date,omitempty" jsonschema:"Range start in YYYY-MM-DD (with end_date)"`
	EndDate       string `json:"end_date,omitempty" jsonschema:"Range end in YYYY-MM-DD (with start_date)"`
	Period        string `json:"period,omitempty" jsonschema:"Shorthand period: weekly or monthly, anchored at date"`
	Date          string `json:"date,omitempty" jsonschema:"Anchor date for period in YYYY-MM-DD"`
	Method        string `json:"method,omitempty" jsonschema:"Summarization method: centrality, cooccurrence, or latent (aliases: lexrank, textrank, lsa)"`
	SentenceCount int    `json:"sentence_count,omitempty" jsonschema:"Number of sentences to keep (default 5)"`
	MaxKeyPoints  int    `json:"max_key_points,omitempty" jsonschema:"Maximum extracted keywords (default 10)"`
	UseChatGPT    bool   `json:"use_chatgpt,omitempty" jsonschema:"Use the ChatGPT backend instead of the local engine"`
	SummaryKind   string `json:"summary_kind,omitempty" jsonschema:"Backend prompt kind, e.g. weekly_report"`
	MaxTokens     int    `json:"max_tokens,omitempty" jsonschema:"Backend token budget"`
}

type summarizeLogsOutput struct {
	Summary    *summary.SummaryResult     `json:"summary"`
	Structured *summary.StructuredSummary `json:"structured"`
}

type summaryIDInput struct {
	ID string `json:"id" jsonschema:"Summary ID"`
}

type summaryOutput struct {
	Summary *summary.SummaryResult `json:"summary"`
}

type listSummariesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum summaries to return (default 20)"`
}

type summaryListOutput struct {
	Summaries []summary.SummaryResult `json:"summaries"`
	Count     int                     `json:"count"`
}

type editSummaryInput struct {
	ID   string `json:"id" jsonschema:"Summary ID"`
	Text string `json:"text" jsonschema:"Replacement summary text"`
}

// Templates and reports

type templateListOutput struct {
	Templates []*template.Template `json:"templates"`
	Count     int                  `json:"count"`
}

type applyTemplateInput struct {
	TemplateID string         `json:"template_id" jsonschema:"Template ID, e.g. weekly_report"`
	SummaryID  string         `json:"summary_id,omitempty" jsonschema:"Stored summary whose data fills the template"`
	Format     string         `json:"format,omitempty" jsonschema:"Output format: text (default), markdown, or html"`
	Fields     map[string]any `json:"fields,omitempty" jsonschema:"Extra field values, e.g. reporter_name; override summary data"`
}

type applyTemplateOutput struct {
	Result   *template.Result `json:"result"`
	Rendered string           `json:"rendered"`
}

type saveTemplateInput struct {
	Template template.Template `json:"template" jsonschema:"Template definition to store"`
}

type saveTemplateOutput struct {
	Saved bool   `json:"saved"`
	ID    string `json:"id"`
}

type exportReportInput struct {
	TemplateID string         `json:"template_id" jsonschema:"Template ID to render"`
	SummaryID  string         `json:"summary_id,omitempty" jsonschema:"Stored summary whose data fills the template"`
	Format     string         `json:"format,omitempty" jsonschema:"File format: text (default), csv, or xlsx"`
	OutputPath string         `json:"output_path" jsonschema:"Destination file path; extension is added when missing"`
	Fields     map[string]any `json:"fields,omitempty" jsonschema:"Extra field values; override summary data"`
}

type exportReportOutput struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

type testBackendOutput struct {
	Configured bool   `json:"configured"`
	Success    bool   `json:"success"`
	Model      string `json:"model,omitempty"`
	TokensUsed int    `json:"tokens_used,omitempty"`
	Error      string `json:"error,omitempty"`
}

// templateData merges a stored summary's field data with explicit
// overrides from the request.
func templateData(ctx context.Context, svc SummaryService, summaryID string, fields map[string]any) (map[string]any, error) {
	data := map[string]any{}
	if summaryID != "" {
		result, err := svc.Get(ctx, summaryID)
		if err != nil {
			return nil, err
		}
		data = summary.ResultData(result)
	}
	for k, v := range fields {
		data[k] = v
	}
	return data, nil
}

func registerTools(server *sdkmcp.Server, svcs Services) {
	// Work logs
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_work_log",
		Description: "Save the free-text work log for a date, replacing any existing entry",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in saveWorkLogInput) (*sdkmcp.CallToolResult, workLogOutput, error) {
		log, err := svcs.Worklogs.Save(ctx, in.Date, in.Content, in.Tags)
		if err != nil {
			res, err := domainError(err)
			return res, workLogOutput{}, err
		}
		return nil, workLogOutput{Log: log}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_work_log",
		Description: "Get the work log stored for a date",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in dateInput) (*sdkmcp.CallToolResult, workLogOutput, error) {
		log, err := svcs.Worklogs.Get(ctx, in.Date)
		if err != nil {
			res, err := domainError(err)
			return res, workLogOutput{}, err
		}
		return nil, workLogOutput{Log: log}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_work_logs",
		Description: "List work logs in a date range, or a weekly/monthly period around a date",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listWorkLogsInput) (*sdkmcp.CallToolResult, workLogListOutput, error) {
		logs, err := rangeLogs(ctx, svcs.Worklogs, in)
		if err != nil {
			res, err := domainError(err)
			return res, workLogListOutput{}, err
		}
		return nil, workLogListOutput{Logs: logs, Count: len(logs)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_work_log",
		Description: "Delete the work log stored for a date",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in dateInput) (*sdkmcp.CallToolResult, deleteWorkLogOutput, error) {
		if err := svcs.Worklogs.Delete(ctx, in.Date); err != nil {
			res, err := domainError(err)
			return res, deleteWorkLogOutput{}, err
		}
		return nil, deleteWorkLogOutput{Deleted: true, Date: in.Date}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_work_logs",
		Description: "Search work logs by keyword against content and tags, optionally within a date range",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in searchWorkLogsInput) (*sdkmcp.CallToolResult, workLogListOutput, error) {
		logs, err := svcs.Worklogs.Search(ctx, in.Keyword, in.StartDate, in.EndDate)
		if err != nil {
			res, err := domainError(err)
			return res, workLogListOutput{}, err
		}
		return nil, workLogListOutput{Logs: logs, Count: len(logs)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_log_statistics",
		Description: "Get store-wide work log statistics: counts, date bounds, and character totals",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, statisticsOutput, error) {
		stats, err := svcs.Worklogs.Statistics(ctx)
		if err != nil {
			res, err := domainError(err)
			return res, statisticsOutput{}, err
		}
		return nil, statisticsOutput{Statistics: stats}, nil
	})

	// Summaries
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "summarize_logs",
		Description: "Summarize the work logs in a date range or weekly/monthly period, extracting key points and statistics",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in summarizeLogsInput) (*sdkmcp.CallToolResult, summarizeLogsOutput, error) {
		logs, err := rangeLogs(ctx, svcs.Worklogs, listWorkLogsInput{
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			Period:    in.Period,
			Date:      in.Date,
		})
		if err != nil {
			res, err := domainError(err)
			return res, summarizeLogsOutput{}, err
		}

		result, err := svcs.Summaries.SummarizeLogs(ctx, logs, summary.Options{
			Method:        summarize.ParseMethod(in.Method),
			SentenceCount: in.SentenceCount,
			MaxKeyPoints:  in.MaxKeyPoints,
			UseBackend:    in.UseChatGPT,
			BackendKind:   in.SummaryKind,
			MaxTokens:     in.MaxTokens,
		})
		if err != nil {
			res, err := domainError(err)
			return res, summarizeLogsOutput{}, err
		}

		return nil, summarizeLogsOutput{
			Summary:    result,
			Structured: svcs.Summaries.Structured(logs, result),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_summary",
		Description: "Get a stored summary by ID",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in summaryIDInput) (*sdkmcp.CallToolResult, summaryOutput, error) {
		result, err := svcs.Summaries.Get(ctx, in.ID)
		if err != nil {
			res, err := domainError(err)
			return res, summaryOutput{}, err
		}
		return nil, summaryOutput{Summary: result}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_summaries",
		Description: "List stored summaries, newest first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listSummariesInput) (*sdkmcp.CallToolResult, summaryListOutput, error) {
		results, err := svcs.Summaries.List(ctx, in.Limit)
		if err != nil {
			res, err := domainError(err)
			return res, summaryListOutput{}, err
		}
		return nil, summaryListOutput{Summaries: results, Count: len(results)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_summary",
		Description: "Replace the text of a stored summary, keeping its original statistics",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in editSummaryInput) (*sdkmcp.CallToolResult, summaryOutput, error) {
		result, err := svcs.Summaries.EditText(ctx, in.ID, in.Text)
		if err != nil {
			res, err := domainError(err)
			return res, summaryOutput{}, err
		}
		return nil, summaryOutput{Summary: result}, nil
	})

	// Templates and reports
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_templates",
		Description: "List the available report templates",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, templateListOutput, error) {
		templates := svcs.Templates.ListAvailable()
		return nil, templateListOutput{Templates: templates, Count: len(templates)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "apply_template",
		Description: "Fill a report template from a stored summary and render it as text, markdown, or html",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in applyTemplateInput) (*sdkmcp.CallToolResult, applyTemplateOutput, error) {
		data, err := templateData(ctx, svcs.Summaries, in.SummaryID, in.Fields)
		if err != nil {
			res, err := domainError(err)
			return res, applyTemplateOutput{}, err
		}
		result, err := svcs.Templates.Apply(in.TemplateID, data)
		if err != nil {
			res, err := domainError(err)
			return res, applyTemplateOutput{}, err
		}
		format := in.Format
		if format == "" {
			format = result.OutputFormat
		}
		return nil, applyTemplateOutput{
			Result:   result,
			Rendered: template.FormatOutput(result, format),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_template",
		Description: "Store a custom report template",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in saveTemplateInput) (*sdkmcp.CallToolResult, saveTemplateOutput, error) {
		tpl := in.Template
		if err := svcs.Templates.Save(&tpl); err != nil {
			res, err := domainError(err)
			return res, saveTemplateOutput{}, err
		}
		return nil, saveTemplateOutput{Saved: true, ID: tpl.ID}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_report",
		Description: "Render a template from a stored summary and write it to a file as text, CSV, or xlsx",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in exportReportInput) (*sdkmcp.CallToolResult, exportReportOutput, error) {
		data, err := templateData(ctx, svcs.Summaries, in.SummaryID, in.Fields)
		if err != nil {
			res, err := domainError(err)
			return res, exportReportOutput{}, err
		}
		result, err := svcs.Templates.Apply(in.TemplateID, data)
		if err != nil {
			res, err := domainError(err)
			return res, exportReportOutput{}, err
		}

		format := in.Format
		if format == "" {
			format = "text"
		}
		path, err := report.WriteReport(in.OutputPath, format, template.FormatOutput(result, "text"))
		if err != nil {
			res, err := domainError(err)
			return res, exportReportOutput{}, err
		}
		return nil, exportReportOutput{Path: path, Format: format}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "test_backend",
		Description: "Check whether the ChatGPT backend is configured and reachable",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, testBackendOutput, error) {
		if svcs.Backend == nil || !svcs.Backend.IsConfigured() {
			return nil, testBackendOutput{Configured: false, Error: "APIキーが設定されていません"}, nil
		}
		result := svcs.Backend.TestConnection(ctx)
		return nil, testBackendOutput{
			Configured: true,
			Success:    result.Success,
			Model:      result.Model,
			TokensUsed: result.TokensUsed,
			Error:      result.Error,
		}, nil
	})
}
