// Package mcp exposes the work-log and summarization services as MCP
// tools over stdio or streamable HTTP.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/snagasawa/nippo/internal/domain/summary"
	"github.com/snagasawa/nippo/internal/domain/worklog"
	"github.com/snagasawa/nippo/internal/openai"
	"github.com/snagasawa/nippo/internal/template"
)

// WorklogService defines work-log operations needed by MCP.
type WorklogService interface {
	Save(ctx context.Context, date, content string, tags []string) (*worklog.WorkLog, error)
	Get(ctx context.Context, date string) (*worklog.WorkLog, error)
	Range(ctx context.Context, start, end string) ([]worklog.WorkLog, error)
	WeeklyRange(ctx context.Context, date string) ([]worklog.WorkLog, error)
	MonthlyRange(ctx context.Context, date string) ([]worklog.WorkLog, error)
	Delete(ctx context.Context, date string) error
	Search(ctx context.Context, keyword, start, end string) ([]worklog.WorkLog, error)
	Statistics(ctx context.Context) (*worklog.Statistics, error)
}

// SummaryService defines summarization operations needed by MCP.
type SummaryService interface {
	SummarizeLogs(ctx context.Context, logs []worklog.WorkLog, opts summary.Options) (*summary.SummaryResult, error)
	Structured(logs []worklog.WorkLog, result *summary.SummaryResult) *summary.StructuredSummary
	Get(ctx context.Context, id string) (*summary.SummaryResult, error)
	List(ctx context.Context, limit int) ([]summary.SummaryResult, error)
	EditText(ctx context.Context, id, text string) (*summary.SummaryResult, error)
}

// TemplateService defines template operations needed by MCP.
type TemplateService interface {
	ListAvailable() []*template.Template
	Apply(id string, data map[string]any) (*template.Result, error)
	Save(tpl *template.Template) error
}

// BackendService defines the optional ChatGPT backend operations.
type BackendService interface {
	IsConfigured() bool
	TestConnection(ctx context.Context) *openai.ConnectionResult
}

// Services contains all domain services needed by MCP.
type Services struct {
	Worklogs  WorklogService
	Summaries SummaryService
	Templates TemplateService
	Backend   BackendService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "nippo",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
