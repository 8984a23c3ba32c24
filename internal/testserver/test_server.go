// Package testserver builds a fully wired MCP server on an in-memory
// database for functional tests.
package testserver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/snagasawa/nippo/internal/domain/summary"
	"github.com/snagasawa/nippo/internal/domain/worklog"
	"github.com/snagasawa/nippo/internal/mcp"
	"github.com/snagasawa/nippo/internal/sqlite"
	"github.com/snagasawa/nippo/internal/summarize"
	"github.com/snagasawa/nippo/internal/template"
)

// TestServer holds a connected MCP client session backed by the full
// service stack.
type TestServer struct {
	Session     *sdkmcp.ClientSession
	DB          *sqlite.DB
	TemplateDir string
}

// Options configures the test stack.
type Options struct {
	Language       string             // summarizer language, default "japanese"
	Backend        mcp.BackendService // optional, nil means unconfigured
	SummaryBackend summary.Backend    // optional backend for the summary service
}

// New builds the stack and connects a client over in-memory transports.
func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	if opts.Language == "" {
		opts.Language = "japanese"
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	worklogRepo := sqlite.NewWorklogRepository(db)
	summaryRepo := sqlite.NewSummaryRepository(db)

	engine := summarize.New(opts.Language)

	templateDir := t.TempDir()
	templates, err := template.NewEngine(templateDir, logger)
	require.NoError(t, err)

	worklogSvc := worklog.NewService(worklogRepo, logger)
	summarySvc := summary.NewService(engine, opts.SummaryBackend, summaryRepo, logger)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Worklogs:  worklogSvc,
			Summaries: summarySvc,
			Templates: templates,
			Backend:   opts.Backend,
		},
		Logger: logger,
	})

	ctx, cancel := context.WithCancel(context.Background())

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
		serverSession.Close()
		cancel()
		_ = db.Close()
	})

	return &TestServer{
		Session:     session,
		DB:          db,
		TemplateDir: templateDir,
	}
}
