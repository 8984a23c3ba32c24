package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/snagasawa/nippo/internal/testserver"
)

func callTool(t *testing.T, ts *testserver.TestServer, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ts.Session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "Tool %s returned error: %v", name, result.Content)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)

	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(textContent.Text)
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
	return nil
}

func callToolError(t *testing.T, ts *testserver.TestServer, name string, args map[string]any) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ts.Session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed at the protocol level", name)
	require.True(t, result.IsError, "Tool %s should have returned an error", name)
	require.NotEmpty(t, result.Content)

	textContent, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return textContent.Text
}

func TestFunctional_WorkLogLifecycle(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	save := callTool(t, ts, "save_work_log", map[string]any{
		"date":    "2024-01-15",
		"content": "本日はAPIサーバーの実装を進めた。レビュー対応も完了した。",
		"tags":    []string{"開発"},
	})
	require.Contains(t, string(save), "2024-01-15")

	get := callTool(t, ts, "get_work_log", map[string]any{"date": "2024-01-15"})
	require.Contains(t, string(get), "APIサーバー")

	callTool(t, ts, "save_work_log", map[string]any{
		"date":    "2024-01-16",
		"content": "データベースのスキーマ設計を行った。",
	})

	list := callTool(t, ts, "list_work_logs", map[string]any{
		"start_date": "2024-01-15",
		"end_date":   "2024-01-16",
	})
	var listed struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(list, &listed))
	require.Equal(t, 2, listed.Count)

	search := callTool(t, ts, "search_work_logs", map[string]any{"keyword": "スキーマ"})
	require.Contains(t, string(search), "2024-01-16")

	stats := callTool(t, ts, "get_log_statistics", nil)
	var statsOut struct {
		Statistics struct {
			TotalLogs    int    `json:"total_logs"`
			FirstLogDate string `json:"first_log_date"`
		} `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(stats, &statsOut))
	require.Equal(t, 2, statsOut.Statistics.TotalLogs)
	require.Equal(t, "2024-01-15", statsOut.Statistics.FirstLogDate)

	del := callTool(t, ts, "delete_work_log", map[string]any{"date": "2024-01-16"})
	require.Contains(t, string(del), `"deleted":true`)

	errText := callToolError(t, ts, "get_work_log", map[string]any{"date": "2024-01-16"})
	require.Contains(t, errText, "LOG_NOT_FOUND")
}

func TestFunctional_InvalidDate(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	errText := callToolError(t, ts, "save_work_log", map[string]any{
		"date":    "01/15/2024",
		"content": "test",
	})
	require.Contains(t, errText, "INVALID_DATE")
}

func TestFunctional_SummarizeAndReport(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	entries := map[string]string{
		"2024-01-15": "APIサーバーの認証機能を実装した。テストも追加した。",
		"2024-01-16": "データベースの移行スクリプトを作成した。",
		"2024-01-17": "認証機能のレビュー指摘に対応した。リリース準備を進めた。",
	}
	for date, content := range entries {
		callTool(t, ts, "save_work_log", map[string]any{"date": date, "content": content})
	}

	summarized := callTool(t, ts, "summarize_logs", map[string]any{
		"start_date":     "2024-01-15",
		"end_date":       "2024-01-17",
		"method":         "centrality",
		"sentence_count": 3,
	})
	var out struct {
		Summary struct {
			ID          string `json:"id"`
			SummaryText string `json:"summary_text"`
			Method      string `json:"method"`
		} `json:"summary"`
		Structured struct {
			Period struct {
				TotalDays int `json:"total_days"`
			} `json:"period_info"`
		} `json:"structured"`
	}
	require.NoError(t, json.Unmarshal(summarized, &out))
	require.NotEmpty(t, out.Summary.ID)
	require.NotEmpty(t, out.Summary.SummaryText)
	require.Equal(t, "centrality", out.Summary.Method)
	require.Equal(t, 3, out.Structured.Period.TotalDays)

	// The run is stored in history.
	got := callTool(t, ts, "get_summary", map[string]any{"id": out.Summary.ID})
	require.Contains(t, string(got), out.Summary.ID)

	listed := callTool(t, ts, "list_summaries", nil)
	require.Contains(t, string(listed), out.Summary.ID)

	edited := callTool(t, ts, "edit_summary", map[string]any{
		"id":   out.Summary.ID,
		"text": "手動で修正した要約。",
	})
	require.Contains(t, string(edited), "手動で修正した要約。")

	// Templates were seeded; apply one with the stored summary.
	templates := callTool(t, ts, "list_templates", nil)
	require.Contains(t, string(templates), "weekly_report")

	applied := callTool(t, ts, "apply_template", map[string]any{
		"template_id": "weekly_report",
		"summary_id":  out.Summary.ID,
		"fields":      map[string]any{"reporter_name": "山田太郎"},
	})
	var appliedOut struct {
		Rendered string `json:"rendered"`
	}
	require.NoError(t, json.Unmarshal(applied, &appliedOut))
	require.Contains(t, appliedOut.Rendered, "【週報】")
	require.Contains(t, appliedOut.Rendered, "山田太郎")
	require.Contains(t, appliedOut.Rendered, "手動で修正した要約。")

	outputPath := filepath.Join(t.TempDir(), "weekly")
	exported := callTool(t, ts, "export_report", map[string]any{
		"template_id": "weekly_report",
		"summary_id":  out.Summary.ID,
		"format":      "csv",
		"output_path": outputPath,
	})
	require.Contains(t, string(exported), "weekly.csv")

	data, err := os.ReadFile(outputPath + ".csv")
	require.NoError(t, err)
	require.Contains(t, string(data), "セクション")
}

func TestFunctional_SummarizeEmptyRange(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	summarized := callTool(t, ts, "summarize_logs", map[string]any{
		"start_date": "2024-03-01",
		"end_date":   "2024-03-07",
	})
	require.Contains(t, string(summarized), "要約するテキストがありません。")
}

func TestFunctional_BackendNotConfigured(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	callTool(t, ts, "save_work_log", map[string]any{
		"date":    "2024-01-15",
		"content": "作業した。",
	})

	errText := callToolError(t, ts, "summarize_logs", map[string]any{
		"start_date":  "2024-01-15",
		"end_date":    "2024-01-15",
		"use_chatgpt": true,
	})
	require.Contains(t, errText, "BACKEND_NOT_CONFIGURED")

	// test_backend reports unconfigured instead of failing.
	status := callTool(t, ts, "test_backend", nil)
	require.Contains(t, string(status), `"configured":false`)
}

func TestFunctional_TemplateNotFound(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	errText := callToolError(t, ts, "apply_template", map[string]any{
		"template_id": "no_such_template",
	})
	require.Contains(t, errText, "TEMPLATE_NOT_FOUND")
}

func TestFunctional_SaveCustomTemplate(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	saved := callTool(t, ts, "save_template", map[string]any{
		"template": map[string]any{
			"id":            "retrospective",
			"name":          "振り返り",
			"output_format": "markdown",
			"sections": []map[string]any{{
				"title": "振り返り",
				"fields": []map[string]any{
					{"name": "summary_text", "label": "概要"},
				},
			}},
		},
	})
	require.Contains(t, string(saved), "retrospective")

	// Without an explicit format the template's own output_format wins.
	applied := callTool(t, ts, "apply_template", map[string]any{
		"template_id": "retrospective",
		"fields":      map[string]any{"summary_text": "今期の成果。"},
	})
	require.Contains(t, string(applied), "今期の成果。")
	require.Contains(t, string(applied), "# 振り返り")

	listed := callTool(t, ts, "list_templates", nil)
	require.Contains(t, string(listed), "markdown")
}

func TestFunctional_MCPProtocolCompliance(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	initResult := ts.Session.InitializeResult()
	require.NotNil(t, initResult)
	require.NotNil(t, initResult.ServerInfo)
	require.Equal(t, "nippo", initResult.ServerInfo.Name)
	require.Equal(t, "0.1.0", initResult.ServerInfo.Version)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := ts.Session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 15)

	toolMap := make(map[string]*sdkmcp.Tool)
	for _, tool := range tools.Tools {
		toolMap[tool.Name] = tool
	}
	for _, name := range []string{
		"save_work_log", "get_work_log", "list_work_logs", "delete_work_log",
		"search_work_logs", "get_log_statistics",
		"summarize_logs", "get_summary", "list_summaries", "edit_summary",
		"list_templates", "apply_template", "save_template",
		"export_report", "test_backend",
	} {
		require.Contains(t, toolMap, name)
		require.NotEmpty(t, toolMap[name].Description)
	}
}

func TestFunctional_DocumentationResources(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resources, err := ts.Session.ListResources(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, resources.Resources)

	uris := make(map[string]*sdkmcp.Resource, len(resources.Resources))
	for _, r := range resources.Resources {
		uris[r.URI] = r
	}
	for _, uri := range []string{
		"nippo://docs/index",
		"nippo://docs/summarization",
		"nippo://docs/templates",
	} {
		r, ok := uris[uri]
		require.True(t, ok, "missing expected doc resource: %s", uri)
		require.NotEmpty(t, r.Name)
		require.Equal(t, "text/markdown", r.MIMEType)
		require.Greater(t, r.Size, int64(0))
	}

	read, err := ts.Session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "nippo://docs/index"})
	require.NoError(t, err)
	require.NotEmpty(t, read.Contents)
	require.Equal(t, "nippo://docs/index", read.Contents[0].URI)
	require.Contains(t, read.Contents[0].Text, "Agent Docs Index")
}
