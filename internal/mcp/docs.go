package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `nippo records daily free-text work logs and produces summarized reports.

Core concepts:
- WorkLog: one free-text note per calendar date (YYYY-MM-DD), with optional tags.
- Summary: an extractive reduction of the logs in a date range, with key points and compression statistics. Stored summaries can be listed and edited.
- Template: a YAML report layout whose fields are filled from a summary.
- Report: a filled template exported as text, CSV, or xlsx.

Typical workflow:
1) Record: save_work_log for each day. get_work_log / list_work_logs / search_work_logs to browse.
2) Summarize: summarize_logs over a date range or a weekly/monthly period. Methods: centrality (default), cooccurrence, latent. Set use_chatgpt=true only when the backend is configured (check with test_backend).
3) Refine: edit_summary to adjust the generated text by hand.
4) Report: list_templates, then apply_template with a summary id, or export_report to write a file.

Notes:
- Dates are always YYYY-MM-DD.
- Summarization never fails on odd input: empty ranges yield a sentinel message instead of an error.
- get_log_statistics gives store-wide counts for a quick overview.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "nippo://docs/index",
		Name:        "docs_index",
		Title:       "nippo docs index",
		Description: "Entry point for agent-facing docs: tools, workflow, and conventions.",
		Content: `# nippo: Agent Docs Index

## Quick start

1. ` + "`save_work_log`" + ` once per day with the day's free-text note.
2. ` + "`summarize_logs`" + ` over a range (or ` + "`period: weekly|monthly`" + ` with a date inside the period).
3. ` + "`apply_template`" + ` or ` + "`export_report`" + ` to turn the summary into a report.

## Docs (read on demand)

- ` + "`nippo://docs/summarization`" + ` — methods, parameters, and the ChatGPT backend.
- ` + "`nippo://docs/templates`" + ` — template structure, field aliases, and output formats.

## Conventions

- Dates are ` + "`YYYY-MM-DD`" + `. One log per date; saving again replaces the content.
- Summary text in reports uses Japanese date headers (【2024年1月15日（月）】) per day.
`,
	},
	{
		URI:         "nippo://docs/summarization",
		Name:        "docs_summarization",
		Title:       "Summarization methods",
		Description: "How summarize_logs selects sentences and when to use the ChatGPT backend.",
		Content: `# Summarization

## Local methods (extractive)

- ` + "`centrality`" + ` (default, alias ` + "`lexrank`" + `): graph centrality over sentence similarity. Good general choice.
- ` + "`cooccurrence`" + ` (alias ` + "`textrank`" + `): term-overlap graph. Favors sentences sharing vocabulary.
- ` + "`latent`" + ` (alias ` + "`lsa`" + `): latent topic analysis. Favors topical coverage.

Unknown method names fall back to ` + "`centrality`" + `.

Parameters:
- ` + "`sentence_count`" + ` (default 5): sentences to keep, in original order.
- ` + "`max_key_points`" + ` (default 10): extracted keywords.

## ChatGPT backend

Set ` + "`use_chatgpt: true`" + ` to replace the local reduction with an API call.
The backend is used only on explicit request; without an API key the call
fails with ` + "`BACKEND_NOT_CONFIGURED`" + `. Choose a prompt with ` + "`summary_kind`" + `:
` + "`daily_report`" + `, ` + "`weekly_report`" + `, ` + "`monthly_report`" + `, ` + "`quick_summary`" + `,
` + "`extract_keywords`" + `, ` + "`analyze_tasks`" + `. Verify the key first with ` + "`test_backend`" + `.
`,
	},
	{
		URI:         "nippo://docs/templates",
		Name:        "docs_templates",
		Title:       "Templates and reports",
		Description: "Template YAML structure, field aliasing, and report export formats.",
		Content: `# Templates and reports

## Structure

A template is a YAML file with sections of fields:

    id: weekly_report
    name: 週報
    sections:
      - title: 今週の業務内容
        fields:
          - name: weekly_summary
            label: 業務概要
            required: true

Field types: ` + "`text`" + ` (default), ` + "`date`" + `, ` + "`datetime`" + `, ` + "`list`" + `.

## Field aliases

Summary-like field names (` + "`weekly_summary`" + `, ` + "`daily_summary`" + `,
` + "`key_achievements`" + `, …) all resolve to the summary text; ` + "`keywords`" + `
to the key points; ` + "`generated_at`" + ` / ` + "`report_date`" + ` to the creation time.
Required fields with no data fall back to placeholders (e.g. 報告者名未設定).

## Export formats

` + "`export_report`" + ` supports ` + "`text`" + `, ` + "`csv`" + ` and ` + "`xlsx`" + `.
Section headings (lines starting with ■ or 【) become CSV section keys and
bold rows in xlsx.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
