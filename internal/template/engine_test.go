package template

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := NewEngine(t.TempDir(), slog.New(slog.NewTextHandler(os.Stderr, nil)), opts...)
	require.NoError(t, err)
	return engine
}

func TestEngineSeedsDefaults(t *testing.T) {
	engine := newTestEngine(t)

	for _, id := range []string{"daily_report", "weekly_report", "monthly_report", "business_report", "progress_report"} {
		tpl, ok := engine.Load(id)
		require.True(t, ok, "expected default template %s", id)
		assert.Equal(t, id, tpl.ID)
		assert.NotEmpty(t, tpl.Sections)
	}
}

func TestEngineSeedDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	custom := "id: daily_report\nname: 自作日報\nsections:\n  - title: 内容\n    fields:\n      - name: body\n        label: 本文\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "daily_report.yaml"), []byte(custom), 0o644))

	engine, err := NewEngine(dir, slog.Default())
	require.NoError(t, err)

	tpl, ok := engine.Load("daily_report")
	require.True(t, ok)
	assert.Equal(t, "自作日報", tpl.Name)
}

func TestEngineLoadCaches(t *testing.T) {
	engine := newTestEngine(t)

	first, ok := engine.Load("weekly_report")
	require.True(t, ok)

	// Removing the file does not evict the cached template.
	require.NoError(t, os.Remove(filepath.Join(engine.dir, "weekly_report.yaml")))
	second, ok := engine.Load("weekly_report")
	require.True(t, ok)
	assert.Same(t, first, second)
}

func TestEngineListAvailableSkipsBroken(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, os.WriteFile(filepath.Join(engine.dir, "broken.yaml"), []byte("{{not yaml"), 0o644))

	templates := engine.ListAvailable()
	assert.Len(t, templates, 5)
	for _, tpl := range templates {
		assert.NotEqual(t, "broken", tpl.ID)
	}
}

func TestEngineApplyNotFound(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Apply("no_such_template", nil)
	require.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Contains(t, err.Error(), "テンプレート 'no_such_template' が見つかりません")
}

func TestEngineApplyResolvesAliases(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Apply("weekly_report", map[string]any{
		"summary_text": "今週はAPIの実装を完了した。",
		"keywords":     []string{"API", "実装"},
	})
	require.NoError(t, err)

	values := map[string]string{}
	for _, section := range result.Sections {
		for _, field := range section.Fields {
			values[field.Name] = field.Value
		}
	}

	// weekly_summary aliases to summary_text.
	assert.Equal(t, "今週はAPIの実装を完了した。", values["weekly_summary"])
	assert.Equal(t, "• API\n• 実装", values["keywords"])
	// Required fields without data use their fallbacks.
	assert.Equal(t, "指定なし", values["week_start_date"])
	assert.Equal(t, "指定なし", values["week_end_date"])
	assert.Equal(t, "報告者名未設定", values["reporter_name"])
	assert.Equal(t, "部署未設定", values["department"])
	// Optional fields keep their defaults.
	assert.Equal(t, "未定", values["next_week_plan"])
}

func TestEngineApplyGenericRequiredMarker(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, engine.Save(&Template{
		ID:   "custom",
		Name: "カスタム",
		Sections: []Section{{
			Title: "内容",
			Fields: []Field{
				{Name: "body", Label: "本文", Required: true},
			},
		}},
	}))

	result, err := engine.Apply("custom", nil)
	require.NoError(t, err)
	assert.Equal(t, "[必須フィールド 'body' が未入力です]", result.Sections[0].Fields[0].Value)
}

func TestEngineApplyDateCoercion(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Apply("daily_report", map[string]any{
		"report_date":  "2024-01-15",
		"summary_text": "実装を進めた。",
	})
	require.NoError(t, err)

	values := map[string]string{}
	for _, section := range result.Sections {
		for _, field := range section.Fields {
			values[field.Name] = field.Value
		}
	}
	assert.Equal(t, "2024年1月15日（月）", values["report_date"])
}

func TestEngineSaveRoundTrip(t *testing.T) {
	engine := newTestEngine(t)

	tpl := &Template{
		ID:   "retro",
		Name: "振り返り",
		Sections: []Section{{
			Title:  "振り返り",
			Fields: []Field{{Name: "summary_text", Label: "概要"}},
		}},
	}
	require.NoError(t, engine.Save(tpl))
	first := tpl.UpdatedAt
	assert.False(t, first.IsZero())

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, engine.Save(tpl))
	assert.True(t, tpl.UpdatedAt.After(first))

	loaded, ok := engine.Load("retro")
	require.True(t, ok)
	assert.Equal(t, "振り返り", loaded.Name)
}

func TestEngineCustomFallbackOption(t *testing.T) {
	engine := newTestEngine(t, WithRequiredFallback("project_name", "プロジェクト未設定"))
	require.NoError(t, engine.Save(&Template{
		ID:   "proj",
		Name: "プロジェクト",
		Sections: []Section{{
			Title:  "情報",
			Fields: []Field{{Name: "project_name", Label: "名称", Required: true}},
		}},
	}))

	result, err := engine.Apply("proj", nil)
	require.NoError(t, err)
	assert.Equal(t, "プロジェクト未設定", result.Sections[0].Fields[0].Value)
}

func TestEngineApplySectionOrderAndVisibility(t *testing.T) {
	engine := newTestEngine(t)
	tpl := "id: ordered\nname: 順序付き\nsections:\n" +
		"  - title: 後半\n    order: 2\n    fields:\n      - name: b\n        label: B\n        default: い\n" +
		"  - title: 非表示\n    order: 1\n    visible: false\n    fields:\n      - name: c\n        label: C\n        default: う\n" +
		"  - title: 補足\n    order: 2\n    fields:\n      - name: d\n        label: D\n        default: え\n" +
		"  - title: 前半\n    order: 1\n    fields:\n      - name: a\n        label: A\n        default: あ\n"
	require.NoError(t, os.WriteFile(filepath.Join(engine.dir, "ordered.yaml"), []byte(tpl), 0o644))

	result, err := engine.Apply("ordered", nil)
	require.NoError(t, err)

	titles := make([]string, 0, len(result.Sections))
	for _, section := range result.Sections {
		titles = append(titles, section.Title)
	}
	// Sections sort by order (ties keep file order); hidden ones are dropped.
	assert.Equal(t, []string{"前半", "後半", "補足"}, titles)
}

func TestEngineApplyFieldNameFallback(t *testing.T) {
	engine := newTestEngine(t)

	// weekly_summary aliases to summary_text, but a value supplied under
	// the field's own name still resolves.
	result, err := engine.Apply("weekly_report", map[string]any{
		"weekly_summary": "直接指定した週次要約。",
	})
	require.NoError(t, err)

	values := map[string]string{}
	for _, section := range result.Sections {
		for _, field := range section.Fields {
			values[field.Name] = field.Value
		}
	}
	assert.Equal(t, "直接指定した週次要約。", values["weekly_summary"])
}

func TestEngineApplySummaryField(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, engine.Save(&Template{
		ID:   "digest",
		Name: "ダイジェスト",
		Sections: []Section{{
			Title:  "要約",
			Fields: []Field{{Name: "digest", Label: "要約", Type: "summary"}},
		}},
	}))

	result, err := engine.Apply("digest", map[string]any{
		"digest": map[string]any{"summary_text": "今日の要約。"},
	})
	require.NoError(t, err)
	assert.Equal(t, "今日の要約。", result.Sections[0].Fields[0].Value)

	result, err = engine.Apply("digest", map[string]any{
		"digest": map[string]any{"summary": "別の要約。"},
	})
	require.NoError(t, err)
	assert.Equal(t, "別の要約。", result.Sections[0].Fields[0].Value)
}

func TestEngineOutputFormat(t *testing.T) {
	engine := newTestEngine(t)

	// Templates without an explicit output_format default to text.
	tpl, ok := engine.Load("weekly_report")
	require.True(t, ok)
	assert.Equal(t, "text", tpl.OutputFormat)

	require.NoError(t, engine.Save(&Template{
		ID:           "md_report",
		Name:         "Markdownレポート",
		OutputFormat: "markdown",
		Sections: []Section{{
			Title:  "内容",
			Fields: []Field{{Name: "body", Label: "本文", Default: "本文あり"}},
		}},
	}))

	// The format survives the YAML round trip, not just the cache.
	reloaded, err := NewEngine(engine.dir, slog.Default())
	require.NoError(t, err)
	loaded, ok := reloaded.Load("md_report")
	require.True(t, ok)
	assert.Equal(t, "markdown", loaded.OutputFormat)

	result, err := reloaded.Apply("md_report", nil)
	require.NoError(t, err)
	assert.Equal(t, "markdown", result.OutputFormat)
}

func TestFormatOutput(t *testing.T) {
	result := &Result{
		TemplateName: "日報",
		GeneratedAt:  time.Date(2024, 1, 15, 18, 30, 0, 0, time.Local),
		Sections: []RenderedSection{{
			Title: "業務内容",
			Fields: []RenderedField{
				{Name: "daily_summary", Label: "概要", Value: "実装を進めた。"},
				{Name: "keywords", Label: "キーワード", Value: "• API\n• 実装"},
				{Name: "blockers", Label: "課題", Value: ""},
			},
		}},
	}

	text := FormatOutput(result, "text")
	assert.Contains(t, text, "【日報】")
	assert.Contains(t, text, "作成日時: 2024年01月15日 18:30")
	assert.Contains(t, text, "■ 業務内容")
	assert.Contains(t, text, "概要: 実装を進めた。")
	assert.Contains(t, text, "キーワード:\n• API\n• 実装")
	// Fields that resolved to nothing are omitted.
	assert.NotContains(t, text, "課題")

	md := FormatOutput(result, "markdown")
	assert.True(t, strings.HasPrefix(md, "# 日報"))
	assert.Contains(t, md, "## 業務内容")
	assert.Contains(t, md, "**概要**: 実装を進めた。")
	assert.NotContains(t, md, "課題")

	page := FormatOutput(result, "html")
	assert.Contains(t, page, "<h1>日報</h1>")
	assert.Contains(t, page, "<h2>業務内容</h2>")
	assert.Contains(t, page, "• API<br>• 実装")
	assert.NotContains(t, page, "課題")

	// Unknown formats fall back to text.
	assert.Equal(t, text, FormatOutput(result, "pdf"))
}

func TestFormatOutputEmptySections(t *testing.T) {
	result := &Result{TemplateName: "空", GeneratedAt: time.Now()}
	assert.NotEmpty(t, FormatOutput(result, "text"))
}
