package openai

// Prompt kinds selectable by callers. Unknown kinds fall back to
// KindQuickSummary.
const (
	KindDailyReport     = "daily_report"
	KindWeeklyReport    = "weekly_report"
	KindMonthlyReport   = "monthly_report"
	KindQuickSummary    = "quick_summary"
	KindExtractKeywords = "extract_keywords"
	KindAnalyzeTasks    = "analyze_tasks"
)

const systemPrompt = "あなたは優秀な文書作成アシスタントです。日本語で分かりやすく要約を作成してください。"

var promptTemplates = map[string]string{
	KindDailyReport: `以下の作業ログを日報形式で要約してください。
・本日の作業内容を簡潔にまとめる
・完了した作業、進行中の作業、課題を明確に分ける
・明日の予定があれば含める
・読みやすい箇条書き形式で出力

作業ログ:
%s`,
	KindWeeklyReport: `以下の作業ログを週報形式で要約してください。
・今週の主要な成果と活動を要約
・完了したタスク、進行中のタスク、課題を整理
・来週の計画や重要な予定を含める
・数値的な実績があれば含める

作業ログ:
%s`,
	KindMonthlyReport: `以下の作業ログを月報形式で要約してください。
・今月の主要な成果と活動を要約
・完了したプロジェクト、進行中のプロジェクト、課題を整理
・来月の計画や重要な目標を含める
・スキル開発や改善点があれば含める

作業ログ:
%s`,
	KindQuickSummary: `以下の作業ログを簡潔に要約してください。
・重要なポイントを3-5個の箇条書きで
・専門用語は分かりやすく説明
・数値や具体的な成果があれば含める

作業ログ:
%s`,
	KindExtractKeywords: `以下の作業ログから重要なキーワードを抽出してください。
・技術名、プロジェクト名、作業内容のキーワード
・重要度順に並べる
・カンマ区切りで出力

作業ログ:
%s`,
	KindAnalyzeTasks: `以下の作業ログを分析して、以下の形式で出力してください。
・完了したタスク
・進行中のタスク
・課題・問題点
・今後の予定

作業ログ:
%s`,
}

// promptFor returns the template for kind, falling back to quick_summary.
func promptFor(kind string) string {
	if p, ok := promptTemplates[kind]; ok {
		return p
	}
	return promptTemplates[KindQuickSummary]
}
