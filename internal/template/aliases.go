package template

// fieldAliases maps template field names onto the canonical keys the
// summary service produces. Templates from different report styles name
// the same slot differently; all of them resolve to one data key.
var fieldAliases = map[string]string{
	"weekly_summary":      "summary_text",
	"daily_summary":       "summary_text",
	"monthly_summary":     "summary_text",
	"key_achievements":    "summary_text",
	"completed_tasks":     "summary_text",
	"ongoing_tasks":       "summary_text",
	"project_summary":     "summary_text",
	"activity_summary":    "summary_text",
	"progress_summary":    "summary_text",
	"achievement_summary": "summary_text",
	"keywords":            "keywords",
	"generated_at":        "generated_at",
	"creation_date":       "generated_at",
	"report_date":         "generated_at",
}

// requiredFallbacks supplies placeholder values for required fields that
// have neither data nor a default. Fields not listed here fall back to a
// generic unfilled marker.
var requiredFallbacks = map[string]string{
	"week_start_date": "指定なし",
	"week_end_date":   "指定なし",
	"reporter_name":   "報告者名未設定",
	"department":      "部署未設定",
}

func canonicalKey(name string) string {
	if alias, ok := fieldAliases[name]; ok {
		return alias
	}
	return name
}
