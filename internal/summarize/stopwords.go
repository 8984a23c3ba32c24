package summarize

import "strings"

// Stop-word lists are compiled in so summarization works offline. The
// Japanese list covers particles, auxiliaries, and formal nouns that
// dominate work-log prose; the English list is the usual function words.
var stopWordLists = map[string]string{
	"japanese": `
これ それ あれ この その あの ここ そこ あそこ こちら どこ だれ なに なん 何
する します した して いる います いた いて なる なります なった ある あります あった
こと もの ため よう さん ちゃん くん たち それぞれ お ご
は が の に を で と も へ から まで より など か な だ です ます ない ん
そして また しかし ただし なお および または つまり ので のに けど けれど
今日 本日 昨日 明日 予定 対応 作業 実施 確認
`,
	"english": `
a an the and or but if then else for nor so yet as at by in of on to up off
is am are was were be been being do does did done have has had having
i me my we our you your he him his she her it its they them their
this that these those there here what which who whom whose when where why how
not no yes can could will would shall should may might must
with from into onto over under about after before between during through
`,
}

// stopWordsFor returns the stop-word set for a language, falling back to
// English and finally to an empty set so summarization never fails for
// lack of a list.
func stopWordsFor(language string) map[string]struct{} {
	raw, ok := stopWordLists[strings.ToLower(language)]
	if !ok {
		raw = stopWordLists["english"]
	}
	words := make(map[string]struct{})
	for _, w := range strings.Fields(raw) {
		words[w] = struct{}{}
	}
	return words
}
