package kansou

// Default tables for Japanese game scenario reviews. Polarity and aspect
// words are mostly written in katakana reading form so they match the
// reading of uninflected words in any spelling. The reading is that of the
// surface, so inflected forms (面白く -> オモシロク) only match through the
// lemma spellings listed alongside.

var defaultStopwords = []string{
	"この", "の", "は", "が", "に", "を", "と", "て", "た", "だ", "し", "もっと", "も",
	"です", "ます", "けど", "だろ", "それ", "いう", "ある", "もの", "なる", "する",
	"いる", "こと", "できる", "ため", "られる", "れる", "これ",
	"スル", "イル", "イウ", "アル", "ナル", "コト", "デキル", "シレル", "カンズル", "モノ",
	"ゲーム", "シリーズ", "ポケモン", "プレイ", "ホンサク", "ルート", "ブブン",
	"レベル", "タメ", "ソノ", "セイリツ", "トオク", "ミエル", "ハツ", "イク", "クル", "オク",
	"ホカク", "シュルイ", "マチ", "イチ", "アタリ", "バアイ", "ジム", "要素", "システム",
	"感想", "点", "部分", "今回", "感じ", "思った", "ところ", "また",
}

var defaultPositive = []string{
	"スバラシイ", "カンドウ", "サイコウ", "メイサク", "オモシロイ", "ヨイ", "スキ", "コエル",
	"テイネイ", "コセイ", "イッパイ", "セットクリョク", "ボツニュウ", "ボツニュウカン", "タカイ",
	"ナク", "カミ", "タノシイ", "カイシュウ", "オドル", "キタイ", "アツイ", "カワイイ",
	"ツナガル", "シュウイツ", "シンセン", "リアル", "ムチュウ", "キワダツ", "カンセイド",
	"マッチ", "ネッチュウ", "ヒキコマレル", "ケッサク", "ツヨイ", "ミゴト", "ワクワク",
	"ボリューム", "アイチャク", "イトシイ", "ナットク", "キョウカン", "フカイ", "シッカリ",
	"マンゾク", "セイチョウ", "キフク", "ミリョク", "ミリョクテキ", "タノシム", "チカイ",
	"コウフン", "ヨイン", "トリハダ", "サイコウホウ", "シュウバン", "ナケル", "キタイイジョウ",
	"ハッピー", "スゴイ", "ウレシイ", "ヨカッタ", "サスガ",
	"面白い", "楽しい", "素晴らしい", "良い", "嬉しい", "すごい",
}

var defaultNegative = []string{
	"ヨワイ", "ヘイボン", "ザンネン", "チンプ", "サイアク", "ストレス", "ナイ", "アンマリ",
	"ヒクイ", "ヒョウカデキナイ", "ビミョウ", "アッサリ", "コドモムケ", "ツマラナイ",
	"テキトウ", "ソマツ", "フマン", "ワルイ", "オクレ", "クソ", "モンダイ", "ソガイ",
	"メンドウ", "ミジカイ", "ナシ", "イラナイ", "コンナン", "ツタナサ", "モノタリナイ",
	"キタイハズレ", "タンチョウ", "デキナイ", "ブソク", "フカイカン", "イミフメイ", "ウスイ",
	"タイクツ", "チセツ", "シリツボミ", "シリメツレツ", "カッテ", "フカンゼン", "アサイ",
	"セッキョウクサイ", "サイテイ", "アキル", "ウスッペライ", "ノコラナイ",
	"つまらない", "弱い", "低い", "悪い", "浅い", "薄い", "飽きる",
}

var defaultEvalPositive = []string{
	"ナットク", "シッカリ", "セイゴウセイ", "ロンリテキ", "カンペキ", "ミゴト", "アツイ",
	"オドロク", "ヨソウガイ", "シュウバン", "ミリョクテキ", "カンジョウイニュウ", "コセイテキ",
	"アイチャク", "サイコウ", "イキイキ", "テイネイ", "スキ", "キョウカン", "ミヂカ",
	"カンドウ", "フカイ", "カンガエサセラレル", "アタタカイ", "フヘンテキ", "タイセツ",
	"ナケル", "ボツニュウカン", "ヒキコマレル", "ワクワク", "タノシイ", "ジユウド", "リアル",
	"フンイキ", "ココロオドル", "マンキツ",
}

var defaultEvalNegative = []string{
	"シリツボミ", "ムジュン", "フカンゼン", "イミフメイ", "トウトツ", "チンプ", "ウスイ",
	"アサイ", "チセツ", "ハタン", "ヨワイ", "ヘイボン", "ナカミガナイ", "メンドウ",
	"セッキョウクサイ", "モノタリナイ", "ヒビカナイ", "カロスギ", "ヒョウメンジョウ",
	"タンチョウ", "タイクツ", "ストレス", "サギョウ", "トオイ", "カワラズ", "バグ",
	"カクカク", "オモイ",
}

var defaultAspects = []AspectEntry{
	{
		Name:     "起承転結の明確性",
		Triggers: []string{"テンカイ", "ケツマツ", "クライマックス", "ストーリー", "ナガレ", "コウセイ", "シナリオ", "フクセン"},
	},
	{
		Name:     "キャラクターの魅力",
		Triggers: []string{"キャラクター", "シュジンコウ", "ナカマ", "トウジョウジンブツ", "ライバル", "センセイ", "ジムリーダー"},
	},
	{
		Name:     "テーマの身近さ",
		Triggers: []string{"キズナ", "ユウジョウ", "テーマ", "メッセージ", "ニンゲンカンケイ", "セイチョウ", "カンジョウ"},
	},
	{
		Name:     "冒険の没入感",
		Triggers: []string{"ボウケン", "タンサク", "タビ", "フィールド", "セカイカン", "ブタイ", "タイケン", "オープンワールド"},
	},
}

// DefaultLexiconBuilder returns a builder preloaded with the bundled
// review tables. Callers may extend it before calling Build.
func DefaultLexiconBuilder() *LexiconBuilder {
	b := NewLexiconBuilder().
		Stopwords(defaultStopwords...).
		Positive(defaultPositive...).
		Negative(defaultNegative...).
		Canonicalize("キャラ", "キャラクター")
	for _, a := range defaultAspects {
		b.Aspect(a.Name, a.Triggers, defaultEvalPositive, defaultEvalNegative)
	}
	return b
}

// DefaultLexicon builds the bundled lexicon.
func DefaultLexicon() *Lexicon {
	lex, err := DefaultLexiconBuilder().Build()
	if err != nil {
		panic(err)
	}
	return lex
}
