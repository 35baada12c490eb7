package socratic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Someblueman/codesocratic/internal/syntax"
)

func questionsByRule(qs []Question, rule string) []Question {
	var out []Question
	for _, q := range qs {
		if q.Rule == rule {
			out = append(out, q)
		}
	}
	return out
}

func TestAnalyzeEmptyCatch(t *testing.T) {
	res := Analyze("try { risky(); } catch (e) {}", DefaultOptions())

	require.False(t, res.Failed(), res.Summary)
	require.Len(t, res.Questions, 1)
	q := res.Questions[0]
	assert.Equal(t, "no-error-swallowing", q.Rule)
	assert.Equal(t, SeverityWarning, q.Severity)
	assert.Equal(t, "error-swallow-1", q.ID)
	require.NotNil(t, q.Location)
	assert.Equal(t, 1, q.Location.Line)
}

func TestAnalyzeGetterWithoutSideEffects(t *testing.T) {
	res := Analyze("function getUser() { return cache[id]; }", DefaultOptions())

	require.False(t, res.Failed(), res.Summary)
	assert.Empty(t, questionsByRule(res.Questions, "no-side-effects"))
}

func TestAnalyzeGetterWithSideEffects(t *testing.T) {
	res := Analyze("function getUser() { logAccess(); return cache[id]; }", DefaultOptions())

	require.False(t, res.Failed(), res.Summary)
	require.Len(t, res.Questions, 1)
	q := res.Questions[0]
	assert.Equal(t, "no-side-effects", q.Rule)
	assert.Equal(t, SeverityInfo, q.Severity)
	assert.Equal(t, "side-effect-1", q.ID)
	assert.Contains(t, q.Message, "getUser")
}

func TestAnalyzeMagicNumbers(t *testing.T) {
	res := Analyze("const x = 42;", DefaultOptions())
	require.Len(t, res.Questions, 1)
	assert.Equal(t, "no-magic-numbers", res.Questions[0].Rule)
	assert.Equal(t, "magic-number-1", res.Questions[0].ID)
	assert.Contains(t, res.Questions[0].Message, "42")

	res = Analyze("const x = 1;", DefaultOptions())
	require.False(t, res.Failed(), res.Summary)
	assert.Empty(t, res.Questions)
}

func TestAnalyzeFetchAlwaysFlaggedByDefault(t *testing.T) {
	sources := []string{
		"fetch(url)",
		"async function load() { try { await fetch(url); } catch (e) { report(e); } }",
		"fetch(url).then(r => r.json()).catch(handle);",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			res := Analyze(src, DefaultOptions())
			require.False(t, res.Failed(), res.Summary)

			async := questionsByRule(res.Questions, "no-unhandled-async")
			require.Len(t, async, 1)
			assert.Equal(t, SeverityDanger, async[0].Severity)
		})
	}
}

func TestAnalyzeUnparsableSource(t *testing.T) {
	res := Analyze("function broken() { if (x { ", DefaultOptions())

	assert.True(t, res.Failed())
	assert.NotNil(t, res.Questions)
	assert.Empty(t, res.Questions)
	assert.True(t, strings.HasPrefix(res.Summary, "Gagal menganalisis kode: "), res.Summary)
	assert.Greater(t, len(res.Summary), len("Gagal menganalisis kode: "))
}

func TestAnalyzeNonInvocationCallForms(t *testing.T) {
	for _, src := range []string{
		"function getHtml() { return html`<p>hi</p>`; }",
		"function getMod() { return import('./m'); }",
		"fetch`x`;",
	} {
		res := Analyze(src, DefaultOptions())
		require.False(t, res.Failed(), res.Summary)
		assert.Empty(t, res.Questions, src)
	}
}

func TestAnalyzeTryWithoutHandlerDegrades(t *testing.T) {
	res := Analyze("try {} ", DefaultOptions())
	assert.True(t, res.Failed())
	assert.Empty(t, res.Questions)
	assert.Contains(t, res.Summary, "missing catch or finally")
}

func TestAnalyzeUnsupportedLanguageDegrades(t *testing.T) {
	opts := DefaultOptions()
	opts.Language = syntax.Language("cobol")

	res := Analyze("x", opts)
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Failure, syntax.ErrUnsupportedLanguage)
}

func TestAnalyzeRecoversFromRulePanics(t *testing.T) {
	orig := ruleSet
	t.Cleanup(func() { ruleSet = orig })

	ruleSet = func(RuleOptions) []Rule {
		return []Rule{panicRule{value: fmt.Errorf("boom")}}
	}
	res := Analyze("const x = 42;", DefaultOptions())
	assert.True(t, res.Failed())
	assert.Empty(t, res.Questions)
	assert.Contains(t, res.Summary, "boom")

	ruleSet = func(RuleOptions) []Rule {
		return []Rule{panicRule{value: ""}}
	}
	res = Analyze("const x = 42;", DefaultOptions())
	assert.True(t, res.Failed())
	assert.Equal(t, "Gagal menganalisis kode: Unknown error", res.Summary)
}

type panicRule struct {
	value any
}

func (panicRule) Name() string { return "panic" }

func (r panicRule) Detect(syntax.Node, []byte) []Question { panic(r.value) }

func TestAnalyzeToneSummaries(t *testing.T) {
	src := "const a = 42; const b = 7;"

	cases := []struct {
		tone Tone
		want string
	}{
		{tone: ToneFormal, want: "Ditemukan 2 area yang memerlukan klarifikasi dalam implementasi kode Anda."},
		{tone: ToneFriendly, want: "Hei! Ada 2 hal yang bisa kita diskusikan tentang kode ini 🤔"},
		{tone: ToneRoasting, want: "Wah, sepertinya ada 2 hal yang... menarik di sini 🔥"},
		{tone: "", want: "Hei! Ada 2 hal yang bisa kita diskusikan tentang kode ini 🤔"},
		{tone: "sarcastic", want: "Hei! Ada 2 hal yang bisa kita diskusikan tentang kode ini 🤔"},
	}
	for _, tc := range cases {
		t.Run(string(tc.tone), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Tone = tc.tone
			res := Analyze(src, opts)
			assert.Equal(t, tc.want, res.Summary)
			assert.Len(t, res.Questions, 2)
		})
	}
}

func TestAnalyzeToneDoesNotChangeQuestions(t *testing.T) {
	src := "function getX() { x = 5; }\ntry { a(); } catch {}\n"
	base := Analyze(src, Options{Tone: ToneFormal})
	for _, tone := range []Tone{ToneFriendly, ToneRoasting, "other"} {
		res := Analyze(src, Options{Tone: tone})
		assert.Equal(t, base.Questions, res.Questions)
	}
}

func TestAnalyzeEnglishLocale(t *testing.T) {
	opts := DefaultOptions()
	opts.Locale = "en-GB"

	res := Analyze("function getUser() { track(); }", opts)
	assert.Equal(t, "Hey! There are 1 things we could talk about in this code 🤔", res.Summary)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, "Function 'getUser' is named 'get' but seems to have side effects. Is that intentional?", res.Questions[0].Message)
}

const mixedSource = `const limit = 100;
function getConfig() {
  config.loaded = true;
  return fetch("/config");
}
try {
  risky();
} catch (e) {}
fetch(url);
`

func TestAnalyzeOrdersByRuleThenPosition(t *testing.T) {
	res := Analyze(mixedSource, DefaultOptions())
	require.False(t, res.Failed(), res.Summary)

	var ids []string
	for _, q := range res.Questions {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{
		"unhandled-async-4",
		"unhandled-async-9",
		"error-swallow-8",
		"side-effect-2",
		"magic-number-1",
	}, ids)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	first := Analyze(mixedSource, DefaultOptions())
	second := Analyze(mixedSource, DefaultOptions())
	assert.Equal(t, first, second)
}

func TestAnalyzeEqualsSumOfIndependentRules(t *testing.T) {
	root, err := syntax.Parse(syntax.LanguageTSX, []byte(mixedSource))
	require.NoError(t, err)

	rules := DefaultRules(RuleOptions{Catalog: CatalogFor("id")})
	var want []Question
	for _, rule := range rules {
		want = append(want, rule.Detect(root, []byte(mixedSource))...)
	}

	res := Analyze(mixedSource, DefaultOptions())
	assert.Equal(t, want, res.Questions)
}

func TestAnalyzeKeepsDuplicateIDs(t *testing.T) {
	res := Analyze("const a = [7, 8];", DefaultOptions())
	require.Len(t, res.Questions, 2)
	assert.Equal(t, res.Questions[0].ID, res.Questions[1].ID)
	assert.Equal(t, "magic-number-1", res.Questions[0].ID)
}

func TestAnalyzeRustSource(t *testing.T) {
	opts := DefaultOptions()
	opts.Language = syntax.LanguageRust

	res := Analyze("fn get_count() -> u32 { COUNTER.fetch_add(1); 60 }\n", opts)
	require.False(t, res.Failed(), res.Summary)

	var rules []string
	for _, q := range res.Questions {
		rules = append(rules, q.Rule)
	}
	assert.Equal(t, []string{"no-side-effects", "no-magic-numbers"}, rules)
}
