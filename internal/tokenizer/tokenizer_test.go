package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-insights-go/internal/testhelper"
	"survey-insights-go/internal/types"
)

func TestBlobSkipsMissing(t *testing.T) {
	sources := []Source{
		{Header: types.FairnessTextHeader, Answers: []string{"Clear rules", "", "Human review"}},
		{Header: types.FeatureTextHeader, Answers: []string{"", "Appeals"}},
	}
	blob := Blob(sources, testhelper.Quiet())
	assert.Equal(t, "Clear rules Human review Appeals ", blob)
	assert.True(t, HasText(blob))
}

func TestBlobEmpty(t *testing.T) {
	sources := []Source{
		{Header: types.FairnessTextHeader, Answers: []string{"", ""}},
		{Header: types.FeatureTextHeader, Answers: []string{""}},
	}
	blob := Blob(sources, testhelper.Quiet())
	assert.False(t, HasText(blob))
	assert.Nil(t, Frequencies(blob, NewFilter(DefaultStopwords...), DefaultMaxWords))
	assert.False(t, HasText(Blob(nil, testhelper.Quiet())))
}

func TestSources(t *testing.T) {
	r := testhelper.Uniform(testhelper.Agree, testhelper.Agree)
	r.Fairness, r.Feature = "fair", "feature"
	rows := testhelper.Responses(r, r)

	both := Sources(rows, true, true)
	require.Len(t, both, 2)
	assert.Equal(t, []string{"fair", "fair"}, both[0].Answers)
	assert.Equal(t, types.FeatureTextHeader, both[1].Header)

	only := Sources(rows, false, true)
	require.Len(t, only, 1)
	assert.Equal(t, []string{"feature", "feature"}, only[0].Answers)
	assert.Empty(t, Sources(rows, false, false))
}

func TestFilterCaseInsensitive(t *testing.T) {
	f := NewFilter(DefaultStopwords...)
	assert.Equal(t, len(DefaultStopwords), f.Len())
	assert.True(t, f.IsFiltered("The"))
	assert.True(t, f.IsFiltered("SYSTEM"))
	assert.True(t, f.IsFiltered("agree"))
	assert.False(t, f.IsFiltered("fairness"))
}

func TestStopwordsAreEnglishOnly(t *testing.T) {
	f := NewFilter(DefaultStopwords...)
	for _, w := range []string{"и", "в", "бұл", "және"} {
		assert.False(t, f.IsFiltered(w), w)
	}
}

func TestTokens(t *testing.T) {
	toks := Tokens("The system's Human-oversight, 2024 appeals! I agree. Oversight's", NewFilter(DefaultStopwords...))
	assert.Equal(t, []string{"human", "oversight", "appeals", "oversight"}, toks)
}

func TestTokensUnicode(t *testing.T) {
	toks := Tokens("Адам бақылауы ЖӘНЕ контроль", nil)
	assert.Equal(t, []string{"адам", "бақылауы", "және", "контроль"}, toks)
}

func TestFrequencies(t *testing.T) {
	blob := "Transparency and appeals. transparency, oversight; Appeals transparency the the"
	freq := Frequencies(blob, NewFilter(DefaultStopwords...), 2)
	assert.Equal(t, []types.WordCount{{Word: "transparency", Count: 3}, {Word: "appeals", Count: 2}}, freq)

	all := Frequencies(blob, NewFilter(DefaultStopwords...), 0)
	assert.Len(t, all, 3)
	assert.Equal(t, "oversight", all[2].Word)
}

func TestTokensComposeDecomposed(t *testing.T) {
	// и followed by a combining breve composes to й
	toks := Tokens("Мои\u0306 контроль", nil)
	assert.Equal(t, []string{"мо\u0439", "контроль"}, toks)
}
