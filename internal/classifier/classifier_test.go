package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/kohljary/driftwatch/internal/lexicon"
	"github.com/kohljary/driftwatch/internal/model"
)

func TestClassify_Technical(t *testing.T) {
	c := New(nil)
	res := c.Classify("Here is the fix:\n```go\nfunc main() {}\n```\nThis function should help you debug it.", "")

	assert.Equal(t, model.ContextTechnical, res.PrimaryContext)
	assert.Greater(t, res.Confidence, 0.0)
	assert.Positive(t, res.Signals["```"])
}

func TestClassify_NeutralInputIsUnknown(t *testing.T) {
	c := New(nil)
	for _, text := range []string{"", "ok", "thanks", "   "} {
		res := c.Classify(text, "")
		assert.Equal(t, model.ContextUnknown, res.PrimaryContext, "input %q", text)
		assert.Zero(t, res.Confidence, "input %q", text)
		assert.Empty(t, res.SecondaryContexts, "input %q", text)
	}
}

func TestClassify_UserTextContributes(t *testing.T) {
	c := New(nil)
	res := c.Classify("ok", "I feel so lonely and sad since the breakup")
	assert.Equal(t, model.ContextEmotional, res.PrimaryContext)
}

func TestClassify_VarietyOutweighsRepetition(t *testing.T) {
	c := New(nil)
	// casual: 1 pattern x 6 matches = 8; emotional: 4 patterns x 1 match = 12
	res := c.Classify("cool cool cool cool cool cool. sad. hurt. feel. love.", "")
	assert.Equal(t, model.ContextEmotional, res.PrimaryContext)
}

func TestClassify_SecondaryContexts(t *testing.T) {
	c := New(nil)
	res := c.Classify(
		"The function threw an error in the database query, so debug the api server code. "+
			"I know it's stressful and you feel overwhelmed.", "")

	require.Equal(t, model.ContextTechnical, res.PrimaryContext)
	require.NotEmpty(t, res.SecondaryContexts)
	assert.Equal(t, model.ContextEmotional, res.SecondaryContexts[0].Context)
	assert.Less(t, res.SecondaryContexts[0].Score, res.Confidence)
}

func TestClassify_SecondaryThreshold(t *testing.T) {
	text := "The function threw an error in the database query, so debug the api server code. You feel sad."
	loose := New(nil, WithSecondaryThreshold(0)).Classify(text, "")
	strict := New(nil, WithSecondaryThreshold(0.99)).Classify(text, "")

	assert.NotEmpty(t, loose.SecondaryContexts)
	assert.Empty(t, strict.SecondaryContexts)
}

func TestClassify_CustomLexicon(t *testing.T) {
	l, err := lexicon.Parse([]byte(`
contexts:
  casual:
    - '\bok\b'
`))
	require.NoError(t, err)
	lex, err := l.Compile()
	require.NoError(t, err)

	res := New(lex).Classify("ok", "")
	assert.Equal(t, model.ContextCasual, res.PrimaryContext)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
}

func TestClassify_Properties(t *testing.T) {
	c := New(nil)
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "response")
		user := rapid.String().Draw(t, "user")
		res := c.Classify(text, user)

		if res.Confidence < 0 || res.Confidence > 1 {
			t.Fatalf("confidence out of range: %v", res.Confidence)
		}
		if len(res.SecondaryContexts) > 3 {
			t.Fatalf("too many secondary contexts: %d", len(res.SecondaryContexts))
		}
		sum := res.Confidence
		for _, s := range res.SecondaryContexts {
			if s.Score < 0 || s.Score > res.Confidence {
				t.Fatalf("secondary score %v out of range (primary %v)", s.Score, res.Confidence)
			}
			if s.Context == res.PrimaryContext {
				t.Fatalf("secondary repeats primary %s", s.Context)
			}
			sum += s.Score
		}
		if sum > 1+1e-9 {
			t.Fatalf("shares sum above 1: %v", sum)
		}
		if res.PrimaryContext == model.ContextUnknown && res.Confidence != 0 {
			t.Fatalf("unknown with confidence %v", res.Confidence)
		}
	})
}
