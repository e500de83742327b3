package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuidelineFor(t *testing.T) {
	t.Run("known disease returns table entry", func(t *testing.T) {
		g := GuidelineFor("hypertension")
		assert.Equal(t, "hypertension", g.Disease)
		assert.NotEmpty(t, g.Recommendations)
		assert.NotEmpty(t, g.Avoid)
		assert.Equal(t, []string{citationGuidelineTable}, g.Citations)
	})

	t.Run("unknown disease returns empty guideline with no-evidence citation", func(t *testing.T) {
		g := GuidelineFor("asthma")
		assert.Equal(t, "asthma", g.Disease)
		assert.Empty(t, g.Recommendations)
		assert.Empty(t, g.Avoid)
		assert.Equal(t, []string{citationNoEvidence}, g.Citations)
	})

	t.Run("all five diseases have entries", func(t *testing.T) {
		for _, disease := range []string{"hypertension", "diabetes", "hyperlipidemia", "kidney_disease", "gastritis"} {
			g := GuidelineFor(disease)
			assert.NotEmpty(t, g.Recommendations, disease)
		}
	})
}
