package templates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/templates"
)

func builtin(t *testing.T) *templates.Catalog {
	t.Helper()
	c, err := templates.Builtin()
	require.NoError(t, err)
	return c
}

func TestFind(t *testing.T) {
	c := builtin(t)

	tpl, ok := c.Find("cs-1")
	require.True(t, ok)
	assert.Equal(t, templates.KindGreeting, tpl.Kind)
	assert.Equal(t, "Hello! How can I assist you today?", tpl.Content)
	assert.Equal(t, domain.Slice{"greeting": "Hello! How can I assist you today?"}, tpl.Partial("greeting"))

	_, ok = c.Find("nope")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	c := builtin(t)

	t.Run("Text Matches Title Or Content", func(t *testing.T) {
		got := c.Search(templates.Query{Text: "WEBINAR"})
		require.Len(t, got, 1)
		assert.Equal(t, "event-invitation", got[0].ID)

		got = c.Search(templates.Query{Text: "real estate"})
		require.Len(t, got, 1)
		assert.Equal(t, "real-estate-showing", got[0].ID)
	})

	t.Run("Tags Match Any", func(t *testing.T) {
		got := c.Search(templates.Query{Tags: []string{"b2b"}})
		ids := make([]string, len(got))
		for i, tpl := range got {
			ids[i] = tpl.ID
		}
		assert.Equal(t, []string{"product-launch", "event-invitation"}, ids)
	})

	t.Run("Kind Filter", func(t *testing.T) {
		got := c.Search(templates.Query{Kind: templates.KindPrompt, Text: "customer"})
		assert.Len(t, got, 2)
		for _, tpl := range got {
			assert.Equal(t, templates.KindPrompt, tpl.Kind)
		}
	})

	t.Run("Empty Query Returns Everything", func(t *testing.T) {
		assert.Len(t, c.Search(templates.Query{}), len(c.Templates))
	})
}

func TestGroups(t *testing.T) {
	groups := builtin(t).Groups(templates.KindGreeting)
	require.Len(t, groups, 6)

	assert.Equal(t, "Inbound Calls", groups[0].CategoryName)
	assert.Equal(t, "Customer Support", groups[0].UseCaseName)
	assert.Len(t, groups[0].Templates, 3)
	assert.Equal(t, "feedback-collection", groups[5].UseCase)
}

func TestTags(t *testing.T) {
	tags := builtin(t).Tags()
	assert.Contains(t, tags, "Healthcare")
	assert.IsIncreasing(t, tags)
}

func TestRender(t *testing.T) {
	tpl, ok := builtin(t).Find("event-invitation")
	require.True(t, ok)
	assert.Equal(t,
		"Dear Ada, you're invited to our exclusive webinar on industry trends. Would you like to secure your spot?",
		tpl.Render(map[string]string{"name": "Ada"}))
}

func TestParse_Errors(t *testing.T) {
	_, err := templates.Parse([]byte("templates:\n  - {content: x}\n"))
	assert.ErrorContains(t, err, "missing id")

	_, err = templates.Parse([]byte("templates:\n  - {id: a}\n  - {id: a}\n"))
	assert.ErrorContains(t, err, "duplicate id")
}
