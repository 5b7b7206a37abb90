package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlog/scentlog/pkg/mailer"
)

func TestRenderReplyNotification(t *testing.T) {
	subject, html, text, err := Render(mailer.TemplateReplyNotification, map[string]any{
		"name":           "Author",
		"replier":        "Replier",
		"title":          "Best summer scents?",
		"discussion_url": "http://localhost:3000/discussions/d1",
	})
	require.NoError(t, err)
	assert.Equal(t, "New reply to your discussion", subject)
	assert.Contains(t, html, "Replier replied")
	assert.Contains(t, html, `href="http://localhost:3000/discussions/d1"`)
	assert.NotContains(t, text, "<")
	assert.Contains(t, text, "Hi Author,")
}

func TestRenderEveryKnownTemplate(t *testing.T) {
	data := map[string]any{
		"name": "Jane", "verify_url": "http://v", "reset_url": "http://r",
		"replier": "Joe", "title": "t", "discussion_url": "http://d",
	}
	for _, name := range []string{
		mailer.TemplateVerifyEmail,
		mailer.TemplateResetPassword,
		mailer.TemplateWelcome,
		mailer.TemplateReplyNotification,
	} {
		subject, html, text, err := Render(name, data)
		require.NoError(t, err, name)
		assert.NotEmpty(t, subject, name)
		assert.NotEmpty(t, html, name)
		assert.NotEmpty(t, text, name)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("promo_blast", nil)
	assert.Error(t, err)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Hi Jane, welcome", stripTags("<p>Hi <b>Jane</b>,</p><p>welcome</p>"))
}
