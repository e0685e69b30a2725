package alerts

import (
	"errors"
	"strings"
	"testing"

	"github.com/RobBrazier/alertfeed/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAlertsOneBlockPerAlert(t *testing.T) {
	r := NewRenderer()

	out, err := r.Alerts([]model.Alert{
		{Title: "First", Link: "https://example.com/1", PublishedAt: "1 March 2024 at 09:00 am"},
		{Title: "Second", Link: "https://example.com/2", PublishedAt: model.NoDate},
		{Title: "Third", Link: "#", PublishedAt: model.NoDate},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, `class="rss-item"`))
	first := strings.Index(out, "First")
	second := strings.Index(out, "Second")
	third := strings.Index(out, "Third")
	assert.True(t, first < second && second < third, "blocks out of order: %s", out)
	assert.Contains(t, out, `<a href="https://example.com/1" target="_blank" rel="noopener noreferrer">First</a>`)
	assert.Contains(t, out, `<span class="date">1 March 2024 at 09:00 am</span>`)
	assert.Contains(t, out, `<span class="date">N/A</span>`)
}

func TestRenderAlertsDescription(t *testing.T) {
	r := NewRenderer()

	out, err := r.Alerts([]model.Alert{
		{Title: "Flood", Link: "#", Description: "Move to higher ground", PublishedAt: model.NoDate},
		{Title: "Storm", Link: "#", Description: " storm ", PublishedAt: model.NoDate},
		{Title: "Quake", Link: "#", Description: "", PublishedAt: model.NoDate},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "<p>"))
	assert.Contains(t, out, "<p>Move to higher ground</p>")
}

func TestRenderAlertsDescriptionEmptyAfterSanitizing(t *testing.T) {
	r := NewRenderer()

	out, err := r.Alerts([]model.Alert{
		{Title: "Flood", Link: "#", Description: "<script>x()</script>", PublishedAt: model.NoDate},
		{Title: "Storm", Link: "#", Description: `<style>p{}</style> <iframe></iframe>`, PublishedAt: model.NoDate},
	})

	require.NoError(t, err)
	assert.NotContains(t, out, "<p>")
	assert.Equal(t, 2, strings.Count(out, `class="rss-item"`))
}

func TestRenderAlertsEscaping(t *testing.T) {
	r := NewRenderer()

	out, err := r.Alerts([]model.Alert{{
		Title:       `<script>alert("x")</script>`,
		Link:        "javascript:alert(1)",
		Description: `<b>Heavy</b> rain<script>steal()</script>`,
		PublishedAt: model.NoDate,
	}})

	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "#ZgotmplZ")
	assert.Contains(t, out, "<b>Heavy</b> rain")
}

func TestRenderStates(t *testing.T) {
	r := NewRenderer()

	assert.Equal(t, "<p>Loading alerts...</p>", r.Loading())
	assert.Equal(t, `<p class="no-alerts-message">No new alerts found at this time.</p>`, r.Empty())
	assert.Equal(t,
		`<p class="error-message">Failed to load alerts. Please check your internet connection or try again later. (Error: HTTP error! status: 500)</p>`,
		r.Error(&TransportError{StatusCode: 500}),
	)
}

func TestRenderErrorEscapesMessage(t *testing.T) {
	out := NewRenderer().Error(errors.New("<b>bad</b>"))

	assert.Contains(t, out, "&lt;b&gt;bad&lt;/b&gt;")
}
