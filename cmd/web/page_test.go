package web

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var containerClassAttr = regexp.MustCompile(`id="nema-alerts-feed" class="([^"]*)"`)

func renderPage(t *testing.T, props PageProps) string {
	t.Helper()
	var builder strings.Builder
	require.NoError(t, Page(props).Render(context.Background(), &builder))
	return builder.String()
}

func containerClasses(t *testing.T, out string) []string {
	t.Helper()
	match := containerClassAttr.FindStringSubmatch(out)
	require.Len(t, match, 2)
	return strings.Fields(match[1])
}

func TestPage(t *testing.T) {
	out := renderPage(t, PageProps{
		Title:       "NEMA Alerts",
		FeedURL:     "https://alerthub.civildefence.govt.nz/rss/pwp",
		FragmentURL: "/alerts/fragment",
		ContainerID: "nema-alerts-feed",
		Placeholder: "<p>Loading alerts...</p>",
		Version:     "abc1234",
	})

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `data-source="/alerts/fragment" aria-live="polite"><p>Loading alerts...</p></div>`)
	assert.Contains(t, out, `href="https://alerthub.civildefence.govt.nz/rss/pwp"`)
	assert.Contains(t, out, `<title>NEMA Alerts</title>`)
	assert.Contains(t, out, "alertfeed abc1234 · ")
	assert.Contains(t, out, `<script src="/static/js/app.js" defer></script>`)
	assert.ElementsMatch(t, strings.Fields(containerClass), containerClasses(t, out))
}

func TestPageClassOverride(t *testing.T) {
	out := renderPage(t, PageProps{
		ContainerID: "nema-alerts-feed",
		Class:       "p-2 bg-amber-50",
	})

	classes := containerClasses(t, out)
	assert.Contains(t, classes, "p-2")
	assert.Contains(t, classes, "bg-amber-50")
	assert.Contains(t, classes, "rounded-lg")
	assert.NotContains(t, classes, "p-4")
	assert.NotContains(t, classes, "bg-white")
}

func TestPageEscapes(t *testing.T) {
	out := renderPage(t, PageProps{
		Title:       `<Alerts & "Warnings">`,
		FeedURL:     "javascript:alert(1)",
		ContainerID: "nema-alerts-feed",
	})

	assert.Contains(t, out, "<title>&lt;Alerts &amp; &#34;Warnings&#34;&gt;</title>")
	assert.NotContains(t, out, "javascript:")
}

func TestClass(t *testing.T) {
	assert.ElementsMatch(t, []string{"rounded-lg", "p-2"}, strings.Fields(Class("rounded-lg p-4", "p-2")))
	assert.ElementsMatch(t, []string{"rounded-lg", "p-4"}, strings.Fields(Class("rounded-lg p-4")))
}
