package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentItemsInOrder(t *testing.T) {
	doc, err := parseDocument([]byte(`<?xml version="1.0" encoding="UTF-8"?>
	<rss version="2.0">
	<channel>
	<title>Alerts</title>
	<item><title>First</title></item>
	<item><title>Second</title></item>
	<item><title>Third</title></item>
	</channel>
	</rss>`))
	require.NoError(t, err)

	items := doc.all("item")
	require.Len(t, items, 3)
	assert.Equal(t, "First", items[0].first("title").textContent())
	assert.Equal(t, "Second", items[1].first("title").textContent())
	assert.Equal(t, "Third", items[2].first("title").textContent())
}

func TestParseDocumentTextContent(t *testing.T) {
	doc, err := parseDocument([]byte(`<rss><item><description>Heavy <![CDATA[<b>rain</b>]]> &amp; <em>wind</em><!-- ignored --></description></item></rss>`))
	require.NoError(t, err)

	desc := doc.first("description")
	require.NotNil(t, desc)
	assert.Equal(t, "Heavy <b>rain</b> & wind", desc.textContent())
}

func TestParseDocumentNamespacedNames(t *testing.T) {
	doc, err := parseDocument([]byte(`<rss xmlns:cap="urn:oasis:names:tc:emergency:cap:1.2"><channel><item><cap:title>Namespaced</cap:title></item></channel></rss>`))
	require.NoError(t, err)

	title := doc.all("item")[0].first("title")
	require.NotNil(t, title)
	assert.Equal(t, "Namespaced", title.textContent())
}

func TestParseDocumentRootItem(t *testing.T) {
	doc, err := parseDocument([]byte(`<item><title>Alone</title></item>`))
	require.NoError(t, err)

	assert.Len(t, doc.all("item"), 1)
}

func TestParseDocumentLatin1(t *testing.T) {
	doc, err := parseDocument([]byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><rss><item><title>Caf\xe9</title></item></rss>"))
	require.NoError(t, err)

	assert.Equal(t, "Café", doc.first("title").textContent())
}

func TestParseDocumentByteOrderMark(t *testing.T) {
	doc, err := parseDocument([]byte("\xef\xbb\xbf<rss><item/></rss>"))
	require.NoError(t, err)

	assert.Len(t, doc.all("item"), 1)
}

func TestParseDocumentErrors(t *testing.T) {
	for name, input := range map[string]string{
		"unclosed":       `<rss><channel><item></channel></rss>`,
		"truncated":      `<rss><channel>`,
		"empty":          ``,
		"whitespace":     "  \n ",
		"plain text":     `Service Unavailable`,
		"html entity":    `<rss><item><title>a&nbsp;b</title></item></rss>`,
		"two roots":      `<rss/><rss/>`,
		"trailing text":  `<rss/>junk`,
		"mismatched tag": `<rss><item></rss></item>`,
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := parseDocument([]byte(input))

			assert.Error(t, err)
			assert.Nil(t, doc)
		})
	}
}

func TestFirstAndChild(t *testing.T) {
	doc, err := parseDocument([]byte(`<rss><channel><item><title>Item</title></item><title>Channel</title></channel></rss>`))
	require.NoError(t, err)

	channel := doc.first("channel")
	require.NotNil(t, channel)
	assert.Equal(t, "Item", channel.first("title").textContent())
	assert.Equal(t, "Channel", channel.child("title").textContent())
	assert.Nil(t, channel.child("link"))
}
