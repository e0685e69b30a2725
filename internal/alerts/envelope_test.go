package alerts

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelopeLiteral(t *testing.T) {
	doc, status, err := decodeEnvelope([]byte(`{"contents":"<rss><channel/></rss>","status":{"url":"https://example.com","http_code":200}}`))

	require.NoError(t, err)
	assert.Equal(t, "<rss><channel/></rss>", string(doc))
	require.NotNil(t, status)
	assert.Equal(t, 200, status.HTTPCode)
}

func TestDecodeEnvelopeDataURI(t *testing.T) {
	xml := `<rss><channel><item><title>Tēnā koe</title></item></channel></rss>`
	encoded := base64.StdEncoding.EncodeToString([]byte(xml))

	doc, _, err := decodeEnvelope([]byte(`{"contents":"data:application/rss+xml; charset=utf-8;base64,` + encoded + `"}`))

	require.NoError(t, err)
	assert.Equal(t, xml, string(doc))
}

func TestDecodeEnvelopeMissingContents(t *testing.T) {
	for name, body := range map[string]string{
		"absent":         `{"status":{"http_code":200}}`,
		"null":           `{"contents":null}`,
		"empty":          `{"contents":""}`,
		"json null body": `null`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := decodeEnvelope([]byte(body))

			var envelopeErr *EnvelopeError
			require.True(t, errors.As(err, &envelopeErr))
			assert.Equal(t, "No content received from proxy.", err.Error())
		})
	}
}

func TestDecodeEnvelopeInvalidJSON(t *testing.T) {
	for name, body := range map[string]string{
		"syntax":        `<html>Bad gateway</html>`,
		"non-string":    `{"contents":42}`,
		"array at root": `[]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := decodeEnvelope([]byte(body))

			assert.Equal(t, "envelope", Kind(err))
		})
	}
}

func TestDecodeContentsDataURIWithoutComma(t *testing.T) {
	_, err := decodeContents("data:application/rss+xml;base64")

	var envelopeErr *EnvelopeError
	require.True(t, errors.As(err, &envelopeErr))
	assert.Equal(t, "Invalid Data URI received from proxy.", err.Error())
}

func TestDecodeContentsInvalidBase64(t *testing.T) {
	_, err := decodeContents("data:text/xml;base64,***")

	var envelopeErr *EnvelopeError
	require.True(t, errors.As(err, &envelopeErr))
	assert.Equal(t, "Invalid Data URI received from proxy.", err.Error())
	assert.NotNil(t, envelopeErr.Err)
}

func TestDecodeContentsEmptyMediaType(t *testing.T) {
	doc, err := decodeContents("data:,PGEvPg==")

	require.NoError(t, err)
	assert.Equal(t, "<a/>", string(doc))
}

func TestDecodeBase64LikeAtob(t *testing.T) {
	for name, payload := range map[string]string{
		"padded":     "PGEvPg==",
		"unpadded":   "PGEvPg",
		"whitespace": "PGE v\nPg==",
	} {
		t.Run(name, func(t *testing.T) {
			decoded, err := decodeBase64(payload)

			require.NoError(t, err)
			assert.Equal(t, "<a/>", string(decoded))
		})
	}
}

func TestDecodeContentsLiteralUnchanged(t *testing.T) {
	doc, err := decodeContents("  <rss/>")

	require.NoError(t, err)
	assert.Equal(t, "  <rss/>", string(doc))
}
