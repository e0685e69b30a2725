package alerts

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

const dataURIPrefix = "data:"

// envelope is the allorigins /get response. Only Contents drives behaviour;
// Status is kept for diagnostics.
type envelope struct {
	Contents *string         `json:"contents"`
	Status   *envelopeStatus `json:"status"`
}

type envelopeStatus struct {
	URL          string `json:"url"`
	ContentType  string `json:"content_type"`
	HTTPCode     int    `json:"http_code"`
	ResponseTime int    `json:"response_time"`
}

// decodeEnvelope unwraps the proxy JSON body and returns the feed document
// bytes, decoding a data: URI payload when present.
func decodeEnvelope(body []byte) ([]byte, *envelopeStatus, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, nil, &EnvelopeError{Msg: "Invalid JSON received from proxy.", Err: err}
	}
	if env.Contents == nil || *env.Contents == "" {
		return nil, env.Status, &EnvelopeError{Msg: msgNoContent}
	}
	doc, err := decodeContents(*env.Contents)
	if err != nil {
		return nil, env.Status, err
	}
	return doc, env.Status, nil
}

// decodeContents returns literal XML unchanged and Base64-decodes the part of
// a data: URI after its first comma.
func decodeContents(contents string) ([]byte, error) {
	if !strings.HasPrefix(contents, dataURIPrefix) {
		return []byte(contents), nil
	}
	_, payload, found := strings.Cut(contents, ",")
	if !found {
		return nil, &EnvelopeError{Msg: msgBadDataURI}
	}
	decoded, err := decodeBase64(payload)
	if err != nil {
		return nil, &EnvelopeError{Msg: msgBadDataURI, Err: err}
	}
	return decoded, nil
}

// decodeBase64 accepts the same input as a browser's atob: ASCII whitespace
// is ignored and padding is optional.
func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, payload)
	payload = strings.TrimRight(payload, "=")
	return base64.RawStdEncoding.DecodeString(payload)
}
