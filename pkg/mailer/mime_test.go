package mailer

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMIME(t *testing.T, raw []byte) *mail.Message {
	t.Helper()
	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	return parsed
}

func readParts(t *testing.T, body io.Reader, boundary string) map[string]string {
	t.Helper()

	parts := make(map[string]string)
	reader := multipart.NewReader(body, boundary)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		var content io.Reader = part
		if part.Header.Get("Content-Transfer-Encoding") == "quoted-printable" {
			content = quotedprintable.NewReader(part)
		}
		data, err := io.ReadAll(content)
		require.NoError(t, err)

		mediaType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		require.NoError(t, err)
		parts[mediaType] = string(data)
	}
	return parts
}

func TestBuildMIME_WithoutAttachment(t *testing.T) {
	msg := validMessage()
	msg.Subject = "DC Motor Enquiry - SOLID-YOKE"

	raw, err := buildMIME(msg)
	require.NoError(t, err)

	parsed := parseMIME(t, raw)
	assert.Equal(t, "noreply@yourcompany.com", parsed.Header.Get("From"))
	assert.Equal(t, "sales@yourcompany.com", parsed.Header.Get("To"))
	assert.Equal(t, "1.0", parsed.Header.Get("MIME-Version"))
	assert.NotEmpty(t, parsed.Header.Get("Date"))

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "DC Motor Enquiry - SOLID-YOKE", subject)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	parts := readParts(t, parsed.Body, params["boundary"])
	assert.Equal(t, "plain body", parts["text/plain"])
	assert.Equal(t, "<p>html body</p>", parts["text/html"])
}

func TestBuildMIME_WithAttachment(t *testing.T) {
	content := []byte("%PDF-1.4 not really a pdf but enough bytes to span multiple base64 lines when encoded for transport")

	msg := validMessage()
	msg.Attachment = &Attachment{
		Filename:    "motor specs.pdf",
		ContentType: "application/pdf",
		Content:     content,
	}

	raw, err := buildMIME(msg)
	require.NoError(t, err)

	parsed := parseMIME(t, raw)
	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	reader := multipart.NewReader(parsed.Body, params["boundary"])

	// First part: the alternative body
	bodyPart, err := reader.NextPart()
	require.NoError(t, err)
	bodyType, bodyParams, err := mime.ParseMediaType(bodyPart.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", bodyType)

	parts := readParts(t, bodyPart, bodyParams["boundary"])
	assert.Equal(t, "plain body", parts["text/plain"])
	assert.Equal(t, "<p>html body</p>", parts["text/html"])

	// Second part: the base64 attachment
	attachPart, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "base64", attachPart.Header.Get("Content-Transfer-Encoding"))
	assert.Contains(t, attachPart.Header.Get("Content-Disposition"), `filename="motor specs.pdf"`)

	encoded, err := io.ReadAll(attachPart)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimRight(string(encoded), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, content, decoded)
}

func TestBuildMIME_PlainTextOnly(t *testing.T) {
	msg := validMessage()
	msg.HTMLBody = ""

	raw, err := buildMIME(msg)
	require.NoError(t, err)

	parsed := parseMIME(t, raw)
	_, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)

	parts := readParts(t, parsed.Body, params["boundary"])
	assert.Equal(t, "plain body", parts["text/plain"])
	_, hasHTML := parts["text/html"]
	assert.False(t, hasHTML)
}
