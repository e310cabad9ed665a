package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFormURLEncoded(t *testing.T) {
	body := url.Values{"name": {"Ada"}, "cemail": {"ada@example.com"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/?name=query", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c, _ := newContext(req)

	form, err := readForm(c)
	require.NoError(t, err)

	assert.Equal(t, "Ada", form.Get("name"))
	assert.Equal(t, "ada@example.com", form.Get("cemail"))
}

func TestReadFormMultipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("email", "ada@example.com"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	c, _ := newContext(req)

	form, err := readForm(c)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", form.Get("email"))
}

func TestReadFormJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    url.Values
		wantErr bool
	}{
		{
			name: "strings",
			body: `{"email":"ada@example.com","company":""}`,
			want: url.Values{"email": {"ada@example.com"}, "company": {""}},
		},
		{
			name: "scalars and null",
			body: `{"name":42,"subscribed":true,"company":null}`,
			want: url.Values{"name": {"42"}, "subscribed": {"true"}},
		},
		{
			name:    "nested value",
			body:    `{"email":{"address":"ada@example.com"}}`,
			wantErr: true,
		},
		{
			name:    "malformed",
			body:    `{"email":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
			c, _ := newContext(req)

			form, err := readForm(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, form)
		})
	}
}

func TestReadFormUnsupportedContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("email=ada@example.com"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	c, _ := newContext(req)

	_, err := readForm(c)
	assert.ErrorContains(t, err, "unsupported content type")
}
