package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// multipartMemory is how much of a multipart body is kept in memory.
const multipartMemory = 1 << 20

// readForm collects the submitted fields from a urlencoded, multipart or
// flat JSON body. Query parameters are ignored.
func readForm(c echo.Context) (url.Values, error) {
	req := c.Request()
	contentType := req.Header.Get(echo.HeaderContentType)

	switch {
	case strings.HasPrefix(contentType, echo.MIMEApplicationJSON):
		return readJSONForm(c)

	case strings.HasPrefix(contentType, echo.MIMEMultipartForm):
		if err := req.ParseMultipartForm(multipartMemory); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
		return req.PostForm, nil

	case strings.HasPrefix(contentType, echo.MIMEApplicationForm):
		if err := req.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		return req.PostForm, nil

	default:
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}
}

// readJSONForm reads a flat JSON object. Scalars are converted to their
// text form and null counts as missing.
func readJSONForm(c echo.Context) (url.Values, error) {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return nil, fmt.Errorf("decode json body: %w", err)
	}

	form := url.Values{}
	for key, value := range body {
		switch v := value.(type) {
		case nil:
		case string:
			form.Set(key, v)
		case float64:
			form.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			form.Set(key, strconv.FormatBool(v))
		default:
			return nil, fmt.Errorf("field %q must be a string", key)
		}
	}
	return form, nil
}
