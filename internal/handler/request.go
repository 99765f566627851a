package handler

import (
	"errors"
	"io"

	"github.com/labstack/echo/v4"
)

// bindJSON decodes the request body as JSON whatever Content-Type the client
// sent. An empty body decodes to the zero value.
func bindJSON(c echo.Context, into any) error {
	if err := c.Echo().JSONSerializer.Deserialize(c, into); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
