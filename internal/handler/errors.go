package handler

import (
    "errors"
    "log/slog"
    "net/http"

    "github.com/labstack/echo/v4"
)

// errorMessages are the fixed envelope messages per status.
var errorMessages = map[int]string{
    http.StatusBadRequest:           "bad request",
    http.StatusUnauthorized:         "unauthorized",
    http.StatusForbidden:            "forbidden",
    http.StatusNotFound:             "not found",
    http.StatusMethodNotAllowed:     "method not allowed",
    http.StatusUnsupportedMediaType: "unsupported media type",
    http.StatusUnprocessableEntity:  "unprocessable",
    http.StatusTooManyRequests:      "too many requests",
    http.StatusInternalServerError:  "internal server error",
}

// ErrorHandler renders every error as {"success": false, "error": status,
// "message": text}.  A handler that passes its own string to
// echo.NewHTTPError gets it back as message; otherwise the fixed text for
// the status is used.  Non-HTTP errors become 500 and are logged.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
    return func(err error, c echo.Context) {
        if c.Response().Committed {
            return
        }

        code := http.StatusInternalServerError
        var he *echo.HTTPError
        if errors.As(err, &he) {
            code = he.Code
        } else {
            logger.ErrorContext(c.Request().Context(), "unhandled error",
                "err", err,
                "method", c.Request().Method,
                "uri", c.Request().RequestURI,
            )
        }

        msg, ok := errorMessages[code]
        if !ok {
            msg = http.StatusText(code)
        }
        if he != nil {
            if custom, ok := he.Message.(string); ok && custom != "" && custom != http.StatusText(code) {
                msg = custom
            }
        }

        body := echo.Map{"success": false, "error": code, "message": msg}
        var werr error
        if c.Request().Method == http.MethodHead {
            werr = c.NoContent(code)
        } else {
            werr = c.JSON(code, body)
        }
        if werr != nil {
            logger.Error("write error response", "err", werr)
        }
    }
}
