// Package response renders the uniform JSON envelope every endpoint returns:
//
//	{"status": "OK", "statusCode": 200, "message": "...", "field": "...", "data": ...}
package response

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Outcome is one row of the fixed status table.
type Outcome struct {
	Name    string
	Code    int
	Message string
}

var (
	OK                  = Outcome{"OK", http.StatusOK, "Fetched successfully"}
	Created             = Outcome{"CREATED", http.StatusCreated, "Created successfully"}
	NoContent           = Outcome{"NO_CONTENT", http.StatusNoContent, "No data available"}
	BadRequest          = Outcome{"BAD_REQUEST", http.StatusBadRequest, "Bad request!"}
	Unauthorized        = Outcome{"UNAUTHORIZED", http.StatusUnauthorized, "Unauthorized user!"}
	NotFound            = Outcome{"NOT_FOUND", http.StatusNotFound, "Resource not found!"}
	Conflict            = Outcome{"CONFLICT", http.StatusConflict, "Conflict!"}
	InternalServerError = Outcome{"INTERNAL_SERVER_ERROR", http.StatusInternalServerError, "Internal server error!"}
)

var byCode = map[int]Outcome{}

func init() {
	for _, o := range []Outcome{OK, Created, NoContent, BadRequest, Unauthorized, NotFound, Conflict, InternalServerError} {
		byCode[o.Code] = o
	}
}

// ForStatus returns the table row for code, deriving one from the HTTP status text
// for codes outside the table (405, 413, ...).
func ForStatus(code int) Outcome {
	if o, ok := byCode[code]; ok {
		return o
	}
	text := http.StatusText(code)
	if text == "" {
		return InternalServerError
	}
	return Outcome{
		Name:    strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_").Replace(text)),
		Code:    code,
		Message: text + "!",
	}
}

// Envelope is the body of every response.
type Envelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// Send writes the envelope for o. An empty message keeps the outcome default.
func Send(c echo.Context, o Outcome, message string, data any) error {
	if o.Code == http.StatusNoContent {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(o.Code, New(o, message, data))
}

// SendField writes an error envelope naming the offending input field.
func SendField(c echo.Context, o Outcome, field, message string) error {
	env := New(o, message, nil)
	env.Field = field
	return c.JSON(o.Code, env)
}

func New(o Outcome, message string, data any) Envelope {
	if message == "" {
		message = o.Message
	}
	return Envelope{Status: o.Name, StatusCode: o.Code, Message: message, Data: data}
}
