// Package common holds the response envelope and request binding helpers
// shared by the HTTP handlers.
package common

import (
	"errors"

	"github.com/aitlahcen/comptes/pkg/domain/account"
	"github.com/aitlahcen/comptes/pkg/eventstore"
	"github.com/aitlahcen/comptes/pkg/readmodel"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response is the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// SuccessResponseJSON writes a success envelope with the given status code.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem response. The status code is
// derived from the error when one is given.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, status ...int) error {
	code := fiber.StatusInternalServerError
	if err != nil {
		code = ErrorToStatusCode(err)
	}
	if len(status) > 0 {
		code = status[0]
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   code,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(code).JSON(pd)
}

// ErrorToStatusCode maps domain and storage errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	var insufficient *account.InsufficientBalanceError
	switch {
	case errors.Is(err, account.ErrInitialBalanceNegative),
		errors.Is(err, account.ErrAmountNegative):
		return fiber.StatusBadRequest
	case errors.As(err, &insufficient),
		errors.Is(err, account.ErrAccountNotActive):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, readmodel.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, account.ErrAccountAlreadyExists),
		errors.Is(err, eventstore.ErrVersionConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it. On failure it
// writes the error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest) //nolint:errcheck
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest) //nolint:errcheck
		return nil, err
	}
	return &input, nil
}
