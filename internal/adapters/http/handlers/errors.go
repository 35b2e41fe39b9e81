package handlers

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ledgerMessages are the client-facing texts for ledger and loan state errors
var ledgerMessages = []struct {
	err     error
	message string
}{
	{domain.ErrInvalidAmount, "Invalid amount"},
	{domain.ErrInsufficientFunds, "Insufficient funds"},
	{domain.ErrLoanNotPending, "Loan is not pending"},
	{domain.ErrLoanNotApproved, "Loan is not approved"},
	{domain.ErrLoanNotActive, "Loan is not active"},
	{domain.ErrOverpayment, "Payment amount exceeds remaining balance"},
}

// fail maps a service error to a response. Unknown errors are logged and reported as fallback with 500.
func fail(c *fiber.Ctx, err error, fallback string) error {
	for _, m := range ledgerMessages {
		if errors.Is(err, m.err) {
			return response.BadRequest(c, m.message)
		}
	}

	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return response.BadRequest(c, sentence(vErr.Error()))
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, sentence(err.Error()))
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return response.Conflict(c, "Record was modified by another request, please retry")
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, sentence(err.Error()))
	case errors.Is(err, services.ErrResponseRequired),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrOldPasswordWrong),
		errors.Is(err, services.ErrCannotChangeOwnRole),
		errors.Is(err, services.ErrCannotDeleteSelf):
		return response.BadRequest(c, sentence(err.Error()))
	}

	slog.Error(fallback, "method", c.Method(), "path", c.Path(), "error", err)
	return response.InternalServerError(c, fallback)
}

// sentence upper-cases the first letter of an error message
func sentence(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// paramID reads the :id route parameter
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// queryUint reads an optional unsigned query parameter; absent or malformed yields 0
func queryUint(c *fiber.Ctx, key string) uint {
	n, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// queryBool reads an optional boolean query parameter
func queryBool(c *fiber.Ctx, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

// currentUserID returns the authenticated caller set by AuthMiddleware
func currentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok && id > 0
}

// actor identifies the caller for ledger audit columns
func actor(c *fiber.Ctx) services.Actor {
	id, _ := currentUserID(c)
	return services.Actor{UserID: id, IPAddress: c.IP()}
}
