// Package account registers the HTTP command and query endpoints for accounts.
package account

import (
	"log/slog"

	accountsvc "github.com/aitlahcen/comptes/pkg/service/account"
	"github.com/aitlahcen/comptes/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the account endpoints on the fiber app.
//
// Command side:
//   - POST /commands/account/create              : open a new account
//   - PUT  /commands/account/credit              : credit an account
//   - PUT  /commands/account/debit               : debit an account
//   - GET  /commands/account/eventstore/:id      : inspect an aggregate's event stream
//
// Query side:
//   - GET  /query/accounts                       : list all account views
//   - GET  /query/accounts/:id                   : one account view
//   - GET  /query/accounts/:id/operations        : the account's operation ledger
func Routes(app *fiber.App, svc *accountsvc.Service, logger *slog.Logger) {
	app.Post("/commands/account/create", CreateAccount(svc, logger))
	app.Put("/commands/account/credit", Credit(svc, logger))
	app.Put("/commands/account/debit", Debit(svc, logger))
	app.Get("/commands/account/eventstore/:id", EventStream(svc, logger))

	app.Get("/query/accounts", ListAccounts(svc))
	app.Get("/query/accounts/:id", GetAccount(svc))
	app.Get("/query/accounts/:id/operations", ListOperations(svc))
}

// CreateAccount returns the handler for opening a new account. The server
// assigns the account id and returns it in the response body.
func CreateAccount(svc *accountsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		id, err := svc.CreateAccount(c.UserContext(), input.InitialBalance, input.Currency)
		if err != nil {
			logger.Error("create account failed", "error", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", fiber.Map{
			"account_id": id,
		})
	}
}

// Credit returns the handler for crediting an account.
func Credit(svc *accountsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreditAccountRequest](c)
		if input == nil {
			return err
		}
		id := uuid.MustParse(input.AccountID)
		if err := svc.Credit(c.UserContext(), id, input.Amount, input.Currency); err != nil {
			logger.Error("credit failed", "account_id", id, "error", err)
			return common.ProblemDetailsJSON(c, "Failed to credit account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account credited", nil)
	}
}

// Debit returns the handler for debiting an account.
func Debit(svc *accountsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[DebitAccountRequest](c)
		if input == nil {
			return err
		}
		id := uuid.MustParse(input.AccountID)
		if err := svc.Debit(c.UserContext(), id, input.Amount, input.Currency); err != nil {
			logger.Error("debit failed", "account_id", id, "error", err)
			return common.ProblemDetailsJSON(c, "Failed to debit account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account debited", nil)
	}
}

// EventStream returns the handler exposing an aggregate's raw event stream.
func EventStream(svc *accountsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		stored, err := svc.EventStream(c.UserContext(), id)
		if err != nil {
			logger.Error("event stream read failed", "account_id", id, "error", err)
			return common.ProblemDetailsJSON(c, "Failed to read event stream", err)
		}
		out := make([]StoredEventDTO, 0, len(stored))
		for _, s := range stored {
			out = append(out, StoredEventDTO{
				Version:   s.Version,
				Type:      s.Type,
				Payload:   s.Payload,
				CreatedAt: s.CreatedAt,
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Event stream", out)
	}
}

// GetAccount returns the handler for reading one account view.
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		view, err := svc.GetAccount(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Account not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account", view)
	}
}

// ListAccounts returns the handler for listing all account views.
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		views, err := svc.ListAccounts(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", views)
	}
}

// ListOperations returns the handler for reading an account's operation ledger.
func ListOperations(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		ops, err := svc.ListOperations(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list operations", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Operations", ops)
	}
}
