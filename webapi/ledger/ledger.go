// Package ledger exposes transfers, accounts and their history over HTTP.
package ledger

import (
	"encoding/json"

	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/idempotency"
	"github.com/amirasaad/opsledger/pkg/middleware"
	"github.com/amirasaad/opsledger/pkg/money"
	categorysvc "github.com/amirasaad/opsledger/pkg/service/category"
	clientsvc "github.com/amirasaad/opsledger/pkg/service/client"
	ledgersvc "github.com/amirasaad/opsledger/pkg/service/ledger"
	webcommon "github.com/amirasaad/opsledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const (
	// HeaderIdempotencyKey names a transfer request so that retries commit it once.
	HeaderIdempotencyKey = "Idempotency-Key"
	// HeaderIdempotentReplayed marks a response served from the idempotency cache.
	HeaderIdempotentReplayed = "Idempotent-Replayed"
)

// Routes registers the ledger endpoints.
//
// Routes:
//   - POST  /transfers                             : Move money between two accounts. An
//     Idempotency-Key header replays the first response for repeated requests.
//   - GET   /categories                            : List accounts, optionally by row.
//   - POST  /categories                            : Create a standalone account.
//   - GET   /categories/:id                        : Get one account.
//   - GET   /categories/:id/balance                : Get the balance of an account.
//   - GET   /categories/:id/reconcile              : Compare balance and history.
//   - GET   /categories/:id/transactions           : Page through the history, newest first.
//   - GET   /categories/:id/transactions/stream    : Stream history changes (SSE).
//   - PATCH /categories/:id/visibility             : Show or hide one account.
//   - GET   /system-balance                        : Total taken from person accounts.
func Routes(
	app *fiber.App,
	ledgerSvc *ledgersvc.Service,
	categorySvc *categorysvc.Service,
	clientSvc *clientsvc.Service,
	guard *idempotency.Guard,
	cfg *config.App,
) {
	protected := middleware.Protected(jwtSecret(cfg))
	app.Post("/transfers", protected, Transfer(ledgerSvc, guard))
	app.Get("/categories", protected, ListCategories(categorySvc, ledgerSvc.Codec()))
	app.Post("/categories", protected, CreateCategory(categorySvc, ledgerSvc.Codec()))
	app.Get("/categories/:id", protected, GetCategory(ledgerSvc))
	app.Get("/categories/:id/balance", protected, GetBalance(ledgerSvc))
	app.Get("/categories/:id/reconcile", protected, Reconcile(ledgerSvc))
	app.Get("/categories/:id/transactions", protected, History(ledgerSvc))
	app.Get("/categories/:id/transactions/stream", protected, Stream(ledgerSvc))
	app.Patch("/categories/:id/visibility", protected, SetCategoryVisibility(clientSvc, ledgerSvc.Codec()))
	app.Get("/system-balance", protected, SystemBalance(ledgerSvc))
}

func jwtSecret(cfg *config.App) string {
	if cfg == nil || cfg.Auth == nil {
		return ""
	}
	return cfg.Auth.JwtSecret
}

// Transfer returns a handler that commits a transfer.
func Transfer(svc *ledgersvc.Service, guard *idempotency.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := webcommon.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.FromFloatExact(input.Amount)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Invalid amount", err)
		}
		log.Infof("Transfer requested by %s: %s -> %s", middleware.Operator(c), input.SourceID, input.TargetID)
		commit := func() ([]byte, error) {
			res, err := svc.Transfer(c.UserContext(), ledgersvc.TransferCommand{
				SourceID:    uuid.MustParse(input.SourceID),
				TargetID:    uuid.MustParse(input.TargetID),
				Amount:      amount,
				Description: input.Description,
			})
			if err != nil {
				return nil, err
			}
			return json.Marshal(webcommon.Response{
				Status:  fiber.StatusCreated,
				Message: "Transfer committed",
				Data:    toTransferResponse(res, svc.Codec()),
			})
		}

		var body []byte
		replayed := false
		if key := c.Get(HeaderIdempotencyKey); key != "" && guard != nil {
			body, replayed, err = guard.Do(c.UserContext(), "transfer:"+key, commit)
		} else {
			body, err = commit()
		}
		if err != nil {
			log.Errorf("Transfer failed: %v", err)
			return webcommon.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		if replayed {
			c.Set(HeaderIdempotentReplayed, "true")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusCreated).Send(body)
	}
}

// ListCategories returns a handler listing accounts. Query: row (1-4), visible (bool).
func ListCategories(svc *categorysvc.Service, codec money.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		row := category.Row(c.QueryInt("row", 0))
		cats, err := svc.List(c.UserContext(), row, c.QueryBool("visible", false))
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to list categories", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Categories fetched", toCategoryResponses(cats, codec))
	}
}

// CreateCategory returns a handler creating a standalone account.
func CreateCategory(svc *categorysvc.Service, codec money.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := webcommon.BindAndValidate[CreateCategoryRequest](c)
		if input == nil {
			return err
		}
		cat, err := svc.Create(c.UserContext(), categorysvc.CreateCommand{
			Title:  input.Title,
			Row:    category.Row(input.Row),
			Icon:   input.Icon,
			Color:  input.Color,
			Status: common.Status(input.Status),
		})
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to create category", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusCreated, "Category created", toCategoryResponse(cat, codec))
	}
}

// GetCategory returns a handler fetching one account.
func GetCategory(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		cat, err := svc.GetCategory(c.UserContext(), id)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to get category", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Category fetched", toCategoryResponse(cat, svc.Codec()))
	}
}

// GetBalance returns a handler reading the balance of an account.
func GetBalance(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		balance, err := svc.GetBalance(c.UserContext(), id)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to get balance", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Balance fetched", BalanceResponse{
			CategoryID: id.String(),
			Amount:     svc.Codec().Format(balance),
			Balance:    balance.Float64(),
		})
	}
}

// Reconcile returns a handler comparing an account's balance with its history.
func Reconcile(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		rec, err := svc.Reconcile(c.UserContext(), id)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to reconcile", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Reconciled", ReconcileResponse{
			CategoryID: id.String(),
			Stored:     rec.Stored.Float64(),
			HistorySum: rec.HistorySum.Float64(),
			Drift:      rec.Drift.Float64(),
			Consistent: rec.Consistent(),
		})
	}
}

// History returns a handler paging through an account's history. The id may name a
// deleted account or system_balance. Query: limit, offset.
func History(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := webcommon.PageFromQuery(c)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Invalid paging", err, fiber.StatusBadRequest)
		}
		txs, err := svc.History(c.UserContext(), c.Params("id"), page)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", toTransactionResponses(txs))
	}
}

// SetCategoryVisibility returns a handler showing or hiding one account.
func SetCategoryVisibility(svc *clientsvc.Service, codec money.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := webcommon.BindAndValidate[VisibilityRequest](c)
		if input == nil {
			return err
		}
		cat, err := svc.SetCategoryVisibility(c.UserContext(), id, *input.IsVisible)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to update visibility", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Visibility updated", toCategoryResponse(cat, codec))
	}
}

// SystemBalance returns a handler reading the system balance.
func SystemBalance(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		total, err := svc.SystemBalance(c.UserContext())
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to get system balance", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "System balance fetched", BalanceResponse{
			CategoryID: "system_balance",
			Amount:     svc.Codec().Format(total),
			Balance:    total.Float64(),
		})
	}
}
