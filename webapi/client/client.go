// Package client exposes client lifecycle endpoints over HTTP.
package client

import (
	"time"

	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/middleware"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/amirasaad/opsledger/pkg/repository"
	clientsvc "github.com/amirasaad/opsledger/pkg/service/client"
	webcommon "github.com/amirasaad/opsledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the client endpoints.
//
// Routes:
//   - POST   /clients                : Create a client with its person and project accounts.
//   - GET    /clients                : List clients. Query: year, status, visible, q.
//   - GET    /clients/overdue        : List clients building past their deadline.
//   - GET    /clients/:id            : Get one client.
//   - PATCH  /clients/:id            : Edit a client; renames its accounts.
//   - GET    /clients/:id/progress   : Payment schedule progress.
//   - GET    /clients/:id/history    : Changes made to a client, newest first. Query: limit, offset.
//   - PATCH  /clients/:id/status     : Set the status of the client and its accounts.
//   - PATCH  /clients/:id/visibility : Show, hide or toggle the client and its accounts.
//   - DELETE /clients/:id            : Delete a client. Query: history (default true), name.
func Routes(app *fiber.App, svc *clientsvc.Service, codec money.Codec, cfg *config.App) {
	secret := ""
	if cfg != nil && cfg.Auth != nil {
		secret = cfg.Auth.JwtSecret
	}
	protected := middleware.Protected(secret)
	app.Post("/clients", protected, CreateClient(svc))
	app.Get("/clients", protected, ListClients(svc))
	app.Get("/clients/overdue", protected, ListOverdue(svc))
	app.Get("/clients/:id", protected, GetClient(svc))
	app.Patch("/clients/:id", protected, UpdateClient(svc))
	app.Get("/clients/:id/progress", protected, PaymentProgress(svc, codec))
	app.Get("/clients/:id/history", protected, ClientHistory(svc))
	app.Patch("/clients/:id/status", protected, SetStatus(svc))
	app.Patch("/clients/:id/visibility", protected, SetVisibility(svc))
	app.Delete("/clients/:id", protected, DeleteClient(svc))
}

// CreateClient returns a handler creating a client and its two accounts.
func CreateClient(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := webcommon.BindAndValidate[ClientRequest](c)
		if input == nil {
			return err
		}
		details, err := input.toDetails()
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Invalid amount", err)
		}
		res, err := svc.CreateClient(c.UserContext(), details)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to create client", err)
		}
		log.Infof("Client %s created by %s", res.Client.ClientNumber, middleware.Operator(c))
		return webcommon.SuccessResponseJSON(c, fiber.StatusCreated, "Client created", toCreateResponse(res))
	}
}

// ListClients returns a handler listing clients. q matches every whitespace-separated term
// against names, client number, address, phone, email and object name.
func ListClients(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clients, err := svc.ListClients(c.UserContext(), repository.ClientFilter{
			Year:        c.QueryInt("year", 0),
			Status:      common.Status(c.Query("status")),
			VisibleOnly: c.QueryBool("visible", false),
			Query:       c.Query("q"),
		})
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to list clients", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Clients fetched", toClientResponses(clients))
	}
}

// ListOverdue returns a handler listing overdue clients.
func ListOverdue(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clients, err := svc.ListOverdue(c.UserContext(), time.Now().UTC())
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to list overdue clients", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Overdue clients fetched", toClientResponses(clients))
	}
}

// GetClient returns a handler fetching one client.
func GetClient(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		cl, err := svc.GetClient(c.UserContext(), id)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to get client", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Client fetched", toClientResponse(cl))
	}
}

// UpdateClient returns a handler editing a client.
func UpdateClient(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := webcommon.BindAndValidate[ClientRequest](c)
		if input == nil {
			return err
		}
		details, err := input.toDetails()
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Invalid amount", err)
		}
		cl, err := svc.UpdateClient(c.UserContext(), id, details)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to update client", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Client updated", toClientResponse(cl))
	}
}

// PaymentProgress returns a handler reporting payment schedule progress.
func PaymentProgress(svc *clientsvc.Service, codec money.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		p, err := svc.PaymentProgress(c.UserContext(), id)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to get progress", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Progress fetched", toProgressResponse(p, codec))
	}
}

// ClientHistory returns a handler listing the recorded changes of a client. History
// outlives a deleted client.
func ClientHistory(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		page, err := webcommon.PageFromQuery(c)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Invalid paging", err, fiber.StatusBadRequest)
		}
		changes, err := svc.History(c.UserContext(), id, page)
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to list client history", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Client history fetched", toChangeResponses(changes))
	}
}

// SetStatus returns a handler cascading a status change.
func SetStatus(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := webcommon.BindAndValidate[StatusRequest](c)
		if input == nil {
			return err
		}
		res, err := svc.SetStatus(c.UserContext(), id, input.ClientName, common.Status(input.Status))
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to update status", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Status updated", toSyncResponse(res))
	}
}

// SetVisibility returns a handler cascading a visibility change.
func SetVisibility(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		input, err := webcommon.BindAndValidate[VisibilityRequest](c)
		if input == nil {
			return err
		}
		var res *clientsvc.SyncResult
		if input.IsVisible == nil {
			res, err = svc.ToggleVisibility(c.UserContext(), id, input.ClientName)
		} else {
			res, err = svc.SetVisibility(c.UserContext(), id, input.ClientName, *input.IsVisible)
		}
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to update visibility", err)
		}
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Visibility updated", toSyncResponse(res))
	}
}

// DeleteClient returns a handler deleting a client. history=false keeps the history
// of the removed accounts.
func DeleteClient(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := webcommon.ParseUUIDParam(c, "id")
		if !ok {
			return err
		}
		name := c.Query("name")
		var res *clientsvc.DeleteResult
		if c.QueryBool("history", true) {
			res, err = svc.DeleteWithHistory(c.UserContext(), id, name)
		} else {
			res, err = svc.DeleteIconsOnly(c.UserContext(), id, name)
		}
		if err != nil {
			return webcommon.ProblemDetailsJSON(c, "Failed to delete client", err)
		}
		log.Infof("Client %s deleted by %s", id, middleware.Operator(c))
		return webcommon.SuccessResponseJSON(c, fiber.StatusOK, "Client deleted", toDeleteResponse(res))
	}
}
