package handlers

import (
	"backoffice/app"
	"backoffice/models"

	"github.com/gofiber/fiber/v2"
)

// GetClients lists clients with optional filters. Soft-deleted rows are
// excluded unless includeDeleted=true.
func GetClients(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := models.ClientFilters{
			Status:         c.Query("status"),
			Search:         c.Query("search"),
			State:          c.Query("state"),
			District:       c.Query("district"),
			IncludeDeleted: c.QueryBool("includeDeleted"),
		}

		clients, err := a.Clients.GetAll(filters)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch clients", err)
		}

		return successWithCount(c, clients, len(clients))
	}
}

// GetClient retrieves one client with address, contacts and linked clients.
func GetClient(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		client, err := a.Clients.GetByID(id, c.QueryBool("includeDeleted"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch client", err)
		}
		if client == nil {
			return notFound(c, "Client not found")
		}

		return success(c, client)
	}
}

// CreateClient creates a client and, best-effort, its dependent address and
// contact rows. A contact insert failure is logged but does not roll back the
// created client.
func CreateClient(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateClientRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		client := &models.Client{
			Title:                    req.Title,
			FirstName:                req.FirstName,
			MiddleName:               req.MiddleName,
			LastName:                 req.LastName,
			DateOfBirth:              req.DateOfBirth,
			Gender:                   req.Gender,
			Occupation:               req.Occupation,
			KYCNumber:                req.KYCNumber,
			PANNumber:                req.PANNumber,
			AadhaarNumber:            req.AadhaarNumber,
			LinkedClientID:           req.LinkedClientID,
			LinkedClientRelationship: req.LinkedClientRelationship,
			Status:                   models.ClientStatus(req.Status),
		}

		if req.Address != nil {
			address, err := a.Addresses.Create(&models.Address{
				AddressLine1: req.Address.AddressLine1,
				AddressLine2: req.Address.AddressLine2,
				AddressLine3: req.Address.AddressLine3,
				State:        req.Address.State,
				District:     req.Address.District,
				Pincode:      req.Address.Pincode,
				Country:      req.Address.Country,
			})
			if err != nil {
				return serverErrorWithDetails(c, "Failed to create address", err)
			}
			client.AddressID = &address.ID
		}

		createdClient, err := a.Clients.Create(client)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create client", err)
		}

		if len(req.Contacts) > 0 {
			if _, err := a.Contacts.CreateMultiple(createdClient.ID, req.Contacts); err != nil {
				a.Logger.Warn("contact creation failed after client creation",
					"client_id", createdClient.ID, "error", err)
			}
			// Re-read so the response reflects whatever contacts landed
			createdClient, err = a.Clients.GetByID(createdClient.ID, false)
			if err != nil {
				return serverErrorWithDetails(c, "Failed to fetch created client", err)
			}
		}

		return created(c, createdClient, "Client created successfully")
	}
}

// UpdateClient applies a partial update; only allow-listed fields mutate.
func UpdateClient(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		var req models.UpdateClientRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		existing, err := a.Clients.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch client", err)
		}
		if existing == nil {
			return notFound(c, "Client not found")
		}

		client, err := a.Clients.Update(id, &req)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update client", err)
		}

		return successWithMessage(c, client, "Client updated successfully")
	}
}

// DeleteClient soft-deletes; recoverable via RestoreClient.
func DeleteClient(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		client, err := a.Clients.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch client", err)
		}
		if client == nil {
			return notFound(c, "Client not found")
		}

		if err := a.Clients.SoftDelete(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete client", err)
		}

		if err := a.AuditLogs.LogChange("clients", id, models.AuditOperationDelete, client, nil, auditUser(c)); err != nil {
			a.Logger.Warn("audit log write failed", "table", "clients", "record_id", id, "error", err)
		}

		return successWithMessage(c, nil, "Client deleted successfully")
	}
}

// HardDeleteClient permanently removes the client row.
func HardDeleteClient(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		client, err := a.Clients.GetByID(id, true)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch client", err)
		}
		if client == nil {
			return notFound(c, "Client not found")
		}

		if err := a.Clients.HardDelete(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete client", err)
		}

		if err := a.AuditLogs.LogChange("clients", id, models.AuditOperationDelete, client, nil, auditUser(c)); err != nil {
			a.Logger.Warn("audit log write failed", "table", "clients", "record_id", id, "error", err)
		}

		return successWithMessage(c, nil, "Client permanently deleted")
	}
}

// RestoreClient undoes a soft delete.
func RestoreClient(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		client, err := a.Clients.GetByID(id, true)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch client", err)
		}
		if client == nil {
			return notFound(c, "Client not found")
		}

		if err := a.Clients.Restore(id); err != nil {
			return serverErrorWithDetails(c, "Failed to restore client", err)
		}

		restored, err := a.Clients.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch restored client", err)
		}

		if err := a.AuditLogs.LogChange("clients", id, models.AuditOperationRestore, client, restored, auditUser(c)); err != nil {
			a.Logger.Warn("audit log write failed", "table", "clients", "record_id", id, "error", err)
		}

		return successWithMessage(c, restored, "Client restored successfully")
	}
}

// GetClientAccounts lists the active accounts a client holds, with institution
// details and the client's role.
func GetClientAccounts(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		accounts, err := a.AccountHolders.FindClientAccountsWithDetails(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch client accounts", err)
		}

		return successWithCount(c, accounts, len(accounts))
	}
}
