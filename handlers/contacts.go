package handlers

import (
	"backoffice/app"
	"backoffice/models"

	"github.com/gofiber/fiber/v2"
)

func GetContactsByClient(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID, err := parseID(c, "clientId")
		if err != nil {
			return badRequest(c, err.Error())
		}

		contacts, err := a.Contacts.GetByClientID(clientID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contacts", err)
		}

		return successWithCount(c, contacts, len(contacts))
	}
}

func CreateContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateContactRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if req.ClientID <= 0 {
			return badRequest(c, "client_id is required")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		contact, err := a.Contacts.Create(&models.Contact{
			ClientID:        req.ClientID,
			Type:            models.ContactType(req.Type),
			ContactPriority: req.ContactPriority,
			ContactDetails:  req.ContactDetails,
		})
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create contact", err)
		}

		return created(c, contact, "Contact created successfully")
	}
}

// CreateContacts inserts a batch of contacts for one client. The batch is
// best-effort: contacts created before a failure stay in place.
func CreateContacts(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			ClientID int64                         `json:"client_id"`
			Contacts []models.CreateContactRequest `json:"contacts"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if req.ClientID <= 0 {
			return badRequest(c, "client_id is required")
		}
		if len(req.Contacts) == 0 {
			return badRequest(c, "contacts are required")
		}
		for i := range req.Contacts {
			if err := a.Validator.Validate(&req.Contacts[i]); err != nil {
				return validationError(c, err)
			}
		}

		contacts, err := a.Contacts.CreateMultiple(req.ClientID, req.Contacts)
		if err != nil {
			a.Logger.Warn("bulk contact creation partially failed",
				"client_id", req.ClientID, "created", len(contacts), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Some contacts could not be created",
				"data":    contacts,
			})
		}

		return created(c, contacts, "Contacts created successfully")
	}
}

func UpdateContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		var req models.UpdateContactRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		existing, err := a.Contacts.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contact", err)
		}
		if existing == nil {
			return notFound(c, "Contact not found")
		}

		contact, err := a.Contacts.Update(id, &req)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update contact", err)
		}

		return successWithMessage(c, contact, "Contact updated successfully")
	}
}

func DeleteContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		existing, err := a.Contacts.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contact", err)
		}
		if existing == nil {
			return notFound(c, "Contact not found")
		}

		if err := a.Contacts.Delete(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete contact", err)
		}

		return successWithMessage(c, nil, "Contact deleted successfully")
	}
}

// SetPrimaryContact promotes a contact to primary for its (client, type) pair
// in one atomic step.
func SetPrimaryContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		contact, err := a.Contacts.SetPrimary(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to set primary contact", err)
		}
		if contact == nil {
			return notFound(c, "Contact not found")
		}

		return successWithMessage(c, contact, "Primary contact updated")
	}
}
