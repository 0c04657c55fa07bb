package handlers

import (
	"backoffice/app"
	"backoffice/models"

	"github.com/gofiber/fiber/v2"
)

func GetAddresses(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		addresses, err := a.Addresses.GetAll()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch addresses", err)
		}
		return successWithCount(c, addresses, len(addresses))
	}
}

func GetAddress(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		address, err := a.Addresses.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch address", err)
		}
		if address == nil {
			return notFound(c, "Address not found")
		}
		return success(c, address)
	}
}

func CreateAddress(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateAddressRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		address, err := a.Addresses.Create(&models.Address{
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			AddressLine3: req.AddressLine3,
			State:        req.State,
			District:     req.District,
			Pincode:      req.Pincode,
			Country:      req.Country,
		})
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create address", err)
		}

		return created(c, address, "Address created successfully")
	}
}

func UpdateAddress(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		var req models.CreateAddressRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		existing, err := a.Addresses.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch address", err)
		}
		if existing == nil {
			return notFound(c, "Address not found")
		}

		address, err := a.Addresses.Update(id, &models.Address{
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			AddressLine3: req.AddressLine3,
			State:        req.State,
			District:     req.District,
			Pincode:      req.Pincode,
			Country:      req.Country,
		})
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update address", err)
		}

		return successWithMessage(c, address, "Address updated successfully")
	}
}

func DeleteAddress(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		existing, err := a.Addresses.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch address", err)
		}
		if existing == nil {
			return notFound(c, "Address not found")
		}

		if err := a.Addresses.Delete(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete address", err)
		}

		return successWithMessage(c, nil, "Address deleted successfully")
	}
}
