package handlers

import (
	"backoffice/app"
	"backoffice/models"

	"github.com/gofiber/fiber/v2"
)

func GetInstitutions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if institutionType := c.Query("type"); institutionType != "" {
			institutions, err := a.Institutions.GetByType(models.InstitutionType(institutionType))
			if err != nil {
				return serverErrorWithDetails(c, "Failed to fetch institutions", err)
			}
			return successWithCount(c, institutions, len(institutions))
		}

		institutions, err := a.Institutions.GetAll()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch institutions", err)
		}
		return successWithCount(c, institutions, len(institutions))
	}
}

func GetInstitution(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		institution, err := a.Institutions.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch institution", err)
		}
		if institution == nil {
			return notFound(c, "Institution not found")
		}
		return success(c, institution)
	}
}

func CreateInstitution(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateInstitutionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		institution, err := a.Institutions.Create(&models.Institution{
			InstitutionType: models.InstitutionType(req.InstitutionType),
			InstitutionName: req.InstitutionName,
			BranchCode:      req.BranchCode,
			IFSCCode:        req.IFSCCode,
			AddressID:       req.AddressID,
		})
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create institution", err)
		}

		return created(c, institution, "Institution created successfully")
	}
}

func UpdateInstitution(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		var req models.CreateInstitutionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		existing, err := a.Institutions.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch institution", err)
		}
		if existing == nil {
			return notFound(c, "Institution not found")
		}

		institution, err := a.Institutions.Update(id, &models.Institution{
			InstitutionType: models.InstitutionType(req.InstitutionType),
			InstitutionName: req.InstitutionName,
			BranchCode:      req.BranchCode,
			IFSCCode:        req.IFSCCode,
			AddressID:       req.AddressID,
		})
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update institution", err)
		}

		return successWithMessage(c, institution, "Institution updated successfully")
	}
}

func DeleteInstitution(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		existing, err := a.Institutions.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch institution", err)
		}
		if existing == nil {
			return notFound(c, "Institution not found")
		}

		if err := a.Institutions.Delete(id); err != nil {
			return badRequest(c, "Institution cannot be deleted while accounts reference it")
		}

		return successWithMessage(c, nil, "Institution deleted successfully")
	}
}
