package handlers

import (
	"backoffice/app"
	"backoffice/database"
	"backoffice/models"
	"errors"

	"github.com/gofiber/fiber/v2"
)

func GetShops(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := models.ShopFilters{
			Category:       c.Query("category"),
			Search:         c.Query("search"),
			IncludeDeleted: c.QueryBool("includeDeleted"),
		}
		if ownerID := c.QueryInt("ownerId", 0); ownerID > 0 {
			filters.OwnerID = int64(ownerID)
		}

		shops, err := a.Shops.GetAll(filters)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch shops", err)
		}

		return successWithCount(c, shops, len(shops))
	}
}

func GetShop(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		shop, err := a.Shops.GetByID(id, c.QueryBool("includeDeleted"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch shop", err)
		}
		if shop == nil {
			return notFound(c, "Shop not found")
		}

		return success(c, shop)
	}
}

func CreateShop(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateShopRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		owner, err := a.Clients.GetByID(req.OwnerID, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch owner", err)
		}
		if owner == nil {
			return badRequest(c, "Owner client not found")
		}

		shop := &models.Shop{
			ShopName:  req.ShopName,
			ShopType:  req.ShopType,
			Category:  req.Category,
			OwnerID:   req.OwnerID,
			AddressID: req.AddressID,
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
			shop.AddressID = &address.ID
		}

		createdShop, err := a.Shops.Create(shop)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create shop", err)
		}

		return created(c, createdShop, "Shop created successfully")
	}
}

func UpdateShop(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		var req models.UpdateShopRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		existing, err := a.Shops.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch shop", err)
		}
		if existing == nil {
			return notFound(c, "Shop not found")
		}

		shop, err := a.Shops.Update(id, &req)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update shop", err)
		}

		return successWithMessage(c, shop, "Shop updated successfully")
	}
}

func DeleteShop(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		shop, err := a.Shops.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch shop", err)
		}
		if shop == nil {
			return notFound(c, "Shop not found")
		}

		if err := a.Shops.SoftDelete(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete shop", err)
		}

		return successWithMessage(c, nil, "Shop deleted successfully")
	}
}

func HardDeleteShop(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		shop, err := a.Shops.GetByID(id, true)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch shop", err)
		}
		if shop == nil {
			return notFound(c, "Shop not found")
		}

		if err := a.Shops.HardDelete(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete shop", err)
		}

		return successWithMessage(c, nil, "Shop permanently deleted")
	}
}

func RestoreShop(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		shop, err := a.Shops.GetByID(id, true)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch shop", err)
		}
		if shop == nil {
			return notFound(c, "Shop not found")
		}

		if err := a.Shops.Restore(id); err != nil {
			return serverErrorWithDetails(c, "Failed to restore shop", err)
		}

		restored, err := a.Shops.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch restored shop", err)
		}

		return successWithMessage(c, restored, "Shop restored successfully")
	}
}

// AssociateShopClient links a client to a shop; duplicate associations are
// rejected with a 400 before any write.
func AssociateShopClient(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.AssociateShopClientRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		association, err := a.ShopClients.Associate(req.ShopID, req.ClientID, req.RelationshipType)
		if err != nil {
			if errors.Is(err, database.ErrDuplicateAssociation) {
				return badRequest(c, "Client is already associated with this shop")
			}
			return serverErrorWithDetails(c, "Failed to associate client with shop", err)
		}

		return created(c, association, "Client associated with shop")
	}
}

func DissociateShopClient(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := parseID(c, "shopId")
		if err != nil {
			return badRequest(c, err.Error())
		}
		clientID, err := parseID(c, "clientId")
		if err != nil {
			return badRequest(c, err.Error())
		}

		associated, err := a.ShopClients.IsClientAssociatedWithShop(shopID, clientID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to check association", err)
		}
		if !associated {
			return notFound(c, "Association not found")
		}

		if err := a.ShopClients.Dissociate(shopID, clientID); err != nil {
			return serverErrorWithDetails(c, "Failed to remove association", err)
		}

		return successWithMessage(c, nil, "Association removed successfully")
	}
}

func GetShopClients(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := parseID(c, "shopId")
		if err != nil {
			return badRequest(c, err.Error())
		}

		clients, err := a.ShopClients.GetClientsByShopID(shopID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch shop clients", err)
		}

		return successWithCount(c, clients, len(clients))
	}
}

func GetClientShops(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID, err := parseID(c, "clientId")
		if err != nil {
			return badRequest(c, err.Error())
		}

		shops, err := a.ShopClients.GetShopsByClientID(clientID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch client shops", err)
		}

		return successWithCount(c, shops, len(shops))
	}
}
