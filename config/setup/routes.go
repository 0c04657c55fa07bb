package setup

import (
	"backoffice/app"
	"backoffice/handlers"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := fiberApp.Group("/api")

	clients := api.Group("/clients")
	clients.Get("/", handlers.GetClients(application))
	clients.Post("/", handlers.CreateClient(application))
	clients.Get("/:id", handlers.GetClient(application))
	clients.Put("/:id", handlers.UpdateClient(application))
	clients.Delete("/:id", handlers.DeleteClient(application))
	clients.Delete("/:id/hard", handlers.HardDeleteClient(application))
	clients.Post("/:id/restore", handlers.RestoreClient(application))
	clients.Get("/:id/accounts", handlers.GetClientAccounts(application))

	contacts := api.Group("/contacts")
	contacts.Get("/client/:clientId", handlers.GetContactsByClient(application))
	contacts.Post("/", handlers.CreateContact(application))
	contacts.Post("/bulk", handlers.CreateContacts(application))
	contacts.Put("/:id", handlers.UpdateContact(application))
	contacts.Delete("/:id", handlers.DeleteContact(application))
	contacts.Post("/:id/primary", handlers.SetPrimaryContact(application))

	addresses := api.Group("/addresses")
	addresses.Get("/", handlers.GetAddresses(application))
	addresses.Post("/", handlers.CreateAddress(application))
	addresses.Get("/:id", handlers.GetAddress(application))
	addresses.Put("/:id", handlers.UpdateAddress(application))
	addresses.Delete("/:id", handlers.DeleteAddress(application))

	institutions := api.Group("/institutions")
	institutions.Get("/", handlers.GetInstitutions(application))
	institutions.Post("/", handlers.CreateInstitution(application))
	institutions.Get("/:id", handlers.GetInstitution(application))
	institutions.Put("/:id", handlers.UpdateInstitution(application))
	institutions.Delete("/:id", handlers.DeleteInstitution(application))

	accounts := api.Group("/accounts")
	accounts.Get("/", handlers.GetAccounts(application))
	accounts.Post("/", handlers.CreateAccount(application))
	accounts.Get("/number/:accountNumber", handlers.GetAccountByNumber(application))
	accounts.Get("/:id", handlers.GetAccount(application))
	accounts.Put("/:id", handlers.UpdateAccount(application))
	accounts.Delete("/:id", handlers.DeleteAccount(application))
	accounts.Delete("/:id/hard", handlers.HardDeleteAccount(application))
	accounts.Post("/:id/restore", handlers.RestoreAccount(application))
	accounts.Get("/:id/holders", handlers.GetAccountHolders(application))
	accounts.Post("/:id/holders", handlers.AddAccountHolder(application))
	accounts.Delete("/:id/holders/:clientId", handlers.RemoveAccountHolder(application))
	accounts.Get("/:id/balance", handlers.GetAccountBalance(application))
	accounts.Get("/:id/transactions", handlers.GetAccountTransactions(application))
	accounts.Get("/:id/summary", handlers.GetAccountSummary(application))

	shops := api.Group("/shops")
	shops.Get("/", handlers.GetShops(application))
	shops.Post("/", handlers.CreateShop(application))
	shops.Get("/:id", handlers.GetShop(application))
	shops.Put("/:id", handlers.UpdateShop(application))
	shops.Delete("/:id", handlers.DeleteShop(application))
	shops.Delete("/:id/hard", handlers.HardDeleteShop(application))
	shops.Post("/:id/restore", handlers.RestoreShop(application))

	shopClients := api.Group("/shop-clients")
	shopClients.Post("/", handlers.AssociateShopClient(application))
	shopClients.Get("/shop/:shopId", handlers.GetShopClients(application))
	shopClients.Get("/client/:clientId", handlers.GetClientShops(application))
	shopClients.Delete("/shop/:shopId/client/:clientId", handlers.DissociateShopClient(application))

	transactions := api.Group("/transactions")
	transactions.Get("/", handlers.GetTransactions(application))
	transactions.Post("/", handlers.CreateTransaction(application))
	transactions.Get("/:id", handlers.GetTransaction(application))
	transactions.Put("/:id", handlers.UpdateTransaction(application))
	transactions.Delete("/:id", handlers.DeleteTransaction(application))

	api.Get("/audit-logs", handlers.GetAuditLogs(application))

	documents := api.Group("/documents")
	documents.Post("/upload/:entityType/:entityId", handlers.UploadDocument(application))
	documents.Get("/:id/download", handlers.DownloadDocument(application))
	documents.Post("/:id/verify", handlers.VerifyDocument(application))
	documents.Delete("/:id", handlers.DeleteDocument(application))
	documents.Get("/:entityType/:entityId", handlers.GetDocuments(application))

	pictures := api.Group("/profile-pictures")
	pictures.Post("/upload/:entityType/:entityId", handlers.UploadProfilePicture(application))
	pictures.Delete("/:id", handlers.DeleteProfilePicture(application))
	pictures.Get("/:entityType/:entityId", handlers.GetProfilePicture(application))
}
