package app

import (
	"backoffice/config"
	"backoffice/database"
	"backoffice/validator"
	"log/slog"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Clients         *database.ClientRepository
	Contacts        *database.ContactRepository
	Addresses       *database.AddressRepository
	Institutions    *database.InstitutionRepository
	Accounts        *database.AccountRepository
	AccountHolders  *database.AccountHolderRepository
	Shops           *database.ShopRepository
	ShopClients     *database.ShopClientRepository
	Transactions    *database.TransactionRepository
	AuditLogs       *database.AuditLogRepository
	Documents       *database.DocumentRepository
	ProfilePictures *database.ProfilePictureRepository
	Validator       *validator.Validator
	Logger          *slog.Logger
	Config          *config.Config
}

// New creates a new App instance with all repositories sharing the one
// database handle.
func New(db *database.DB, cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		Clients:         database.NewClientRepository(db),
		Contacts:        database.NewContactRepository(db),
		Addresses:       database.NewAddressRepository(db),
		Institutions:    database.NewInstitutionRepository(db),
		Accounts:        database.NewAccountRepository(db),
		AccountHolders:  database.NewAccountHolderRepository(db),
		Shops:           database.NewShopRepository(db),
		ShopClients:     database.NewShopClientRepository(db),
		Transactions:    database.NewTransactionRepository(db),
		AuditLogs:       database.NewAuditLogRepository(db),
		Documents:       database.NewDocumentRepository(db),
		ProfilePictures: database.NewProfilePictureRepository(db),
		Validator:       validator.New(),
		Logger:          logger,
		Config:          cfg,
	}
}
