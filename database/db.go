package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single embedded store; keep the pool small
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS addresses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			address_line1 TEXT NOT NULL,
			address_line2 TEXT,
			address_line3 TEXT,
			state TEXT,
			district TEXT,
			pincode TEXT NOT NULL,
			country TEXT DEFAULT 'India',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS institutions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			institution_type TEXT NOT NULL CHECK (institution_type IN ('bank', 'post_office')),
			institution_name TEXT NOT NULL,
			branch_code TEXT,
			ifsc_code TEXT,
			address_id INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (address_id) REFERENCES addresses(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT,
			first_name TEXT NOT NULL,
			middle_name TEXT,
			last_name TEXT NOT NULL,
			date_of_birth TEXT,
			gender TEXT,
			occupation TEXT,
			kyc_number TEXT,
			pan_number TEXT,
			aadhaar_number TEXT,
			address_id INTEGER,
			linked_client_id INTEGER,
			linked_client_relationship TEXT CHECK (linked_client_relationship IN
				('spouse', 'parent', 'child', 'sibling', 'business_partner', 'guarantor', 'other')),
			status TEXT DEFAULT 'pending' CHECK (status IN
				('invite_now', 'pending', 'active', 'suspended', 'deleted')),
			deletion_status TEXT DEFAULT 'active' CHECK (deletion_status IN ('active', 'soft_deleted')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (address_id) REFERENCES addresses(id) ON DELETE SET NULL,
			FOREIGN KEY (linked_client_id) REFERENCES clients(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id INTEGER NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('email', 'phone')),
			contact_priority TEXT CHECK (contact_priority IN ('primary', 'secondary')),
			contact_details TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS shops (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			shop_name TEXT NOT NULL,
			shop_type TEXT,
			category TEXT,
			owner_id INTEGER NOT NULL,
			address_id INTEGER,
			deletion_status TEXT DEFAULT 'active' CHECK (deletion_status IN ('active', 'soft_deleted')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (owner_id) REFERENCES clients(id) ON DELETE CASCADE,
			FOREIGN KEY (address_id) REFERENCES addresses(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account_number TEXT NOT NULL UNIQUE,
			account_type TEXT NOT NULL CHECK (account_type IN
				('savings', 'current', 'fixed_deposit', 'recurring_deposit', 'loan')),
			account_ownership_type TEXT DEFAULT 'individual' CHECK (account_ownership_type IN
				('individual', 'joint', 'minor')),
			balance TEXT DEFAULT '0',
			interest_rate REAL,
			maturity_date TEXT,
			institution_id INTEGER NOT NULL,
			deletion_status TEXT DEFAULT 'active' CHECK (deletion_status IN ('active', 'soft_deleted')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (institution_id) REFERENCES institutions(id) ON DELETE RESTRICT
		)`,

		`CREATE TABLE IF NOT EXISTS account_holders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account_id INTEGER NOT NULL,
			client_id INTEGER NOT NULL,
			holder_type TEXT NOT NULL CHECK (holder_type IN ('primary', 'secondary', 'nominee')),
			share_percentage REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE,
			FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE,
			UNIQUE(account_id, client_id)
		)`,

		`CREATE TABLE IF NOT EXISTS shop_clients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			shop_id INTEGER NOT NULL,
			client_id INTEGER NOT NULL,
			relationship_type TEXT NOT NULL CHECK (relationship_type IN ('customer', 'supplier', 'partner')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (shop_id) REFERENCES shops(id) ON DELETE CASCADE,
			FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE,
			UNIQUE(shop_id, client_id)
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account_id INTEGER NOT NULL,
			transaction_type TEXT NOT NULL CHECK (transaction_type IN
				('deposit', 'withdrawal', 'transfer', 'interest', 'fee', 'penalty', 'maturity')),
			amount TEXT NOT NULL,
			balance_after TEXT,
			transaction_date TEXT,
			description TEXT,
			reference_number TEXT,
			status TEXT DEFAULT 'completed' CHECK (status IN ('completed', 'pending', 'failed', 'cancelled')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS audit_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			table_name TEXT NOT NULL,
			record_id INTEGER NOT NULL,
			operation TEXT NOT NULL CHECK (operation IN ('INSERT', 'UPDATE', 'DELETE', 'RESTORE')),
			old_values TEXT,
			new_values TEXT,
			user_id TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entity_type TEXT NOT NULL CHECK (entity_type IN ('client', 'account')),
			entity_id INTEGER NOT NULL,
			document_type TEXT,
			file_name TEXT NOT NULL,
			original_name TEXT NOT NULL,
			file_path TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			mime_type TEXT NOT NULL,
			is_verified INTEGER DEFAULT 0,
			verified_by TEXT,
			verified_at DATETIME,
			is_active INTEGER DEFAULT 1,
			uploaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS profile_pictures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entity_type TEXT NOT NULL CHECK (entity_type IN ('client', 'shop', 'account')),
			entity_id INTEGER NOT NULL,
			file_name TEXT NOT NULL,
			original_name TEXT NOT NULL,
			file_path TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			mime_type TEXT NOT NULL,
			is_active INTEGER DEFAULT 1,
			uploaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for performance
		`CREATE INDEX IF NOT EXISTS idx_clients_deletion_status ON clients(deletion_status)`,
		`CREATE INDEX IF NOT EXISTS idx_clients_linked_client ON clients(linked_client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_clients_status ON clients(status)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_client ON contacts(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_client_type ON contacts(client_id, type)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_deletion_status ON accounts(deletion_status)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_institution ON accounts(institution_id)`,
		`CREATE INDEX IF NOT EXISTS idx_account_holders_account ON account_holders(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_account_holders_client ON account_holders(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_shops_owner ON shops(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(transaction_date)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_record ON audit_logs(table_name, record_id)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_entity ON documents(entity_type, entity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_profile_pictures_entity ON profile_pictures(entity_type, entity_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return db.migrateColumns()
}

// migrateColumns applies additive column migrations to schemas created by
// earlier versions. ALTER TABLE ADD COLUMN fails with "duplicate column name"
// when the column already exists, which is treated as success.
func (db *DB) migrateColumns() error {
	alters := []string{
		`ALTER TABLE clients ADD COLUMN kyc_number TEXT`,
		`ALTER TABLE clients ADD COLUMN occupation TEXT`,
		`ALTER TABLE accounts ADD COLUMN maturity_date TEXT`,
		`ALTER TABLE accounts ADD COLUMN interest_rate REAL`,
		`ALTER TABLE transactions ADD COLUMN reference_number TEXT`,
	}

	for _, query := range alters {
		if _, err := db.Exec(query); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("column migration failed: %w", err)
		}
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
