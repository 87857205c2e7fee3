package orm

import (
	"context"
	"fmt"
	"strings"
	"warehouse-inventory/config"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the inventory store. Every store write runs in its own transaction.
type DB struct {
	dbGorm *gorm.DB
}

func InitDB(cfg *config.AppConfig) (*DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		log.Debug().
			Str("path", cfg.Database.Path).
			Msg("Opening sqlite database")

		return OpenSQLite(cfg.Database.Path)
	case "postgres":
		dsn := fmt.Sprintf(
			"host='%s' port='%d' user='%s' password='%s' dbname='%s' sslmode='%s'",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Database,
			cfg.Database.SSLMode,
		)

		dsnRedacted := dsn
		if cfg.Database.Password != "" {
			dsnRedacted = strings.ReplaceAll(dsn, cfg.Database.Password, "*****")
		}
		log.Debug().
			Msgf("Connecting to postgres using the following information: %s", dsnRedacted)

		return Open(postgres.Open(dsn))
	default:
		return nil, &BadInputError{
			Reason: fmt.Sprintf("unknown database driver %q", cfg.Database.Driver),
		}
	}
}

// OpenSQLite opens a sqlite database with foreign keys enforced. The pool is
// limited to one connection so in-memory databases are shared by all queries.
func OpenSQLite(path string) (*DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	db, err := Open(sqlite.Open(path + sep + "_foreign_keys=on"))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.dbGorm.DB()
	if err != nil {
		return nil, &DatabaseError{Inner: err}
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Open connects with the given dialector and migrates the schema.
func Open(dialector gorm.Dialector) (*DB, error) {
	dbGorm, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, &DatabaseError{Inner: fmt.Errorf("connect: %w", err)}
	}

	log.Debug().Msg("Successfully connected to the database")

	db := &DB{dbGorm: dbGorm}
	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema.
func (db *DB) Migrate() error {
	// Both sides of the many2many share the explicit join model
	if err := db.dbGorm.SetupJoinTable(&Product{}, "Tags", &ProductTag{}); err != nil {
		return &DatabaseError{Inner: fmt.Errorf("setup product tags: %w", err)}
	}
	if err := db.dbGorm.SetupJoinTable(&Tag{}, "Products", &ProductTag{}); err != nil {
		return &DatabaseError{Inner: fmt.Errorf("setup tag products: %w", err)}
	}

	err := db.dbGorm.AutoMigrate(
		&Warehouse{},
		&Address{},
		&Product{},
		&Tag{},
		&ProductTag{},
		&StockItem{},
	)
	if err != nil {
		return &DatabaseError{Inner: fmt.Errorf("migrate: %w", err)}
	}

	return nil
}

// Ping checks connectivity.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.dbGorm.DB()
	if err != nil {
		return &DatabaseError{Inner: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &DatabaseError{Inner: fmt.Errorf("ping: %w", err)}
	}

	return nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.dbGorm.DB()
	if err != nil {
		return &DatabaseError{Inner: err}
	}

	return sqlDB.Close()
}

func (db *DB) Warehouses() *WarehouseStore {
	return &WarehouseStore{store[Warehouse]{
		db:        db,
		entity:    "warehouse",
		keyColumn: "warehouse_key",
		preloads:  []string{"Address", "StockItems", "StockItems.Product"},
	}}
}

func (db *DB) Addresses() *AddressStore {
	return &AddressStore{store[Address]{
		db:       db,
		entity:   "address",
		preloads: []string{"Warehouse"},
	}}
}

func (db *DB) Products() *ProductStore {
	return &ProductStore{store[Product]{
		db:        db,
		entity:    "product",
		keyColumn: "product_key",
		preloads:  []string{"Tags", "StockItems", "StockItems.Warehouse"},
	}}
}

func (db *DB) Tags() *TagStore {
	return &TagStore{store[Tag]{
		db:        db,
		entity:    "tag",
		keyColumn: "tag_key",
		preloads:  []string{"Products"},
	}}
}

func (db *DB) StockItems() *StockItemStore {
	return &StockItemStore{store[StockItem]{
		db:        db,
		entity:    "stock item",
		keyColumn: "stock_item_key",
		preloads:  []string{"Warehouse", "Product"},
	}}
}
