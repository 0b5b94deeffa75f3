package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Expects a local MySQL
// with a database named 'playvault_test'; tests skip when it is unavailable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/playvault_test?parseTime=true&clientFoundRows=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"Orders", "Fulfillers", "Products", "PaymentMethods"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id CHAR(36) NOT NULL PRIMARY KEY,
		orderNumber BIGINT UNSIGNED NOT NULL AUTO_INCREMENT UNIQUE,
		customerId VARCHAR(64) NOT NULL,
		customerName VARCHAR(100) NOT NULL,
		customerPhone VARCHAR(30) NOT NULL,
		productId INT NOT NULL,
		productName VARCHAR(255) NOT NULL,
		productPrice DECIMAL(12,2) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		totalPrice DECIMAL(12,2) NOT NULL,
		fulfillmentStatus VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		paymentStatus VARCHAR(20) NOT NULL DEFAULT 'WAITING',
		paymentMethod VARCHAR(30),
		paymentExpiry DATETIME NOT NULL,
		assignedFulfillerId INT UNSIGNED,
		accountEmail VARCHAR(150),
		accountPassword VARCHAR(150),
		deliveryMethod VARCHAR(30),
		deliveredAt DATETIME,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_customer (customerId),
		INDEX idx_status (fulfillmentStatus),
		INDEX idx_assigned (assignedFulfillerId)
	)`

	createFulfillersTable := `
	CREATE TABLE IF NOT EXISTS Fulfillers (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(30) NOT NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		sortOrder INT NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_active (active)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS Products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(12,2) NOT NULL,
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createPaymentMethodsTable := `
	CREATE TABLE IF NOT EXISTS PaymentMethods (
		method VARCHAR(30) NOT NULL PRIMARY KEY,
		enabled TINYINT(1) NOT NULL DEFAULT 1
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Orders", createOrdersTable},
		{"Fulfillers", createFulfillersTable},
		{"Products", createProductsTable},
		{"PaymentMethods", createPaymentMethodsTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
