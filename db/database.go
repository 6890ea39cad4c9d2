package db

import (
	"database/sql"
	"fmt"
	"log"

	"EchoFM/config"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to the database.")
	return nil
}

// InitDB initializes the database schema, creating tables if they don't exist.
func InitDB() error {
	if err := createHistoryTable(); err != nil {
		return err
	}
	log.Println("Database initialization completed.")
	return nil
}

func createHistoryTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS recommendation_history (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		mode VARCHAR(20) NOT NULL,
		seed VARCHAR(512),
		mood VARCHAR(512),
		source VARCHAR(20) NOT NULL,
		fallback_reason VARCHAR(255),
		song_count INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_history_created_at (created_at)
	);
	`
	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create recommendation_history table: %w", err)
	}
	return nil
}
