//go:build ignore

// Development helper: wipes all ledger data and resets sequences so a test
// database can be reseeded from scratch. Run with: go run scripts/reset_db.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Stock Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL LEDGER DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all dispatch notes and dispatch lines")
	fmt.Println("  - Delete all parts orders and order lines")
	fmt.Println("  - Delete all hidden parts")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "stock_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	statements := []string{
		"DELETE FROM dispatch_lines",
		"DELETE FROM dispatch_notes",
		"DELETE FROM parts_order_lines",
		"DELETE FROM parts_orders",
		"DELETE FROM hidden_parts",
		"ALTER SEQUENCE dispatch_lines_id_seq RESTART WITH 1",
		"ALTER SEQUENCE dispatch_notes_id_seq RESTART WITH 1",
		"ALTER SEQUENCE parts_order_lines_id_seq RESTART WITH 1",
		"ALTER SEQUENCE parts_orders_id_seq RESTART WITH 1",
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Printf("Failed: %s: %v", stmt, err)
		} else {
			fmt.Printf("OK: %s\n", stmt)
		}
	}

	fmt.Println()
	fmt.Println("Reset complete.")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
