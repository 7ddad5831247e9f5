// Command create-admin resets the shared admin password from the command
// line, for when the clinic forgets it.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ningrum77/puskesmas-bok/pkg/auth"
	"github.com/ningrum77/puskesmas-bok/pkg/config"
	"github.com/ningrum77/puskesmas-bok/pkg/database"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: create-admin <new-password>")
		os.Exit(1)
	}
	password := os.Args[1]
	if len(password) < 6 {
		fmt.Println("Error: password must be at least 6 characters")
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Printf("Error: could not load config: %v\n", err)
		os.Exit(1)
	}

	db := database.InitDB(cfg.Database.Path)
	if err := auth.EnsureAdminExists(db); err != nil {
		fmt.Printf("Error: could not create admin account: %v\n", err)
		os.Exit(1)
	}
	if err := auth.ChangePassword(db, password); err != nil {
		fmt.Printf("Error: could not set password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Admin password updated")
}
