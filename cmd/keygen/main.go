package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/clinicshift/clinicshift-api/pkg/auth"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <integration-name>")
		os.Exit(1)
	}

	name := os.Args[1]
	if os.Getenv("API_MASTER_SECRET") == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in .env")
		os.Exit(1)
	}

	key := auth.GenerateHMACKey(name)
	fmt.Printf("Generated integration key for %s:\n%s\n", name, key)
}
