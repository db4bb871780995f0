// Command webhookd receives and authenticates the notifications Pagopar
// posts to the commerce: payment results, subscription events and inventory
// synchronization batches.
//
// Credentials are read from PAGOPAR_PRIVATE_TOKEN and PAGOPAR_PUBLIC_TOKEN;
// server settings from the optional file named by --config or
// WEBHOOKD_CONFIG_FILE.
package main

import (
	"log"

	"github.com/arandu-labs/pagopar-go/internal/webhook"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := webhook.Run(); err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}
}
