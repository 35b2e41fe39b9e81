package main

import (
	"os"

	"sacco-admin/internal/commands"

	_ "sacco-admin/docs" // Swagger docs
)

// @title SACCO Admin API
// @version 1.0
// @description Back-office API for a savings and credit cooperative: members, savings accounts, loans, shares, dividends and public content.

// @contact.name API Support
// @contact.email support@sacco.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
