package main

import (
	"campus-events-api/core/logger"
	"campus-events-api/core/server"

	_ "campus-events-api/docs" // Swagger docs
)

// @title Campus Events API
// @version 1.0
// @description Backend API for the campus event management portal.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@campus-events.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
