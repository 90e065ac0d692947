package main

import (
	"context"
	"time"

	"github.com/aurora-api/aurora/internal/app"
)

// @title           Aurora API
// @version         1.0
// @description     Aurora provides email OTP authentication APIs.
// @contact.name    Contact Support
// @contact.email   support@aurora-api.dev
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
