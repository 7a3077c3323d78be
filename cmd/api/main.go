package main

import (
	"log"

	_ "payeezy_gateway/docs"
	"payeezy_gateway/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Payeezy Gateway API
// @version         1.0
// @description     Purchase, refund and void card transactions through Payeezy.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	if err := routes.Run(); err != nil {
		log.Fatalf("payeezy gateway: %v", err)
	}
}
