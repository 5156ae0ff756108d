package main

import "collecto-backend/cmd"

// @title Collecto Backend
// @version 1.0
// @description REST API интернет-магазина коллекционных моделей

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
