package main

// @title           Dukkan ERP API
// @version         1.0
// @description     Management API for small retail stores: inventory, sales, installment plans and reporting.

// @contact.name   API Support
// @contact.email  support@dukkanlabs.com

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description JWT authentication header using the Bearer scheme. Example: "Bearer {token}"
