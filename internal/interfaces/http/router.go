// Package http conține handler-ele Fiber, middleware-ul de autentificare
// și înregistrarea rutelor.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cstanesvoda/facturitrendy/internal/application/auth"
	"github.com/cstanesvoda/facturitrendy/internal/application/billing"
	"github.com/cstanesvoda/facturitrendy/internal/application/orders"
	"github.com/cstanesvoda/facturitrendy/internal/application/usecase"
	"github.com/cstanesvoda/facturitrendy/internal/domain/repository"
)

// RouterDeps dependențele router-ului.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	OrdersUC   *orders.UseCase
	BulkCreate *billing.BulkCreateUseCase
	BulkUpload *billing.BulkUploadUseCase
	InvoiceOps *billing.InvoiceOpsUseCase
	UserUC     *usecase.UserUseCase
	MappingUC  *usecase.MappingUseCase
	Users      repository.UserRepository
	Directory  billing.PostalDirectory
	JWTSecret  string
}

// Router înregistrează rutele API-ului.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rute protejate: Bearer Token + utilizatorul curent cu credențialele
	// API desigilate (apelurile către Trendyol/SmartBill au nevoie de ele).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), LoadUser(deps.Users))

	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/warehouse", authHandler.Warehouse)

	// Director poștal (protejat)
	postalHandler := NewPostalHandler(deps.Directory)
	protected.Get("/postal/:code", postalHandler.Lookup)

	// Marketplace (protejat)
	orderHandler := NewOrderHandler(deps.OrdersUC, deps.InvoiceOps)
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:orderNumber/invoice", orderHandler.OrderInvoice)
	protected.Get("/packages", orderHandler.Packages)
	protected.Get("/packages/:packageId/label", orderHandler.ShippingLabel)
	protected.Get("/products", orderHandler.Products)

	// Facturare (protejat)
	billingHandler := NewBillingHandler(deps.BulkCreate, deps.BulkUpload, deps.InvoiceOps)
	protected.Post("/invoices", billingHandler.CreateInvoice)
	protected.Post("/invoices/bulk-create", billingHandler.BulkCreate)
	protected.Post("/invoices/bulk-upload", billingHandler.BulkUpload)
	protected.Post("/invoices/upload", billingHandler.UploadInvoiceFile)
	protected.Post("/invoices/relay", billingHandler.RelayInvoice)
	protected.Get("/invoices/mappings", billingHandler.Mappings)
	protected.Post("/packages/:packageId/invoice-link", billingHandler.SendInvoiceLink)

	// SmartBill (protejat)
	protected.Get("/smartbill/series", billingHandler.Series)
	protected.Get("/smartbill/next-number", billingHandler.NextNumber)
	protected.Get("/smartbill/invoices", billingHandler.ListInvoices)
	protected.Get("/smartbill/invoices/:series/:number/pdf", billingHandler.InvoicePDF)
	protected.Post("/smartbill/invoices/reverse", billingHandler.Reverse)

	// Administrare (protejat + rol admin)
	adminHandler := NewAdminHandler(deps.UserUC, deps.MappingUC)
	admin := protected.Group("/admin", RequireAdmin())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/mappings", adminHandler.SearchMappings)
	admin.Post("/users/:userId/mappings", adminHandler.CreateMapping)
	admin.Put("/users/:userId/mappings/:id", adminHandler.UpdateMapping)
	admin.Delete("/users/:userId/mappings/:id", adminHandler.DeleteMapping)
}
