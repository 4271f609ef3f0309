package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bidm-api/internal/application/auth"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	BidUC        *usecase.BidUseCase
	ResponseUC   *usecase.ResponseUseCase
	AllocationUC *usecase.AllocationUseCase
	ClosureUC    *usecase.ClosureUseCase
	InvoiceUC    *usecase.InvoiceUseCase
	AccessUC     *usecase.AccessUseCase
	ProposalUC   *usecase.ProposalUseCase
	DirectoryUC  *usecase.DirectoryUseCase
	DashboardUC  *usecase.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Bids: agregado, estados y todo lo que cuelga de un bid
	bids := protected.Group("/bids")
	bidHandler := NewBidHandler(deps.BidUC)
	bids.Post("/", bidHandler.Create)
	bids.Get("/", bidHandler.List)
	bids.Get("/:id", bidHandler.GetByID)
	bids.Put("/:id", bidHandler.Update)
	bids.Put("/:id/status", bidHandler.ChangeStatus)
	bids.Put("/number/:bidNumber/status", bidHandler.ChangeStatusByNumber)

	responseHandler := NewResponseHandler(deps.ResponseUC)
	bids.Get("/:id/partner-responses", responseHandler.Get)
	bids.Put("/:id/partner-responses", responseHandler.Save)

	allocationHandler := NewAllocationHandler(deps.AllocationUC)
	bids.Get("/:id/field-allocations", allocationHandler.GetGrid)
	bids.Put("/:id/field-allocations", allocationHandler.Set)

	closureHandler := NewClosureHandler(deps.ClosureUC)
	bids.Get("/:id/closure", closureHandler.Get)
	bids.Put("/:id/closure", closureHandler.Save)
	bids.Get("/:id/closure/summary", closureHandler.Summary)

	// Facturación (las pantallas operan por número de bid)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoice := protected.Group("/invoice")
	invoice.Get("/:bidNumber", invoiceHandler.GetByNumber)
	invoice.Post("/:bidNumber/save", invoiceHandler.Save)
	invoice.Post("/:bidId/submit", invoiceHandler.Submit)

	// Control de acceso entre equipos
	accessHandler := NewAccessHandler(deps.AccessUC)
	bids.Get("/:id/access", accessHandler.Check)
	bids.Get("/:id/access-requests", accessHandler.ListByBid)
	bids.Get("/:id/access-grants", accessHandler.ListGrants)
	accessRequests := protected.Group("/access-requests")
	accessRequests.Post("/", accessHandler.Request)
	accessRequests.Get("/pending", accessHandler.ListPending)
	accessRequests.Post("/:id/grant", accessHandler.Grant)
	accessRequests.Post("/:id/deny", accessHandler.Deny)
	protected.Post("/revoke-access", accessHandler.Revoke)

	// Propuestas comerciales
	proposalHandler := NewProposalHandler(deps.ProposalUC)
	bids.Post("/:id/proposals", proposalHandler.Create)
	bids.Get("/:id/proposals", proposalHandler.ListByBid)
	proposals := protected.Group("/proposals")
	proposals.Get("/:id", proposalHandler.GetByID)
	proposals.Delete("/:id", proposalHandler.Delete)

	// Catálogos
	directoryHandler := NewDirectoryHandler(deps.DirectoryUC)
	clients := protected.Group("/clients")
	clients.Post("/", directoryHandler.CreateClient)
	clients.Get("/", directoryHandler.ListClients)
	clients.Get("/:id", directoryHandler.GetClient)
	clients.Put("/:id", directoryHandler.UpdateClient)
	clients.Delete("/:id", directoryHandler.DeleteClient)

	salesContacts := protected.Group("/sales-contacts")
	salesContacts.Post("/", directoryHandler.CreateSalesContact)
	salesContacts.Get("/", directoryHandler.ListSalesContacts)
	salesContacts.Put("/:id", directoryHandler.UpdateSalesContact)
	salesContacts.Delete("/:id", directoryHandler.DeleteSalesContact)

	vendorManagers := protected.Group("/vendor-managers")
	vendorManagers.Post("/", directoryHandler.CreateVendorManager)
	vendorManagers.Get("/", directoryHandler.ListVendorManagers)
	vendorManagers.Put("/:id", directoryHandler.UpdateVendorManager)
	vendorManagers.Delete("/:id", directoryHandler.DeleteVendorManager)

	protected.Get("/countries", directoryHandler.ListCountries)

	partners := protected.Group("/partners")
	partners.Post("/", directoryHandler.CreatePartner)
	partners.Get("/", directoryHandler.ListPartners)
	partners.Get("/:id", directoryHandler.GetPartner)
	partners.Put("/:id", directoryHandler.UpdatePartner)
	partners.Delete("/:id", directoryHandler.DeletePartner)

	// Usuarios (solo admin; el super admin pasa por el bypass de rol)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Metrics)
}
