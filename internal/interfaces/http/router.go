package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/electrostock-api/internal/application/auth"
	"github.com/jhoicas/electrostock-api/internal/application/proposal"
	"github.com/jhoicas/electrostock-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC        *usecase.StockUseCase
	InstallationUC *usecase.InstallationUseCase
	ProposalUC     *proposal.UseCase
	SuggestionUC   *proposal.SuggestionUseCase
	ProposalPDF    *proposal.PDFUseCase
	AuthUC         *auth.UseCase
	JWTSecret      string
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

	// Installations (protegido)
	installations := protected.Group("/installations")
	installationHandler := NewInstallationHandler(deps.InstallationUC)
	installations.Post("/", installationHandler.Create)
	installations.Get("/", installationHandler.List)
	installations.Get("/:id", installationHandler.GetByID)
	installations.Put("/:id", installationHandler.Update)
	installations.Delete("/:id", installationHandler.Delete)

	// Stock items (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Post("/", stockHandler.Create)
	stock.Get("/", stockHandler.List)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Put("/:id", stockHandler.Update)
	stock.Delete("/:id", stockHandler.Delete)

	// Sugerencias y propuestas de pedido (protegido)
	proposalHandler := NewProposalHandler(deps.ProposalUC, deps.SuggestionUC, deps.ProposalPDF)
	protected.Get("/suggestions", proposalHandler.Suggestions)

	proposals := protected.Group("/proposals")
	proposals.Get("/", proposalHandler.List)
	proposals.Post("/", proposalHandler.Create)
	proposals.Get("/:id", proposalHandler.GetByID)
	proposals.Patch("/:id", proposalHandler.Update)
	proposals.Get("/:id/pdf", proposalHandler.PDF)
}
