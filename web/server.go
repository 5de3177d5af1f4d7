package web

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bdutucu/Optical-Store-Database/ledger"
	"github.com/bdutucu/Optical-Store-Database/web/handlers"
	"github.com/bdutucu/Optical-Store-Database/web/middleware"
)

// Server represents the web server
type Server struct {
	app *fiber.App
}

// NewServer creates a new Fiber server
func NewServer() *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: handleError,
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))
	app.Use(middleware.SQLDebugMiddleware())

	setupRoutes(app)

	return &Server{app: app}
}

// Start starts the server
func (s *Server) Start(port string) error {
	log.Printf("Server starting on http://localhost:%s", port)
	return s.app.Listen(":" + port)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app, used by tests
func (s *Server) App() *fiber.App {
	return s.app
}

// handleError maps ledger error kinds to HTTP statuses. Callers get a
// human-readable reason plus the kind, never driver internals.
func handleError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
			"kind":  "REQUEST_FAILED",
		})
	}

	code := fiber.StatusInternalServerError
	kind := "INTERNAL"

	switch {
	case errors.Is(err, ledger.ErrInvalidCustomer):
		code, kind = fiber.StatusNotFound, "INVALID_CUSTOMER"
	case errors.Is(err, ledger.ErrInvalidStaff):
		code, kind = fiber.StatusNotFound, "INVALID_STAFF"
	case errors.Is(err, ledger.ErrInvalidTransaction):
		code, kind = fiber.StatusNotFound, "INVALID_TRANSACTION"
	case errors.Is(err, ledger.ErrInvalidProduct):
		code, kind = fiber.StatusNotFound, "INVALID_PRODUCT"
	case errors.Is(err, ledger.ErrInvalidPrescription):
		code, kind = fiber.StatusNotFound, "INVALID_PRESCRIPTION"
	case errors.Is(err, ledger.ErrInvalidQuantity):
		code, kind = fiber.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, ledger.ErrInvalidAmount):
		code, kind = fiber.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, ledger.ErrInvalidCost):
		code, kind = fiber.StatusBadRequest, "INVALID_COST"
	case errors.Is(err, ledger.ErrInvalidPaymentType):
		code, kind = fiber.StatusBadRequest, "INVALID_PAYMENT_TYPE"
	case errors.Is(err, ledger.ErrInvalidStatus):
		code, kind = fiber.StatusBadRequest, "INVALID_STATUS"
	case errors.Is(err, ledger.ErrOverpayment):
		code, kind = fiber.StatusUnprocessableEntity, "OVERPAYMENT_REJECTED"
	case errors.Is(err, ledger.ErrInsufficientStock):
		code, kind = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, ledger.ErrConcurrentModification):
		code, kind = fiber.StatusConflict, "CONCURRENT_MODIFICATION"
	case errors.Is(err, ledger.ErrStoreUnavailable):
		code, kind = fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE"
	}

	log.Printf("ERROR [%s %s]: %v", c.Method(), c.Path(), err)

	message := err.Error()
	if code == fiber.StatusInternalServerError || kind == "STORE_UNAVAILABLE" {
		// Keep infrastructure details out of responses
		message = "the operation could not be completed"
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"kind":  kind,
	})
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App) {
	app.Get("/health", handlers.Health)

	// Debug endpoint for SQL logs
	app.Get("/api/debug/sql", handlers.GetSQLLogs)
	app.Delete("/api/debug/sql", handlers.ClearSQLLogs)

	// Sales
	sales := app.Group("/sales")
	sales.Post("/", handlers.SaleCreate)
	sales.Post("/:id/items", handlers.SaleAddItem)

	// Repairs
	repairs := app.Group("/repairs")
	repairs.Post("/", handlers.RepairCreate)
	repairs.Patch("/:id/status", handlers.RepairUpdateStatus)

	// Transactions and payments
	transactions := app.Group("/transactions")
	transactions.Get("/", handlers.TransactionList)
	transactions.Get("/:id", handlers.TransactionView)
	transactions.Delete("/:id", handlers.TransactionDelete)
	transactions.Get("/:id/payments", handlers.PaymentList)
	transactions.Post("/:id/payments", handlers.PaymentCreate)

	app.Get("/payments", handlers.PaymentIndex)

	// Customer directory
	customers := app.Group("/customers")
	customers.Get("/", handlers.CustomerList)
	customers.Post("/", handlers.CustomerCreate)
	customers.Get("/:id", handlers.CustomerView)
	customers.Put("/:id", handlers.CustomerUpdate)
	customers.Delete("/:id", handlers.CustomerDelete)

	// Staff directory
	staff := app.Group("/staff")
	staff.Get("/", handlers.StaffList)
	staff.Post("/", handlers.StaffCreate)
	staff.Get("/:id", handlers.StaffView)

	// Product catalog
	products := app.Group("/products")
	products.Get("/", handlers.ProductList)
	products.Post("/", handlers.ProductCreate)
	products.Get("/:id", handlers.ProductView)
	products.Put("/:id", handlers.ProductUpdate)
	products.Delete("/:id", handlers.ProductDelete)

	// Materials
	app.Get("/materials", handlers.MaterialList)
	app.Post("/materials", handlers.MaterialCreate)

	// Prescriptions
	prescriptions := app.Group("/prescriptions")
	prescriptions.Get("/", handlers.PrescriptionList)
	prescriptions.Post("/", handlers.PrescriptionCreate)
	prescriptions.Get("/:id", handlers.PrescriptionView)

	// Reports
	reports := app.Group("/reports")
	reports.Get("/outstanding", handlers.OutstandingReport)
	reports.Get("/revenue", handlers.RevenueReport)
}
