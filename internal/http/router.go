package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomward0606/StockSystem/internal/handlers"
	"github.com/tomward0606/StockSystem/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	orderHandler *handlers.OrderHandler,
	dispatchHandler *handlers.DispatchHandler,
	catalogueHandler *handlers.CatalogueHandler,
	hiddenPartHandler *handlers.HiddenPartHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Protected API routes - Orders
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.Use(authMiddleware.Authenticate)
	ordersAPI.HandleFunc("", orderHandler.CreateOrder).Methods("POST")
	ordersAPI.HandleFunc("/summary", orderHandler.Summary).Methods("GET")

	// Protected API routes - Per-engineer views and the dispatch transaction
	engineersAPI := r.PathPrefix("/api/engineers").Subrouter()
	engineersAPI.Use(authMiddleware.Authenticate)
	engineersAPI.HandleFunc("/{email}/outstanding", orderHandler.Outstanding).Methods("GET")
	engineersAPI.HandleFunc("/{email}/back-orders", orderHandler.BackOrders).Methods("GET")
	engineersAPI.HandleFunc("/{email}/dispatches", dispatchHandler.ListForEngineer).Methods("GET")
	engineersAPI.HandleFunc("/{email}/dispatch", dispatchHandler.Apply).Methods("POST")

	// Protected API routes - Order lines
	linesAPI := r.PathPrefix("/api/order-lines").Subrouter()
	linesAPI.Use(authMiddleware.Authenticate)
	linesAPI.HandleFunc("/{id}", orderHandler.RemoveLine).Methods("DELETE")

	// Protected API routes - Dispatch history
	dispatchesAPI := r.PathPrefix("/api/dispatches").Subrouter()
	dispatchesAPI.Use(authMiddleware.Authenticate)
	dispatchesAPI.HandleFunc("", dispatchHandler.List).Methods("GET")
	dispatchesAPI.HandleFunc("/{id}", dispatchHandler.Get).Methods("GET")
	dispatchesAPI.HandleFunc("/{id}/pdf", dispatchHandler.PDF).Methods("GET")

	// Protected API routes - Catalogue
	catalogueAPI := r.PathPrefix("/api/catalogue").Subrouter()
	catalogueAPI.Use(authMiddleware.Authenticate)
	catalogueAPI.HandleFunc("", catalogueHandler.List).Methods("GET")
	catalogueAPI.HandleFunc("", catalogueHandler.Add).Methods("POST")
	catalogueAPI.HandleFunc("/export", catalogueHandler.Export).Methods("GET")
	catalogueAPI.HandleFunc("/{code}", catalogueHandler.Get).Methods("GET")
	catalogueAPI.HandleFunc("/{code}", catalogueHandler.Update).Methods("PUT")
	catalogueAPI.HandleFunc("/{code}", catalogueHandler.Delete).Methods("DELETE")

	// Protected API routes - Hidden parts
	hiddenAPI := r.PathPrefix("/api/hidden-parts").Subrouter()
	hiddenAPI.Use(authMiddleware.Authenticate)
	hiddenAPI.HandleFunc("", hiddenPartHandler.List).Methods("GET")
	hiddenAPI.HandleFunc("", hiddenPartHandler.Hide).Methods("POST")
	hiddenAPI.HandleFunc("/{partNumber}", hiddenPartHandler.Unhide).Methods("DELETE")

	return r
}
