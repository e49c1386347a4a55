package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Views
	r.HandleFunc("/api/view/{view}", deps.ViewHandler.GetView).Methods("GET")
	r.HandleFunc("/api/notification", deps.ViewHandler.GetNotifications).Methods("GET")

	// Transactions
	r.HandleFunc("/api/transaction/export", deps.ViewHandler.ExportTransactions).Methods("GET")
	r.HandleFunc("/api/transaction", deps.ViewHandler.GetTransactions).Methods("GET")
	r.HandleFunc("/api/transaction", deps.ViewHandler.CreateTransaction).Methods("POST")
	r.HandleFunc("/api/transaction/{id}", deps.ViewHandler.UpdateTransaction).Methods("PUT")
	r.HandleFunc("/api/transaction/{id}", deps.ViewHandler.DeleteTransaction).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/category", deps.ViewHandler.CreateCategory).Methods("POST")
	r.HandleFunc("/api/category/{id}", deps.ViewHandler.UpdateCategory).Methods("PUT")
	r.HandleFunc("/api/category/{id}", deps.ViewHandler.DeleteCategory).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.ViewHandler.GetBudgets).Methods("GET")
	r.HandleFunc("/api/budget", deps.ViewHandler.CreateBudget).Methods("POST")
	r.HandleFunc("/api/budget/{id}", deps.ViewHandler.UpdateBudget).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.ViewHandler.DeleteBudget).Methods("DELETE")

	// Stats
	r.HandleFunc("/api/stats", deps.StatsHandler.GetStats).Methods("GET")

	// Metrics
	r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
}
