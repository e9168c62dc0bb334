package app

import (
	"github.com/gorilla/mux"
	"github.com/rosterly/rosterly/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/current", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Resources
	r.HandleFunc("/api/resource", deps.ResourceHandler.GetResources).Methods("GET")
	r.HandleFunc("/api/resource", deps.ResourceHandler.CreateResource).Methods("POST")
	r.HandleFunc("/api/resource/{resourceId}", deps.ResourceHandler.GetResource).Methods("GET")
	r.HandleFunc("/api/resource/{resourceId}", deps.ResourceHandler.UpdateResource).Methods("PUT")
	r.HandleFunc("/api/resource/{resourceId}", deps.ResourceHandler.DeleteResource).Methods("DELETE")

	// Calendar events
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetEvents).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event/{eventUid}", deps.CalendarHandler.PatchEvent).Methods("PATCH")
	r.HandleFunc("/api/calendar/event/{eventUid}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")

	// Board rescheduling
	r.HandleFunc("/api/calendar/event/{eventUid}/move", deps.BoardHandler.MoveEvent).Methods("POST")

	// Stats
	r.HandleFunc("/api/stats/workload", deps.StatsHandler.GetWorkload).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/stats/heatmap", deps.StatsHandler.GetHeatmap).Queries("from", "{from}", "to", "{to}").Methods("GET")
}
