package handler

import "github.com/gin-gonic/gin"

type Handlers struct {
	Trips    *TripHandler
	Calendar *CalendarHandler
	Dispatch *DispatchHandler
}

// Register mounts the API under /api/v1. Nil handlers are not mounted.
func Register(r gin.IRouter, h Handlers) {
	v1 := r.Group("/api/v1")

	if h.Trips != nil {
		trips := v1.Group("/trips")
		trips.POST("", h.Trips.HandleCreate)
		trips.GET("/:id", h.Trips.HandleGet)
		trips.POST("/:id/regenerate", h.Trips.HandleRegenerate)
		trips.GET("/:id/calendar.ics", h.Trips.HandleExportICS)
	}

	if h.Calendar != nil {
		sync := v1.Group("/trips/:id/calendar-sync")
		sync.POST("", h.Calendar.HandleSync)
		sync.DELETE("", h.Calendar.HandleRemove)
		sync.GET("", h.Calendar.HandleStatus)
	}

	if h.Dispatch != nil {
		v1.POST("/notifications/dispatch", h.Dispatch.HandleDispatch)
	}
}
