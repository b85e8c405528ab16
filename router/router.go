package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floorplan/controllers"
	"github.com/yeremiapane/restaurant-floorplan/hub"
	"github.com/yeremiapane/restaurant-floorplan/middlewares"
	"github.com/yeremiapane/restaurant-floorplan/services"
	"github.com/yeremiapane/restaurant-floorplan/storage"
	"github.com/yeremiapane/restaurant-floorplan/utils"
)

// Dependencies wires the stores, resolver and hub shared by every controller.
type Dependencies struct {
	Layouts      *services.LayoutStore
	Reservations *services.ReservationStore
	Resolver     *services.StatusResolver
	Finalizer    *services.Finalizer
	Registry     *services.CanvasRegistry
	Hub          *hub.FloorHub

	CORSOrigin  string
	RateLimiter *middlewares.RateLimiter
}

// NewDependencies builds the service graph on top of one KV backend.
func NewDependencies(kv storage.KV, keys storage.Keys, now func() time.Time, loc *time.Location, idleTTL time.Duration) *Dependencies {
	if now == nil {
		now = time.Now
	}
	layouts := services.NewLayoutStore(kv, keys)
	reservations := services.NewReservationStore(kv, keys)
	reservations.Now = now
	resolver := services.NewStatusResolver(now, loc)
	finalizer := services.NewFinalizer(layouts, reservations)
	finalizer.Now = now
	floorHub := hub.NewFloorHub()

	registry := services.NewCanvasRegistry(services.CanvasDeps{
		Layouts:      layouts,
		Reservations: reservations,
		Resolver:     resolver,
		Finalizer:    finalizer,
	}, floorHub, idleTTL)
	registry.Now = now

	return &Dependencies{
		Layouts:      layouts,
		Reservations: reservations,
		Resolver:     resolver,
		Finalizer:    finalizer,
		Registry:     registry,
		Hub:          floorHub,
	}
}

func SetupRouter(deps *Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigin))
	r.Use(middlewares.ManagerContext())
	r.Use(middlewares.LoggerMiddleware())
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.RateLimit())
	}

	// Inisialisasi controller
	floorCtrl := controllers.NewFloorController(deps.Layouts, deps.Reservations, deps.Resolver, deps.Hub)
	reservationCtrl := controllers.NewReservationController(deps.Layouts, deps.Reservations, deps.Resolver, deps.Finalizer, deps.Hub)
	canvasCtrl := controllers.NewCanvasController(deps.Registry, deps.Hub)
	hubCtrl := controllers.NewHubController(deps.Hub)

	r.GET("/ping", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := utils.PingDB(ctx); err != nil {
			utils.RespondError(c, http.StatusServiceUnavailable, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      FLOORS & RESERVATIONS
	// ----------------------------------------------------------------
	restaurant := r.Group("/restaurants/:restaurant_id")
	{
		restaurant.GET("/floors", floorCtrl.GetFloors)
		restaurant.GET("/floors/:floor_id/tables", floorCtrl.GetFloorTables)
		restaurant.PUT("/floors/:floor_id/layout", floorCtrl.SaveDefaultLayout)
		restaurant.GET("/floors/:floor_id/recommendations", floorCtrl.GetRecommendations)

		restaurant.GET("/reservations", reservationCtrl.GetReservations)
		restaurant.POST("/reservations", reservationCtrl.CreateReservation)
		restaurant.PATCH("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)
		restaurant.PATCH("/reservations/:reservation_id/complete", reservationCtrl.CompleteReservation)
	}

	// ----------------------------------------------------------------
	//                      CANVAS SESSIONS
	// ----------------------------------------------------------------
	r.POST("/canvases", canvasCtrl.OpenCanvas)
	canvas := r.Group("/canvases/:canvas_id")
	{
		canvas.GET("", canvasCtrl.GetCanvas)
		canvas.DELETE("", canvasCtrl.CloseCanvas)
		canvas.POST("/load", canvasCtrl.LoadCanvas)
		canvas.POST("/mode", canvasCtrl.SetMode)
		canvas.POST("/select", canvasCtrl.ToggleSelection)
		canvas.POST("/focus", canvasCtrl.FocusTable)
		canvas.POST("/drag", canvasCtrl.DragTable)
		canvas.POST("/tables", canvasCtrl.AddTable)
		canvas.PATCH("/tables/:table_id", canvasCtrl.UpdateTable)
		canvas.DELETE("/tables/:table_id", canvasCtrl.DeleteTable)
		canvas.POST("/reset", canvasCtrl.ResetCanvas)
		canvas.POST("/default", canvasCtrl.SaveDefault)
		canvas.POST("/finalize", canvasCtrl.FinalizeReservation)
	}

	// WebSocket endpoint
	r.GET("/ws/:restaurant_id", hubCtrl.Subscribe)

	return r
}
