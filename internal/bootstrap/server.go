package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akhilnair92/hosteldesk/api"
	"github.com/akhilnair92/hosteldesk/config"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Students *api.StudentHandler
	Rooms    *api.RoomHandler
	Bookings *api.BookingHandler
	Payments *api.PaymentHandler
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, handlers Handlers) error {
	router := newRouter(cfg, handlers)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, handlers Handlers) *gin.Engine {
	router := gin.Default()

	apiGroup := router.Group("/api")
	handlers.Students.Register(apiGroup.Group("/students"))
	handlers.Rooms.Register(apiGroup.Group("/rooms"))
	handlers.Bookings.Register(apiGroup.Group("/bookings"))
	handlers.Payments.Register(apiGroup.Group("/payments"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/swagger.json"),
		)))
	}

	return router
}
