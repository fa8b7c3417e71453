package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/chrissnell/climateapi/internal/climate"
	"github.com/chrissnell/climateapi/internal/log"
	"github.com/chrissnell/climateapi/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// APIPrefix is the path prefix of every data endpoint
const APIPrefix = "/api/v1.0"

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTServerData
	Server     http.Server
	Engine     *climate.Engine
	Window     *climate.Window // pinned observation window; nil serves the trailing year on record
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTServerData, engine *climate.Engine, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		Engine:     engine,
		logger:     logger,
	}

	if rc.ObservationWindow != nil {
		w, err := parseWindow(rc.ObservationWindow)
		if err != nil {
			return nil, fmt.Errorf("invalid rest.observation_window: %w", err)
		}
		ctrl.Window = &w
		logger.Infof("serving fixed observation window %s..%s", rc.ObservationWindow.Start, rc.ObservationWindow.End)
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Info("rest.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = config.DefaultListenAddr
	}

	// Set default HTTP port if not specified
	if rc.Port == 0 {
		logger.Infof("rest.port not provided; defaulting to %d", config.DefaultHTTPPort)
		rc.Port = config.DefaultHTTPPort
	}
	ctrl.restConfig = rc

	// Create handlers
	ctrl.handlers = NewHandlers(ctrl)

	// Set up router
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.Port)
	ctrl.Server.Handler = ctrl.Router()

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Infof("Starting REST server controller on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.restConfig.Cert != "" && c.restConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.restConfig.Cert, c.restConfig.Key); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// Router configures the HTTP router with all endpoints. Routes are matched in
// registration order, so the fixed paths precede the {start} patterns.
func (c *Controller) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogMiddleware)
	router.Use(sqlDebugMiddleware)

	router.HandleFunc("/", c.handlers.ServeIndex).Methods(http.MethodGet)
	router.HandleFunc("/healthz", c.handlers.GetHealth).Methods(http.MethodGet)

	api := router.PathPrefix(APIPrefix).Subrouter()
	api.HandleFunc("/precipitation", c.handlers.GetPrecipitation).Methods(http.MethodGet)
	api.HandleFunc("/stations", c.handlers.GetStations).Methods(http.MethodGet)
	api.HandleFunc("/tobs", c.handlers.GetTOBS).Methods(http.MethodGet)
	api.HandleFunc("/since/{start}", c.handlers.GetStatsSince).Methods(http.MethodGet)
	api.HandleFunc("/{start}", c.handlers.GetDailyNormals).Methods(http.MethodGet)
	api.HandleFunc("/{start}/{end}", c.handlers.GetRangeStats).Methods(http.MethodGet)

	return router
}

func parseWindow(wd *config.WindowData) (climate.Window, error) {
	start, err := climate.ParseDate(wd.Start)
	if err != nil {
		return climate.Window{}, err
	}
	end, err := climate.ParseDate(wd.End)
	if err != nil {
		return climate.Window{}, err
	}
	return climate.Window{Start: start, End: end}, nil
}
