// Package hostsim is a development stand-in for the host IDE. It serves the
// session-data and extension-response endpoints the bridge talks to, so
// extension authors can run and debug extensions without a running IDE.
// Received commands are kept in an in-memory journal for inspection.
package hostsim

import (
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExtensionBridge/internal/id"
	"github.com/GriffinCanCode/ExtensionBridge/internal/logging"
)

// Command is one received extension command.
type Command struct {
	Method    string                 `json:"method"`
	RequestID string                 `json:"request_id"`
	Args      map[string]interface{} `json:"args,omitempty"`
}

// Server simulates the host IDE's extension endpoints.
type Server struct {
	router  *gin.Engine
	fixture *Fixture
	logger  *logging.Logger
	metrics *Metrics
	ids     *id.Generator

	mu       sync.Mutex
	journal  map[string][]Command // keyed by extension uuid
	lastReqs map[string]string    // last request_id served per uuid
}

// NewServer creates a simulator serving the given fixture.
func NewServer(fixture *Fixture, logger *logging.Logger) *Server {
	if fixture == nil {
		fixture = DefaultFixture()
	}
	if logger == nil {
		logger = logging.NewDefault()
	}

	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(Middleware(metrics))
	router.Use(cors.Default())

	s := &Server{
		router:   router,
		fixture:  fixture,
		logger:   logger,
		metrics:  metrics,
		ids:      id.NewGenerator(),
		journal:  make(map[string][]Command),
		lastReqs: make(map[string]string),
	}

	router.GET("/health", s.health)
	router.GET("/api/extension/data/:uuid", s.sessionData)
	router.POST("/api/extension/response/:uuid", s.extensionResponse)
	router.GET("/api/extension/commands/:uuid", s.commands)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the simulator on addr.
func (s *Server) Run(addr string) error {
	s.logger.Info("host simulator listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "extension-host-simulator",
	})
}

// sessionData serves the fixture payload, minting a fresh request id per
// fetch the way the host ties a fetch to its follow-up actions.
func (s *Server) sessionData(c *gin.Context) {
	uuid := c.Param("uuid")
	requestID := s.ids.GenerateWithPrefix(id.RequestPrefix)

	s.mu.Lock()
	s.lastReqs[uuid] = requestID
	s.mu.Unlock()

	s.metrics.SessionsServed.Inc()
	s.logger.Info("session payload served",
		zap.String("extension_uuid", uuid),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, gin.H{"data": s.fixture.payload(requestID)})
}

// extensionResponse receives one command document and journals it.
func (s *Server) extensionResponse(c *gin.Context) {
	uuid := c.Param("uuid")

	var doc map[string]interface{}
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method, _ := doc["method"].(string)
	requestID, _ := doc["request_id"].(string)
	if method == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "method is required"})
		return
	}

	args := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if k != "method" && k != "request_id" {
			args[k] = v
		}
	}

	cmd := Command{Method: method, RequestID: requestID, Args: args}
	s.mu.Lock()
	s.journal[uuid] = append(s.journal[uuid], cmd)
	s.mu.Unlock()

	s.metrics.CommandsReceived.WithLabelValues(method).Inc()
	s.logger.Info("command received",
		zap.String("extension_uuid", uuid),
		zap.String("method", method),
		zap.String("request_id", requestID),
	)

	c.Status(http.StatusNoContent)
}

// commands returns the journal for one extension.
func (s *Server) commands(c *gin.Context) {
	uuid := c.Param("uuid")

	s.mu.Lock()
	cmds := make([]Command, len(s.journal[uuid]))
	copy(cmds, s.journal[uuid])
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"commands": cmds})
}

// Commands returns a copy of the journal for one extension. Used by tests.
func (s *Server) Commands(uuid string) []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmds := make([]Command, len(s.journal[uuid]))
	copy(cmds, s.journal[uuid])
	return cmds
}

// LastRequestID returns the request id most recently served to an extension.
func (s *Server) LastRequestID(uuid string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReqs[uuid]
}
