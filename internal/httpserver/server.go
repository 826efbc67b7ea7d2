package httpserver

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const successBody = "success"

// Server is the echo HTTP service. GET and POST on the root path answer the
// JSON string "success"; POST bodies are written to stdout before answering.
type Server struct {
	addr       string
	server     *http.Server
	listenAddr string
	ctx        context.Context
	cancel     context.CancelFunc
	bodyLog    *log.Logger
}

// NewServer creates the echo server. An empty addr binds 0.0.0.0:5000.
func NewServer(addr string) *Server {
	if addr == "" {
		addr = "0.0.0.0:5000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:    addr,
		ctx:     ctx,
		cancel:  cancel,
		bodyLog: log.New(os.Stdout, "", 0),
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// All origins allowed on all routes.
	r.Use(cors.Default())

	r.GET("/", s.handleGet)
	r.POST("/", s.handlePost)
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.routes(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listenAddr = listener.Addr().String()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the bound listen address. Valid after Start.
func (s *Server) Addr() string {
	return s.listenAddr
}

// Stop gracefully shuts down the HTTP server. Safe to call before Start.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleGet(c *gin.Context) {
	c.JSON(http.StatusOK, successBody)
}

func (s *Server) handlePost(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.bodyLog.Printf("reading request body: %v", err)
	} else {
		s.bodyLog.Printf("%s", body)
	}
	c.JSON(http.StatusOK, successBody)
}
