package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openswoop/syllabank/pkg/database"
	"github.com/openswoop/syllabank/pkg/ingest"
	"github.com/openswoop/syllabank/pkg/monitoring"
)

// Catalog is the read side of the course store.
type Catalog interface {
	Ping(ctx context.Context) error
	SearchCourses(ctx context.Context, q database.SearchQuery) ([]database.CourseListItem, error)
	GetCourse(ctx context.Context, id int64) (*database.CourseView, error)
}

// Syncer ingests listings on demand.
type Syncer interface {
	RunAll(ctx context.Context, listingURLs []string) (ingest.Stats, error)
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	port        string
	listingURLs []string
	router      http.Handler
	httpServer  *http.Server
	catalog     Catalog
	syncer      Syncer
	metrics     *monitoring.Metrics
	logger      *zap.Logger

	// syncs started by POST /api/sync run on ctx until Shutdown
	ctx    context.Context
	cancel context.CancelFunc
	syncs  sync.WaitGroup
}

func NewServer(port string, listingURLs []string, c Catalog, sy Syncer, m *monitoring.Metrics, l *zap.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		port:        port,
		listingURLs: listingURLs,
		catalog:     c,
		syncer:      sy,
		metrics:     m,
		logger:      l,
		ctx:         ctx,
		cancel:      cancel,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, cancels running syncs and waits for
// them to return.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	s.cancel()
	s.syncs.Wait()
	return err
}
