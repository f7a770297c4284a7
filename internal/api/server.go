// Package api serves the planner over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/logger"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/scheduler"
	"github.com/julianstephens/dayfit/internal/sheetio"
	"github.com/julianstephens/dayfit/internal/storage"
	"github.com/julianstephens/dayfit/internal/validation"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Validator *validation.Validator
	// Secret enables bearer-token auth on /api/v1 when set.
	Secret []byte
}

func New(store storage.Provider, sched *scheduler.Scheduler, secret []byte) *Server {
	return &Server{
		Store:     store,
		Scheduler: sched,
		Validator: validation.New(),
		Secret:    secret,
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": constants.Version})
	})

	v1 := r.Group("/api/v1")
	if len(s.Secret) > 0 {
		v1.Use(authMiddleware(s.Secret))
	}
	{
		v1.POST("/calculate", s.calculate)
		v1.POST("/validate", s.validate)
		v1.GET("/sheet", s.getSheet)
		v1.PUT("/sheet", s.putSheet)
		v1.GET("/report", s.report)
	}
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// writeReport renders a calculation result or its error.
func (s *Server) writeReport(c *gin.Context, sheet models.Sheet) {
	report, err := s.Scheduler.Calculate(sheet)
	if err != nil {
		if errors.Is(err, scheduler.ErrEmptyInput) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sheetio.NewReportDoc(report))
}

func bindSheet(c *gin.Context) (models.Sheet, bool) {
	var sheet models.Sheet
	if err := c.ShouldBindJSON(&sheet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sheet: " + err.Error()})
		return models.Sheet{}, false
	}
	// Normalise list membership and positions from the JSON layout
	for _, kind := range models.ListKinds {
		sheet.SetList(kind, sheet.List(kind))
	}
	return sheet, true
}

func (s *Server) calculate(c *gin.Context) {
	sheet, ok := bindSheet(c)
	if !ok {
		return
	}
	s.writeReport(c, sheet)
}

type conflictDoc struct {
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	List        string   `json:"list,omitempty"`
	Items       []string `json:"items,omitempty"`
}

func (s *Server) validate(c *gin.Context) {
	sheet, ok := bindSheet(c)
	if !ok {
		return
	}
	result := s.Validator.ValidateSheet(sheet)
	conflicts := make([]conflictDoc, 0, len(result.Conflicts))
	for _, conflict := range result.Conflicts {
		conflicts = append(conflicts, conflictDoc{
			Type:        string(conflict.Type),
			Severity:    string(conflict.Severity),
			Description: conflict.Description,
			List:        string(conflict.List),
			Items:       conflict.Items,
		})
	}
	c.JSON(http.StatusOK, gin.H{"valid": !result.HasErrors(), "conflicts": conflicts})
}

func (s *Server) getSheet(c *gin.Context) {
	sheet, err := s.Store.GetSheet()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sheet)
}

func (s *Server) putSheet(c *gin.Context) {
	sheet, ok := bindSheet(c)
	if !ok {
		return
	}
	if err := s.Store.SaveSheet(sheet); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	saved, err := s.Store.GetSheet()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) report(c *gin.Context) {
	sheet, err := s.Store.GetSheet()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.writeReport(c, sheet)
}

// ListenAndServe runs the API until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
