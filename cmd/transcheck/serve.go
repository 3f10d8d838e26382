// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/transcheck/internal/align"
	"github.com/pdiddy/transcheck/internal/checks"
	"github.com/pdiddy/transcheck/internal/docext"
	"github.com/pdiddy/transcheck/internal/glossary"
	"github.com/pdiddy/transcheck/internal/runstore"
	"github.com/pdiddy/transcheck/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the comparison pipeline as an HTTP service",
	Long: `Serve exposes the rule-based pipeline over HTTP. POST /analyze accepts
a multipart form with "original" and "translation" files (plus an
optional "glossary" CSV), stores the run, and returns the report.
GET /reports lists stored runs and GET /reports/:id fetches one.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("runs-dir", "runs", "base directory for stored runs")

	rootCmd.AddCommand(serveCmd)
}

// server holds the handlers' shared state.
type server struct {
	store *runstore.Store

	// uploadDir receives request uploads; each file lives only until
	// its text has been extracted.
	uploadDir string
}

func runServe(cmd *cobra.Command, args []string) error {
	runsDir, _ := cmd.Flags().GetString("runs-dir")
	store, err := runstore.Open(types.StoreConfig{RunsDir: runsDir})
	if err != nil {
		return err
	}
	defer store.Close()

	uploadDir := filepath.Join(runsDir, "uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}

	addr, _ := cmd.Flags().GetString("addr")
	fmt.Fprintf(os.Stderr, "Listening on %s\n", addr)
	return newRouter(&server{store: store, uploadDir: uploadDir}).Run(addr)
}

func newRouter(s *server) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/analyze", s.handleAnalyze)
	r.GET("/reports", s.handleListReports)
	r.GET("/reports/:id", s.handleGetReport)

	return r
}

func (s *server) handleAnalyze(c *gin.Context) {
	srcPath, ok := s.saveUpload(c, "original")
	if !ok {
		return
	}
	defer os.Remove(srcPath)
	tgtPath, ok := s.saveUpload(c, "translation")
	if !ok {
		return
	}
	defer os.Remove(tgtPath)

	srcText := docext.ToText(srcPath)
	if srcText == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no text could be extracted from the original document"})
		return
	}
	tgtText := docext.ToText(tgtPath)
	if tgtText == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no text could be extracted from the translated document"})
		return
	}

	var entries []types.GlossaryEntry
	if glossaryPath, ok := s.saveOptionalUpload(c, "glossary"); ok {
		defer os.Remove(glossaryPath)
		entries = glossary.Load(glossaryPath)
	}

	srcSegments, tgtSegments := align.Pair(srcText, tgtText)
	report := checks.NewEngine(analysisConfig(), entries).Run(srcSegments, tgtSegments)

	run := runstore.Run{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		SourcePath: filepath.Base(srcPath),
		TargetPath: filepath.Base(tgtPath),
		Mode:       "rules",
		Summary:    report.Summary,
		Report:     report,
	}
	if err := s.store.Save(c.Request.Context(), run); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": run.ID, "report": report})
}

func (s *server) handleListReports(c *gin.Context) {
	runs, err := s.store.List(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (s *server) handleGetReport(c *gin.Context) {
	run, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// saveUpload writes the named form file into the upload directory,
// keeping the original extension so text extraction can dispatch on it.
// The caller removes the file once extraction is done. Writes the error
// response itself when the part is missing or unreadable.
func (s *server) saveUpload(c *gin.Context, field string) (string, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("missing %q file", field)})
		return "", false
	}
	dst := filepath.Join(s.uploadDir, uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return "", false
	}
	return dst, true
}

func (s *server) saveOptionalUpload(c *gin.Context, field string) (string, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", false
	}
	dst := filepath.Join(s.uploadDir, uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", false
	}
	return dst, true
}
