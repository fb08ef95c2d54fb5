// Package api is the main api web server
package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/aouyang1/mouseglass/api/models"
	"github.com/aouyang1/mouseglass/contact"
	"github.com/aouyang1/mouseglass/gallery"
	"github.com/aouyang1/mouseglass/media"
	"github.com/aouyang1/mouseglass/session"
	"github.com/aouyang1/mouseglass/share"
	"github.com/aouyang1/mouseglass/store"
	"github.com/gin-gonic/gin"
)

//go:embed web/static
var webFiles embed.FS

const (
	sessionCookie = "mg_session"
	sessionKey    = "session"

	featuredLimit = 6
)

// ServerOptions configures a WebServer. Zero values pick defaults; a remote
// sync is only started when S3Bucket is set.
type ServerOptions struct {
	// BaseURL makes default share links absolute, e.g. https://mice.example.
	// Without it they are paths relative to the page.
	BaseURL string

	ImageDir   string
	S3Bucket   string
	AWSProfile string

	Sessions session.Options

	Downloads media.DownloadService
	Shares    share.Service
}

type WebServer struct {
	router  *gin.Engine
	db      *store.Database
	baseURL string

	catalog      *gallery.Catalog
	sessions     *session.Store
	library      *media.Library
	placeholders *media.Placeholders
	downloads    media.DownloadService
	shares       share.Service

	localManager  *LocalManager
	remoteManager *RemoteManager
}

func NewWebServer(db *store.Database, opts ServerOptions) (*WebServer, error) {
	records, err := db.GetAllImages()
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	catalog, err := gallery.NewCatalog(records)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	placeholders, err := media.NewPlaceholders()
	if err != nil {
		return nil, fmt.Errorf("failed to create placeholder cache: %w", err)
	}

	library := media.NewLibrary(opts.ImageDir)
	if _, err := library.Rescan(); err != nil {
		slog.Warn("error reading image directory on initialization", "path", opts.ImageDir, "error", err)
	}

	ws := &WebServer{
		router:       gin.Default(),
		db:           db,
		baseURL:      strings.TrimSuffix(opts.BaseURL, "/"),
		catalog:      catalog,
		sessions:     session.NewStore(catalog, opts.Sessions),
		library:      library,
		placeholders: placeholders,
		downloads:    opts.Downloads,
		shares:       opts.Shares,
		localManager: NewLocalManager(library, localCheckInterval),
	}
	if ws.downloads == nil {
		ws.downloads = &media.LibraryDownloader{Library: library, Placeholders: placeholders}
	}
	if ws.shares == nil {
		ws.shares = share.WebShare{}
	}

	if opts.S3Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		remoteManager, err := NewRemoteManager(ctx, opts.S3Bucket, opts.AWSProfile, opts.ImageDir)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize remote manager: %w", err)
		}
		ws.remoteManager = remoteManager
	}

	if err := ws.setupRoutes(); err != nil {
		return nil, err
	}
	return ws, nil
}

func (ws *WebServer) setupRoutes() error {
	staticFS, err := fs.Sub(webFiles, "web/static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	ws.router.StaticFS("static", http.FS(staticFS))

	// Serve favicon
	favicon := func(c *gin.Context) {
		data, err := webFiles.ReadFile("web/static/images/favicon.svg")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", data)
	}
	ws.router.GET("/favicon.ico", favicon)
	ws.router.GET("/favicon.svg", favicon)

	ws.router.GET("/images/:id", ws.handleLibraryImage)
	ws.router.GET("/api/placeholder/:w/:h", ws.handlePlaceholder)

	// everything below is per visitor
	visitor := ws.router.Group("/", ws.sessionMiddleware)

	visitor.GET("/", ws.handleHomePage)
	visitor.GET("/gallery", ws.handleGalleryPage)
	visitor.GET("/about", ws.handleAboutPage)
	visitor.GET("/contact", ws.handleContactPage)

	visitor.GET("/ui/gallery", ws.handleUIGallery)
	visitor.POST("/ui/favorites/:id", ws.handleUIToggleFavorite)
	visitor.GET("/ui/gallery/:id/overlay", ws.handleUIOverlay)
	visitor.DELETE("/ui/overlay", ws.handleUICloseOverlay)
	visitor.POST("/ui/contact", ws.handleUIContact)
	visitor.GET("/ui/contact/status", ws.handleUIContactStatus)

	api := visitor.Group("/api")
	api.GET("/images", ws.handleListImages)
	api.GET("/images/:id", ws.handleGetImage)
	api.POST("/images/:id/share", ws.handleShareImage)
	api.GET("/images/:id/download", ws.handleDownloadImage)
	api.GET("/categories", ws.handleListCategories)
	api.GET("/filter", ws.handleGetFilter)
	api.PUT("/filter", ws.handleSetFilter)
	api.GET("/favorites", ws.handleGetFavorites)
	api.POST("/favorites/:id", ws.handleToggleFavorite)
	api.GET("/selection", ws.handleGetSelection)
	api.PUT("/selection", ws.handleSetSelection)
	api.DELETE("/selection", ws.handleClearSelection)
	api.GET("/contact", ws.handleGetContact)
	api.POST("/contact", ws.handleSubmitContact)
	return nil
}

// Handler exposes the router, mostly for tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.router
}

// Start runs the image managers and serves http on addr until ctx is done.
func (ws *WebServer) Start(ctx context.Context, addr string) error {
	var remoteUpdates <-chan bool
	if ws.remoteManager != nil {
		remoteUpdates = ws.remoteManager.Updated
		go ws.remoteManager.Run(ctx)
	}
	go ws.localManager.Run(ctx, remoteUpdates)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ws.localManager.Updated:
				slog.Info("image library updated", "files", ws.library.Len())
			}
		}
	}()

	srv := &http.Server{
		Addr:    addr,
		Handler: ws.router,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("error while shutting down web server", "error", err)
		}
	}()

	log.Printf("Starting web server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start web server: %w", err)
	}
	return nil
}

// Close drops all sessions and stops their contact timers.
func (ws *WebServer) Close() {
	ws.sessions.Close()
}

func (ws *WebServer) sessionMiddleware(c *gin.Context) {
	id, _ := c.Cookie(sessionCookie)
	s, created := ws.sessions.GetOrCreate(id)
	if created {
		slog.Debug("started session", "id", s.ID)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, s.ID, int(ws.sessions.TTL().Seconds()), "/", "", false, true)
	c.Set(sessionKey, s)
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// respondError answers htmx callers with plain text and everyone else with an
// ErrorResponse.
func respondError(c *gin.Context, status int, msg string) {
	if isHTMX(c) {
		c.String(status, "Error: "+msg)
		return
	}
	c.JSON(status, models.ErrorResponse{Error: msg})
}

func render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		slog.Error("failed to render component", "path", c.FullPath(), "error", err)
	}
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Invalid image id")
		return 0, false
	}
	return id, true
}

// withSource points the record at the library file when one exists.
func (ws *WebServer) withSource(rec gallery.ImageRecord) gallery.ImageRecord {
	if _, ok := ws.library.Path(rec.ID); ok {
		rec.Src = fmt.Sprintf("/images/%d", rec.ID)
	}
	return rec
}

func (ws *WebServer) lookup(c *gin.Context) (gallery.ImageRecord, bool) {
	id, ok := parseID(c)
	if !ok {
		return gallery.ImageRecord{}, false
	}
	rec, ok := ws.catalog.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Image %d not found", id))
		return gallery.ImageRecord{}, false
	}
	return ws.withSource(rec), true
}

func (ws *WebServer) imageResponse(s *session.Session, rec gallery.ImageRecord) models.ImageResponse {
	resp := models.ImageResponse{ImageRecord: ws.withSource(rec), Favorite: s.IsFavorite(rec.ID)}
	if _, ok := ws.library.Path(rec.ID); ok {
		w, h, err := ws.library.Dimensions(rec.ID)
		if err != nil {
			slog.Warn("unable to read image dimensions", "id", rec.ID, "error", err)
		} else {
			resp.Width, resp.Height = w, h
		}
	}
	return resp
}

func (ws *WebServer) handleListImages(c *gin.Context) {
	s := currentSession(c)

	category := s.Filter()
	if q, ok := c.GetQuery("category"); ok {
		category = gallery.ParseCategory(q)
	}

	records := ws.catalog.Filter(category)
	images := make([]models.ImageResponse, len(records))
	for i, rec := range records {
		images[i] = ws.imageResponse(s, rec)
	}

	c.JSON(http.StatusOK, models.ImageListResponse{
		Images:   images,
		Total:    len(images),
		Category: category,
	})
}

func (ws *WebServer) handleGetImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := ws.db.GetImage(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, fmt.Sprintf("Image %d not found", id))
			return
		}
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}
	c.JSON(http.StatusOK, ws.imageResponse(currentSession(c), *rec))
}

func (ws *WebServer) handleListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.CategoryListResponse{Categories: ws.catalog.Categories()})
}

func (ws *WebServer) handleGetFilter(c *gin.Context) {
	c.JSON(http.StatusOK, models.FilterResponse{Category: currentSession(c).Filter()})
}

func (ws *WebServer) handleSetFilter(c *gin.Context) {
	var req models.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	s := currentSession(c)
	category := gallery.ParseCategory(req.Category)
	if err := s.SetFilter(category); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, models.FilterResponse{Category: category})
}

func (ws *WebServer) handleGetFavorites(c *gin.Context) {
	ids := currentSession(c).Favorites()
	c.JSON(http.StatusOK, models.FavoritesResponse{IDs: ids, Count: len(ids)})
}

func (ws *WebServer) handleToggleFavorite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s := currentSession(c)
	favorite, err := s.ToggleFavorite(id)
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, models.ToggleFavoriteResponse{
		ID:       id,
		Favorite: favorite,
		Count:    len(s.Favorites()),
	})
}

func (ws *WebServer) handleGetSelection(c *gin.Context) {
	resp := models.SelectionResponse{}
	if rec, ok := currentSession(c).Selected(); ok {
		rec = ws.withSource(rec)
		resp.Image = &rec
	}
	c.JSON(http.StatusOK, resp)
}

func (ws *WebServer) handleSetSelection(c *gin.Context) {
	var req models.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	rec, err := currentSession(c).Select(req.ID)
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	rec = ws.withSource(rec)
	c.JSON(http.StatusOK, models.SelectionResponse{Image: &rec})
}

func (ws *WebServer) handleClearSelection(c *gin.Context) {
	currentSession(c).ClearSelection()
	c.JSON(http.StatusOK, models.SelectionResponse{})
}

func (ws *WebServer) handleShareImage(c *gin.Context) {
	rec, ok := ws.lookup(c)
	if !ok {
		return
	}

	// an empty body asks for the defaults
	var req models.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.URL == "" {
		req.URL = ws.baseURL + fmt.Sprintf("/gallery?image=%d", rec.ID)
	}

	result, err := ws.shares.Share(c.Request.Context(), share.Request{
		Title:  rec.Title,
		Text:   rec.Description,
		URL:    req.URL,
		Native: req.Native,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ws *WebServer) handleDownloadImage(c *gin.Context) {
	rec, ok := ws.lookup(c)
	if !ok {
		return
	}

	d, err := ws.downloads.Open(c.Request.Context(), rec)
	if err != nil {
		slog.Error("failed to open download", "id", rec.ID, "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to prepare download")
		return
	}
	defer d.Body.Close()

	c.DataFromReader(http.StatusOK, d.Size, d.ContentType, d.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, d.Name),
	})
}

func (ws *WebServer) handleGetContact(c *gin.Context) {
	snap := currentSession(c).Contact.Snapshot()
	c.JSON(http.StatusOK, models.ContactResponse{State: snap.State, Form: snap.Form})
}

func (ws *WebServer) handleSubmitContact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	sub := currentSession(c).Contact
	if err := sub.Submit(form); err != nil {
		var missing contact.FieldErrors
		switch {
		case errors.As(err, &missing):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), Fields: missing})
		case errors.Is(err, contact.ErrBusy):
			respondError(c, http.StatusConflict, err.Error())
		default:
			respondError(c, http.StatusServiceUnavailable, err.Error())
		}
		return
	}

	snap := sub.Snapshot()
	c.JSON(http.StatusAccepted, models.ContactResponse{
		State:   snap.State,
		Form:    snap.Form,
		Message: "Sending message",
	})
}

func (ws *WebServer) handleLibraryImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	path, ok := ws.library.Path(id)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}

func (ws *WebServer) handlePlaceholder(c *gin.Context) {
	w, errW := strconv.Atoi(c.Param("w"))
	h, errH := strconv.Atoi(c.Param("h"))
	if errW != nil || errH != nil {
		respondError(c, http.StatusBadRequest, "Invalid placeholder size")
		return
	}

	data, err := ws.placeholders.PNG(w, h, c.Query("label"))
	if err != nil {
		slog.Error("failed to render placeholder", "width", w, "height", h, "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to render placeholder")
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", data)
}
