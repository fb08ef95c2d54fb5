package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/aouyang1/mouseglass/api/web/templates"
	"github.com/aouyang1/mouseglass/contact"
	"github.com/aouyang1/mouseglass/gallery"
	"github.com/aouyang1/mouseglass/session"
	"github.com/gin-gonic/gin"
)

func page(c *gin.Context, title, active string, body templ.Component) {
	render(c, http.StatusOK, templates.Layout(title, active, body))
}

// view is the session view with image sources resolved against the library.
func (ws *WebServer) view(s *session.Session) session.View {
	v := s.View()
	for i := range v.Cards {
		v.Cards[i].ImageRecord = ws.withSource(v.Cards[i].ImageRecord)
	}
	if v.Selected != nil {
		rec := ws.withSource(*v.Selected)
		v.Selected = &rec
	}
	return v
}

func (ws *WebServer) handleHomePage(c *gin.Context) {
	featured, err := ws.db.GetFeaturedImages(featuredLimit)
	if err != nil {
		slog.Warn("error getting featured images", "error", err)
		featured = ws.catalog.Featured(featuredLimit)
	}
	for i := range featured {
		featured[i] = ws.withSource(featured[i])
	}
	page(c, "Home", "/", templates.HomePage(featured))
}

// handleGalleryPage renders the gallery. An image query parameter, as used by
// links from the home page, opens that image in the overlay.
func (ws *WebServer) handleGalleryPage(c *gin.Context) {
	s := currentSession(c)
	if q := c.Query("image"); q != "" {
		id, err := strconv.Atoi(q)
		if err == nil {
			_, err = s.Select(id)
		}
		if err != nil {
			slog.Debug("ignoring image query", "image", q, "error", err)
		}
	}
	page(c, "Gallery", "/gallery", templates.GalleryPage(ws.view(s)))
}

func (ws *WebServer) handleAboutPage(c *gin.Context) {
	page(c, "About", "/about", templates.AboutPage())
}

func (ws *WebServer) handleContactPage(c *gin.Context) {
	page(c, "Contact", "/contact", templates.ContactPage(currentSession(c).Contact.Snapshot()))
}

func (ws *WebServer) handleUIGallery(c *gin.Context) {
	s := currentSession(c)
	if err := s.SetFilter(gallery.ParseCategory(c.Query("category"))); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	render(c, http.StatusOK, templates.GalleryBody(ws.view(s)))
}

func (ws *WebServer) handleUIToggleFavorite(c *gin.Context) {
	rec, ok := ws.lookup(c)
	if !ok {
		return
	}

	s := currentSession(c)
	favorite, err := s.ToggleFavorite(rec.ID)
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	toggled := templates.Toggled{Favorite: favorite, Count: len(s.Favorites())}
	if rec.Shown(s.Filter()) {
		toggled.Card = &session.Card{ImageRecord: rec, Favorite: favorite}
	}
	if sel, ok := s.Selected(); ok && sel.ID == rec.ID {
		toggled.Overlay = &rec
	}
	render(c, http.StatusOK, templates.FavoriteToggled(toggled))
}

func (ws *WebServer) handleUIOverlay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s := currentSession(c)
	rec, err := s.Select(id)
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	render(c, http.StatusOK, templates.Overlay(ws.withSource(rec), s.IsFavorite(id)))
}

func (ws *WebServer) handleUICloseOverlay(c *gin.Context) {
	currentSession(c).ClearSelection()
	c.Data(http.StatusOK, "text/html; charset=utf-8", nil)
}

// handleUIContact submits the form. Validation problems are rendered into the
// panel with a 200 so htmx swaps them in.
func (ws *WebServer) handleUIContact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid form")
		return
	}

	sub := currentSession(c).Contact
	err := sub.Submit(form)

	var missing contact.FieldErrors
	switch {
	case err == nil:
		render(c, http.StatusOK, templates.ContactPanel(sub.Snapshot(), nil))
	case errors.As(err, &missing):
		snap := contact.Snapshot{State: contact.Idle, Form: form}
		render(c, http.StatusOK, templates.ContactPanel(snap, missing))
	case errors.Is(err, contact.ErrBusy):
		render(c, http.StatusOK, templates.ContactPanel(sub.Snapshot(), nil))
	default:
		respondError(c, http.StatusServiceUnavailable, err.Error())
	}
}

func (ws *WebServer) handleUIContactStatus(c *gin.Context) {
	render(c, http.StatusOK, templates.ContactPanel(currentSession(c).Contact.Snapshot(), nil))
}
