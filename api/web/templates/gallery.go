package templates

import (
	"github.com/a-h/templ"
	"github.com/aouyang1/mouseglass/gallery"
	"github.com/aouyang1/mouseglass/session"
)

func GalleryPage(view session.View) templ.Component {
	return component(func(h *html) {
		h.raw(`<header class="glass page-header sticky">
    <a href="/" class="back-link"><i class="fa-solid fa-arrow-left"></i><span>Back to Home</span></a>
    <h1>Mouse Gallery</h1>
`)
		h.render(FavoriteCounter(view.FavoriteCount, false))
		h.raw(`
</header>
<div id="gallery-body">
`)
		h.render(GalleryBody(view))
		h.raw(`
</div>
<div id="overlay">`)
		if view.Selected != nil {
			h.render(Overlay(*view.Selected, view.SelectedFavorite))
		}
		h.raw(`</div>`)
	})
}

// GalleryBody is the filter tabs and the image grid, swapped as one fragment
// when the filter changes.
func GalleryBody(view session.View) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="filter-tabs">
`)
		for _, cat := range view.Categories {
			class := "glass-pill"
			if cat.Category == view.Filter {
				class += " active"
			}
			h.printf(`    <button class="%s" hx-get="%s" hx-target="#gallery-body" hx-swap="innerHTML">%s (%d)</button>
`, class, esc(filterURL(cat.Category)), esc(cat.Name), cat.Count)
		}
		h.raw(`</div>
<div class="image-grid">
`)
		if len(view.Cards) == 0 {
			h.raw(`    <p class="muted">No mice in this category yet.</p>
`)
		}
		for _, card := range view.Cards {
			h.render(ImageCard(card))
		}
		h.raw(`</div>`)
	})
}

func ImageCard(card session.Card) templ.Component {
	return imageCard(card, false)
}

func imageCard(card session.Card, oob bool) templ.Component {
	return component(func(h *html) {
		attr := ""
		if oob {
			attr = ` hx-swap-oob="true"`
		}
		favClass := "icon-btn"
		heart := "fa-regular fa-heart"
		if card.Favorite {
			favClass += " favorite"
			heart = "fa-solid fa-heart"
		}
		h.printf(`<div id="%s" class="glass card image-card"%s>
    <div class="card-media">
        <img src="%s" alt="%s" loading="lazy">
        <div class="card-shade"></div>
        <div class="card-actions top">
            <button class="%s" title="Favorite" hx-post="%s" hx-swap="none"><i class="%s"></i></button>
            <button class="icon-btn" title="Enlarge" hx-get="%s" hx-target="#overlay" hx-swap="innerHTML"><i class="fa-solid fa-magnifying-glass-plus"></i></button>
        </div>
        <div class="card-actions bottom">
            <span class="likes"><i class="fa-solid fa-heart"></i> %d</span>
            <span>
                <a class="icon-btn small" title="Download" href="%s" download><i class="fa-solid fa-download"></i></a>
                <button class="icon-btn small" title="Share" data-share-id="%d"><i class="fa-solid fa-share-nodes"></i></button>
            </span>
        </div>
    </div>
    <div class="card-body">
        <h3>%s</h3>
        <p class="muted clamp">%s</p>
        <div class="card-meta">
            <span class="badge">%s</span>
            <span class="muted small"><i class="fa-solid fa-heart"></i> %d</span>
        </div>
    </div>
</div>
`,
			cardID(card.ID), attr,
			esc(card.Src), esc(card.Title),
			favClass, esc(favoriteURL(card.ImageRecord)), heart,
			esc(overlayURL(card.ImageRecord)),
			card.Likes,
			esc(downloadURL(card.ImageRecord)),
			card.ID,
			esc(card.Title),
			esc(card.Description),
			esc(string(card.Category)),
			card.Likes,
		)
	})
}

// FavoriteCounter shows the number of favorites in the page header. With oob
// set it is sent alongside another fragment and swapped in place.
func FavoriteCounter(count int, oob bool) templ.Component {
	return component(func(h *html) {
		attr := ""
		if oob {
			attr = ` hx-swap-oob="true"`
		}
		h.printf(`<div id="favorite-counter" class="favorite-counter"%s><i class="fa-solid fa-heart"></i><span>%d</span></div>`, attr, count)
	})
}

// Toggled describes what a favorite toggle changed on screen. Card is nil
// when the current filter hides the image and Overlay is nil unless the image
// is open in the overlay.
type Toggled struct {
	Card     *session.Card
	Overlay  *gallery.ImageRecord
	Favorite bool
	Count    int
}

// FavoriteToggled is the response to a favorite toggle. Every part is an
// out-of-band swap, so the buttons that trigger it swap nothing themselves.
func FavoriteToggled(t Toggled) templ.Component {
	return component(func(h *html) {
		if t.Card != nil {
			h.render(imageCard(*t.Card, true))
		}
		h.render(FavoriteCounter(t.Count, true))
		if t.Overlay != nil {
			h.raw(`<div id="overlay" hx-swap-oob="innerHTML">`)
			h.render(Overlay(*t.Overlay, t.Favorite))
			h.raw(`</div>`)
		}
	})
}

func Overlay(rec gallery.ImageRecord, favorite bool) templ.Component {
	return component(func(h *html) {
		favLabel := "Add to Favorites"
		if favorite {
			favLabel = "Favorited"
		}
		h.printf(`<div class="modal-backdrop" hx-delete="/ui/overlay" hx-target="#overlay" hx-swap="innerHTML" hx-trigger="click target:.modal-backdrop, keyup[key=='Escape'] from:body">
    <div class="glass modal">
        <button class="icon-btn close" title="Close" hx-delete="/ui/overlay" hx-target="#overlay" hx-swap="innerHTML"><i class="fa-solid fa-xmark"></i></button>
        <div class="modal-media"><img src="%s" alt="%s"></div>
        <div class="modal-body">
            <div>
                <h2>%s</h2>
                <p>%s</p>
            </div>
            <div class="modal-meta">
                <span class="badge">%s</span>
                <span class="muted"><i class="fa-solid fa-heart"></i> %d likes</span>
            </div>
            <div class="modal-actions">
                <button class="glass-button" hx-post="%s" hx-swap="none"><i class="fa-solid fa-heart"></i> %s</button>
                <a class="glass-button" href="%s" download><i class="fa-solid fa-download"></i> Download</a>
                <button class="glass-button" data-share-id="%d"><i class="fa-solid fa-share-nodes"></i> Share</button>
            </div>
        </div>
    </div>
</div>`,
			esc(rec.Src), esc(rec.Title),
			esc(rec.Title),
			esc(rec.Description),
			esc(string(rec.Category)),
			rec.Likes,
			esc(favoriteURL(rec)), favLabel,
			esc(downloadURL(rec)),
			rec.ID,
		)
	})
}
