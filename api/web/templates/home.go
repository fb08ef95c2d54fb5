package templates

import (
	"github.com/a-h/templ"
	"github.com/aouyang1/mouseglass/gallery"
)

func HomePage(featured []gallery.ImageRecord) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="hero">
    <h1 class="hero-title">Mouse Gallery</h1>
    <p class="hero-text">Discover the fascinating world of mice through our curated collection of beautiful photographs.</p>
    <div class="hero-actions">
        <a href="/gallery" class="glass-button">Explore Gallery</a>
        <a href="/about" class="glass-button outline">Learn More</a>
    </div>
</section>
<section class="featured-grid">
`)
		for _, rec := range featured {
			h.printf(`    <a href="%s" class="glass card featured-card">
        <div class="card-media"><img src="%s" alt="%s" loading="lazy"><div class="card-shade"></div></div>
        <div class="card-body">
            <div class="card-title-row"><h3>%s</h3><span class="badge">%s</span></div>
            <p class="muted">%s</p>
            <div class="card-meta muted small"><span><i class="fa-solid fa-heart"></i> %d</span><span>View <i class="fa-solid fa-arrow-right"></i></span></div>
        </div>
    </a>
`,
				esc(imagePageURL(rec.ID)),
				esc(rec.Src), esc(rec.Title),
				esc(rec.Title), esc(rec.Category.DisplayName()),
				esc(rec.Description),
				rec.Likes,
			)
		}
		h.raw(`</section>
<section class="glass cta">
    <h2>Love mice as much as we do?</h2>
    <p class="muted">Share your own mouse photos or tell us about your favorite species.</p>
    <a href="/contact" class="glass-button">Get in Touch</a>
</section>`)
	})
}
