package templates

import (
	"time"

	"github.com/a-h/templ"
)

type navItem struct {
	href  string
	label string
	icon  string
}

var navItems = []navItem{
	{"/", "Home", "fa-house"},
	{"/gallery", "Gallery", "fa-images"},
	{"/about", "About", "fa-circle-info"},
	{"/contact", "Contact", "fa-envelope"},
}

// Layout wraps body in the shared page chrome. active is the href of the
// current page.
func Layout(title, active string, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
`)
		h.printf("    <title>%s - MouseGlass</title>\n", esc(title))
		h.raw(`    <link rel="icon" href="/favicon.svg" type="image/svg+xml">
    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">
    <link rel="stylesheet" href="/static/css/glass.css">
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
    <script src="/static/js/share.js" defer></script>
</head>
<body>
    <div class="backdrop">
        <div class="orb orb-purple"></div>
        <div class="orb orb-blue"></div>
        <div class="orb orb-pink"></div>
    </div>
    <nav class="glass nav">
        <a href="/" class="brand"><i class="fa-solid fa-computer-mouse"></i><span>MouseGlass</span></a>
        <div class="nav-links">
`)
		for _, item := range navItems {
			class := "nav-link"
			if item.href == active {
				class += " active"
			}
			h.printf(`            <a href="%s" class="%s"><i class="fa-solid %s"></i><span>%s</span></a>
`, item.href, class, item.icon, esc(item.label))
		}
		h.raw(`        </div>
    </nav>
    <main class="container">
`)
		h.render(body)
		h.raw(`
    </main>
    <footer class="glass footer">
        <div class="footer-grid">
            <div>
                <div class="brand"><i class="fa-solid fa-computer-mouse"></i><span>MouseGlass</span></div>
                <p class="muted">A celebration of mice in every shape: wild, pet, lab and the ones on your desk.</p>
            </div>
            <div>
                <h3>Navigation</h3>
`)
		for _, item := range navItems {
			h.printf(`                <a href="%s" class="footer-link">%s</a>
`, item.href, esc(item.label))
		}
		h.printf(`            </div>
        </div>
        <p class="muted small">&copy; %d MouseGlass. Made with glass and cheese.</p>
    </footer>
</body>
</html>`, time.Now().Year())
	})
}
