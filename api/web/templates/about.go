package templates

import "github.com/a-h/templ"

type species struct {
	name       string
	scientific string
	habitat    string
}

var mouseSpecies = []species{
	{"House Mouse", "Mus musculus", "Urban areas, fields"},
	{"Field Mouse", "Apodemus sylvaticus", "Woodlands, grasslands"},
	{"Harvest Mouse", "Micromys minutus", "Tall grasses, reed beds"},
	{"Deer Mouse", "Peromyscus maniculatus", "Forests, prairies"},
}

var mouseCharacteristics = []string{
	"Excellent climbers and swimmers",
	"Highly social animals",
	"Nocturnal behavior patterns",
	"Keen sense of smell and hearing",
	"Rapid reproduction rate",
	"Omnivorous diet",
}

var mouseFacts = []string{
	"Mice can squeeze through holes as small as a dime",
	"They have excellent memories and can remember routes",
	"Mice are capable of learning their names",
	"They can run up to 8 mph",
	"Mice are naturally curious and love to explore",
	"They communicate through ultrasonic vocalizations",
}

type ecologyRole struct {
	icon  string
	title string
	text  string
}

var ecologyRoles = []ecologyRole{
	{"🌱", "Seed Dispersal", "Mice carry and bury seeds, helping forests and meadows regrow."},
	{"🦉", "Food Source", "Owls, foxes, snakes and hawks depend on mice to survive."},
	{"🔬", "Research", "Laboratory mice have contributed to countless medical breakthroughs."},
}

func AboutPage() templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="hero">
    <h1 class="hero-title gradient-text">About Mice</h1>
    <p class="hero-text">Small in size but enormous in importance, mice are among the most adaptable mammals on Earth.</p>
</section>
<div class="two-col">
    <section class="glass panel">
        <h2><i class="fa-solid fa-paw"></i> Characteristics</h2>
        <ul class="check-list">
`)
		for _, c := range mouseCharacteristics {
			h.printf("            <li>%s</li>\n", esc(c))
		}
		h.raw(`        </ul>
    </section>
    <section class="glass panel">
        <h2><i class="fa-solid fa-house"></i> Habitat</h2>
        <p>Mice live on every continent except Antarctica. They thrive in fields, forests, deserts and, of course, alongside people.</p>
        <p class="muted">Their adaptability comes from a flexible diet and the ability to breed year-round.</p>
    </section>
</div>
<section class="glass panel">
    <h2><i class="fa-solid fa-book"></i> Common Species</h2>
    <div class="species-grid">
`)
		for _, s := range mouseSpecies {
			h.printf(`        <div class="glass species">
            <h4>%s</h4>
            <p class="muted"><em>%s</em></p>
            <p><strong>Habitat:</strong> %s</p>
        </div>
`, esc(s.name), esc(s.scientific), esc(s.habitat))
		}
		h.raw(`    </div>
</section>
<section class="glass panel">
    <h2>🌿 Ecological Importance</h2>
    <p>Despite their small size, mice play crucial roles in their ecosystems as both predators and prey, seed dispersers, and ecosystem engineers.</p>
    <div class="role-grid">
`)
		for _, r := range ecologyRoles {
			h.printf(`        <div class="role"><div class="role-icon">%s</div><h4>%s</h4><p class="muted small">%s</p></div>
`, r.icon, esc(r.title), esc(r.text))
		}
		h.raw(`    </div>
</section>
<section class="glass panel">
    <h2>✨ Amazing Mouse Facts</h2>
    <div class="fact-grid">
`)
		for _, f := range mouseFacts {
			h.printf("        <div class=\"glass fact\">%s</div>\n", esc(f))
		}
		h.raw(`    </div>
</section>`)
	})
}
