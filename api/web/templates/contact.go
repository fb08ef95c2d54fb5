package templates

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/aouyang1/mouseglass/contact"
)

type contactInfo struct {
	icon        string
	title       string
	value       string
	description string
}

var contactDetails = []contactInfo{
	{"fa-envelope", "Email", "hello@mouseapp.com", "Send us an email anytime"},
	{"fa-phone", "Phone", "+1 (555) 123-4567", "Call us during business hours"},
	{"fa-location-dot", "Address", "123 Mouse Lane", "Visit our office"},
}

func ContactPage(snap contact.Snapshot) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="hero">
    <h1 class="hero-title">Get in Touch</h1>
    <p class="hero-text">Have questions about our mouse gallery? Want to share your own mouse photos? We'd love to hear from you!</p>
</section>
<div class="two-col">
    <section class="glass panel">
        <h2>Send us a Message</h2>
        <p class="muted">Fill out the form below and we'll get back to you as soon as possible.</p>
`)
		h.render(ContactPanel(snap, nil))
		h.raw(`
    </section>
    <section class="contact-info">
`)
		for _, info := range contactDetails {
			h.printf(`        <div class="glass panel info-card">
            <i class="fa-solid %s info-icon"></i>
            <div><h3>%s</h3><p>%s</p><p class="muted small">%s</p></div>
        </div>
`, info.icon, esc(info.title), esc(info.value), esc(info.description))
		}
		h.raw(`    </section>
</div>`)
	})
}

// ContactPanel renders the form for its current state. While a message is
// being sent or was just sent, the panel polls for the next state.
func ContactPanel(snap contact.Snapshot, missing contact.FieldErrors) templ.Component {
	return component(func(h *html) {
		poll := ""
		if snap.State != contact.Idle {
			poll = ` hx-get="/ui/contact/status" hx-trigger="every 500ms" hx-swap="outerHTML"`
		}
		h.printf(`<div id="contact-panel" class="contact-panel state-%s"%s>
`, snap.State, poll)

		if snap.State == contact.Submitted {
			h.raw(`    <div class="sent">
        <i class="fa-solid fa-circle-check"></i>
        <h3>Message Sent!</h3>
        <p class="muted">Thank you for reaching out. We'll get back to you soon.</p>
    </div>
</div>`)
			return
		}

		disabled := ""
		if snap.State == contact.Submitting {
			disabled = " disabled"
		}
		h.raw(`    <form hx-post="/ui/contact" hx-target="#contact-panel" hx-swap="outerHTML" class="contact-form">
        <div class="form-row">
`)
		field(h, "name", "Name", "text", "Your name", snap.Form.Name, missing, disabled)
		field(h, "email", "Email", "email", "your@email.com", snap.Form.Email, missing, disabled)
		h.raw(`        </div>
`)
		field(h, "subject", "Subject", "text", "What's this about?", snap.Form.Subject, missing, disabled)

		msgClass := "glass-input"
		if missing.Has("message") {
			msgClass += " invalid"
		}
		h.printf(`        <label for="message">Message</label>
        <textarea id="message" name="message" class="%s" rows="6" placeholder="Tell us more..." required%s>%s</textarea>
`, msgClass, disabled, esc(snap.Form.Message))

		if len(missing) > 0 {
			h.printf(`        <p class="form-error">Please fill in: %s</p>
`, esc(strings.Join(missing, ", ")))
		}

		if snap.State == contact.Submitting {
			h.raw(`        <button type="submit" class="glass-button wide" disabled><span class="spinner"></span> Sending...</button>
`)
		} else {
			h.raw(`        <button type="submit" class="glass-button wide"><i class="fa-solid fa-paper-plane"></i> Send Message</button>
`)
		}
		h.raw(`    </form>
</div>`)
	})
}

func field(h *html, name, label, typ, placeholder, value string, missing contact.FieldErrors, disabled string) {
	class := "glass-input"
	if missing.Has(name) {
		class += " invalid"
	}
	h.printf(`            <div class="form-field">
                <label for="%s">%s</label>
                <input id="%s" name="%s" type="%s" class="%s" value="%s" placeholder="%s" required%s>
            </div>
`, name, label, name, name, typ, class, esc(value), esc(placeholder), disabled)
}
