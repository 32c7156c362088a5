package ads

import (
	"fmt"
	"html/template"
)

// Slot is the declarative per-slot configuration the ad network expects.
type Slot struct {
	ID         string
	Format     string
	Layout     string
	Responsive bool
}

// Provider renders ad embed markup. It is side-effecting page furniture
// only and must never participate in business logic.
type Provider interface {
	ScriptTag() template.HTML
	Render(slot Slot) template.HTML
}

// AdSense renders real ad-network embeds for a publisher id.
type AdSense struct {
	Client string
}

func (a AdSense) ScriptTag() template.HTML {
	if a.Client == "" {
		return ""
	}
	return template.HTML(fmt.Sprintf(
		`<script async src="https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js?client=%s" crossorigin="anonymous"></script>`,
		template.HTMLEscapeString(a.Client)))
}

func (a AdSense) Render(slot Slot) template.HTML {
	if a.Client == "" || slot.ID == "" {
		return ""
	}

	responsive := "false"
	if slot.Responsive {
		responsive = "true"
	}
	layout := ""
	if slot.Layout != "" {
		layout = fmt.Sprintf(` data-ad-layout="%s"`, template.HTMLEscapeString(slot.Layout))
	}

	return template.HTML(fmt.Sprintf(
		`<ins class="adsbygoogle" style="display:block" data-ad-client="%s" data-ad-slot="%s" data-ad-format="%s"%s data-full-width-responsive="%s"></ins>`+
			`<script>(adsbygoogle = window.adsbygoogle || []).push({});</script>`,
		template.HTMLEscapeString(a.Client),
		template.HTMLEscapeString(slot.ID),
		template.HTMLEscapeString(slot.Format),
		layout,
		responsive))
}

// Noop renders nothing. Used in tests and when no publisher id is set.
type Noop struct{}

func (Noop) ScriptTag() template.HTML  { return "" }
func (Noop) Render(Slot) template.HTML { return "" }
