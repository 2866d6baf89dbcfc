package render

import "rapv/site/internal/models"

var glyphs = map[models.IconID]string{
	models.IconMonitor:  "🖥️",
	models.IconBook:     "📚",
	models.IconFlask:    "⚗️",
	models.IconHome:     "🏠",
	models.IconUtensils: "🍽️",
	models.IconActivity: "🏃",
	models.IconHeart:    "❤️",
	models.IconTree:     "🌳",
}

// Glyph returns the glyph for icon, falling back to the icon for the given
// list position when icon is unknown.
func Glyph(icon models.IconID, position int) string {
	if !icon.Valid() {
		icon = models.IconForPosition(position)
	}
	return glyphs[icon]
}
