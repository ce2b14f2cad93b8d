package tui

// Icon is a presentational glyph shown next to dashboard widgets.
type Icon int

const (
	IconUsers Icon = iota
	IconMessage
	IconChart
	IconTrending
	IconPipeline
	IconWarning
)

func (i Icon) Glyph() string {
	switch i {
	case IconUsers:
		return "👥"
	case IconMessage:
		return "✉"
	case IconChart:
		return "📊"
	case IconTrending:
		return "📈"
	case IconPipeline:
		return "▤"
	case IconWarning:
		return "⚠"
	}
	panic("tui: unhandled icon")
}

func (i Icon) String() string {
	switch i {
	case IconUsers:
		return "users"
	case IconMessage:
		return "message"
	case IconChart:
		return "chart"
	case IconTrending:
		return "trending"
	case IconPipeline:
		return "pipeline"
	case IconWarning:
		return "warning"
	}
	panic("tui: unhandled icon")
}
