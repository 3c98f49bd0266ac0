package vignette

const (
	defaultThumbWidth   = 24
	defaultThumbHeight  = 6
	defaultDetailWidth  = 60
	defaultDetailHeight = 20
	defaultUrlWidth     = 48
)

// Layout sizes thumbnails and columns, in terminal cells
type Layout struct {
	ThumbWidth   int `yaml:"thumb_width,omitempty"`
	ThumbHeight  int `yaml:"thumb_height,omitempty"`
	DetailWidth  int `yaml:"detail_width,omitempty"`
	DetailHeight int `yaml:"detail_height,omitempty"`
	UrlWidth     int `yaml:"url_width,omitempty"`
}

// withDefaults returns a copy with unset sizes defaulted, nil is ok
func (layout *Layout) withDefaults() (out Layout) {

	if layout != nil {
		out = *layout
	}

	out.ThumbWidth = orDefault(out.ThumbWidth, defaultThumbWidth)
	out.ThumbHeight = orDefault(out.ThumbHeight, defaultThumbHeight)
	out.DetailWidth = orDefault(out.DetailWidth, defaultDetailWidth)
	out.DetailHeight = orDefault(out.DetailHeight, defaultDetailHeight)
	out.UrlWidth = orDefault(out.UrlWidth, defaultUrlWidth)
	return
}

func orDefault(val, dflt int) int {

	if val < 1 {
		return dflt
	}
	return val
}
