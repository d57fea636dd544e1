package web

import (
	"embed"
	"html/template"

	"github.com/Swapnil-2005/movie-recommendation/internal/config"
	"github.com/Swapnil-2005/movie-recommendation/internal/grid"
	"github.com/Swapnil-2005/movie-recommendation/internal/movies"
	"github.com/Swapnil-2005/movie-recommendation/internal/screens"
	"github.com/Swapnil-2005/movie-recommendation/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/style.css
var stylesheet []byte

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"gridArgs": func(g gridData, p *pageData) gridArgs { return gridArgs{Grid: g, Page: p} },
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// gridArgs lets the grid template reach the sidebar values that every Open
// form carries along.
type gridArgs struct {
	Grid gridData
	Page *pageData
}

type categoryOption struct {
	Value    string
	Label    string
	Selected bool
}

type noticeData struct {
	Class string
	Text  string
}

type gridData struct {
	Heading string
	Empty   string
	Columns int
	Rows    [][]grid.Cell
}

// pageData is everything the page template reads.
type pageData struct {
	Category      string
	Columns       int
	Categories    []categoryOption
	ColumnChoices []int

	// Home is false on the details screen.
	Home  bool
	Query string

	Movie           *movies.Details
	Recommendations bool
	Notice          *noticeData
	Grids           []gridData
}

func newPageData(p session.Preferences) *pageData {
	d := &pageData{
		Category: string(p.Category),
		Columns:  p.Columns,
	}
	for _, c := range movies.Categories {
		d.Categories = append(d.Categories, categoryOption{
			Value:    string(c),
			Label:    c.Label(),
			Selected: c == p.Category,
		})
	}
	for n := config.MinColumns; n <= config.MaxColumns; n++ {
		d.ColumnChoices = append(d.ColumnChoices, n)
	}
	return d
}

func (d *pageData) fillHome(v screens.HomeView, columns int) {
	d.Home = true
	d.Notice = notice(v.Notice)
	if v.Section != nil {
		d.Grids = append(d.Grids, layoutSection(*v.Section, columns))
	}
}

func (d *pageData) fillDetails(v screens.DetailsView, columns int) {
	d.Movie = v.Movie
	d.Recommendations = v.Movie != nil
	d.Notice = notice(v.Notice)
	for _, s := range v.Sections {
		d.Grids = append(d.Grids, layoutSection(s, columns))
	}
}

func layoutSection(s screens.Section, columns int) gridData {
	g := s.Layout(columns)
	out := gridData{Heading: s.Heading, Columns: g.Columns, Rows: g.Rows}
	if g.Empty() {
		out.Empty = grid.EmptyMessage
	}
	return out
}

func notice(n *screens.Notice) *noticeData {
	if n == nil {
		return nil
	}
	class := "notice-info"
	if n.Kind == screens.NoticeError {
		class = "notice-error"
	}
	return &noticeData{Class: class, Text: n.Text}
}
