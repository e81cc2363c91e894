package jacoco

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Index summarizes a JaCoCo index.html page.
type Index struct {
	// Title is the report title, usually the project name.
	Title string `yaml:"title" json:"title"`
	// Entries are the linked elements of the overview table, usually one
	// per package.
	Entries []IndexEntry `yaml:"entries" json:"entries"`
}

// IndexEntry is one linked row of the overview table.
type IndexEntry struct {
	// Name is the displayed element name.
	Name string `yaml:"name" json:"name"`
	// Href is the link target relative to the index page.
	Href string `yaml:"href" json:"href"`
}

// ParseIndex extracts the title and the linked table rows from a JaCoCo
// index page. Malformed markup degrades to a partial result.
func ParseIndex(r io.Reader) *Index {
	idx := &Index{}

	var (
		inTitle   bool
		inTbody   bool
		inRow     bool
		inCell    bool
		cellCount int
		cellHref  string
		cellText  strings.Builder
	)

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return idx

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "title":
				inTitle = true
			case "tbody":
				inTbody = true
			case "tr":
				if inTbody {
					inRow = true
					cellCount = 0
					cellHref = ""
					cellText.Reset()
				}
			case "td":
				if inRow {
					inCell = true
				}
			case "a":
				if inCell && cellCount == 0 {
					for hasAttr {
						var k, v []byte
						k, v, hasAttr = z.TagAttr()
						if string(k) == "href" {
							cellHref = string(v)
						}
					}
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "title":
				inTitle = false
			case "tbody":
				inTbody = false
			case "tr":
				if inRow {
					inRow = false
					// Rows with a single cell are headers or spacers.
					if cellCount >= 2 && linksToReportPage(cellHref) {
						idx.Entries = append(idx.Entries, IndexEntry{
							Name: strings.TrimSpace(cellText.String()),
							Href: cellHref,
						})
					}
				}
			case "td":
				if inCell {
					inCell = false
					cellCount++
				}
			}

		case html.TextToken:
			if inTitle && idx.Title == "" {
				idx.Title = strings.TrimSpace(string(z.Text()))
			}
			if inCell && cellCount == 0 {
				cellText.Write(z.Text())
			}
		}
	}
}

func linksToReportPage(href string) bool {
	return href != "" && (strings.HasSuffix(href, ".html") || strings.Contains(href, "/"))
}
