package jacoco

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// defaultBranchInfo describes a partially covered line when the report
// carries no title attribute for it.
const defaultBranchInfo = "Partially covered"

// ScanPage scans one JaCoCo per-class source page and returns the missed
// branches and uncovered lines it lists, in source-line order.
//
// JaCoCo renders each source line as a span inside a pre element, with the
// line number in the id attribute (L1, L2, ...) and the coverage state in
// the class attribute: pc marks partial branch coverage, nc marks a line
// never executed. The two markers are checked independently; a line
// carrying both contributes to both lists.
//
// The page is consumed in a single forward pass. Any scan or read error
// yields two empty lists so that one broken page cannot abort a whole
// report run.
func ScanPage(r io.Reader, className string) ([]MissedBranch, []UncoveredLine) {
	var branches []MissedBranch
	var lines []UncoveredLine

	var (
		inPre     bool
		tracking  bool
		spanDepth int
		lineNum   int
		marker    string
		title     string
		text      strings.Builder
	)

	emit := func() {
		content := strings.TrimSpace(text.String())
		if content == "" {
			return
		}

		if strings.Contains(marker, "pc") {
			info := title
			if info == "" {
				info = defaultBranchInfo
			}
			branches = append(branches, MissedBranch{
				Class:      className,
				Line:       lineNum,
				BranchInfo: info,
				Source:     content,
			})
		}

		if strings.Contains(marker, "nc") {
			lines = append(lines, UncoveredLine{
				Class:  className,
				Line:   lineNum,
				Source: content,
			})
		}
	}

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return branches, lines
			}
			return nil, nil

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "pre":
				inPre = true
			case "span":
				if !inPre {
					continue
				}
				if tracking {
					// Nested span within the line; its text still counts.
					spanDepth++
					continue
				}

				var id, class, spanTitle string
				for hasAttr {
					var k, v []byte
					k, v, hasAttr = z.TagAttr()
					switch string(k) {
					case "id":
						id = string(v)
					case "class":
						class = string(v)
					case "title":
						spanTitle = string(v)
					}
				}

				if n, ok := parseLineID(id); ok {
					tracking = true
					spanDepth = 0
					lineNum = n
					marker = class
					title = spanTitle
					text.Reset()
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "pre":
				// JaCoCo closes line spans inside the pre block, so an
				// open one here is abandoned without emitting.
				inPre = false
				tracking = false
			case "span":
				if !tracking {
					continue
				}
				if spanDepth > 0 {
					spanDepth--
					continue
				}
				tracking = false
				emit()
			}

		case html.TextToken:
			if tracking && inPre {
				text.Write(z.Text())
			}
		}
	}
}

// parseLineID extracts the line number from a span id of the form L<digits>.
func parseLineID(id string) (int, bool) {
	if len(id) < 2 || id[0] != 'L' {
		return 0, false
	}
	for i := 1; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(id[1:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
