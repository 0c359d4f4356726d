package soc

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Pjt727/soc/collection/schedule"
	"github.com/Pjt727/soc/collection/services"
)

var departmentCode = regexp.MustCompile(`\((.*?)\)`)

// Page is everything the parser needs from one results page.
type Page struct {
	Tokens []schedule.Token
	// anchor text of instructor mailto links -> address
	Emails map[string]string
	// department in effect at the end of the page, listings continue across pages
	Department string
}

// Extract classifies the table rows of one results page.
// department is the department left in effect by the previous page.
func Extract(raw []byte, department string) (Page, error) {
	page := Page{Emails: map[string]string{}, Department: department}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return page, errors.Join(services.ErrIncorrectAssumption, err)
	}

	var extractErr error
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		text := rowText(row)

		if heading := row.Find("td h2").First(); heading.Length() > 0 {
			if match := departmentCode.FindStringSubmatch(heading.Text()); match != nil {
				page.Department = match[1]
			}
		}

		if strings.Contains(text, "Units") {
			if page.Department == "" {
				extractErr = errors.Join(services.ErrIncorrectAssumption,
					errors.New("course header before any department heading: "+text))
				return false
			}
			header, _, _ := strings.Cut(text, " Prereq")
			page.Tokens = append(page.Tokens,
				schedule.Sentinel(),
				schedule.HeaderToken(page.Department, header),
			)
			return true
		}

		class, ok := firstClass(row)
		if !ok {
			return true
		}
		switch {
		case strings.Contains(class, "nonenrtxt") &&
			(strings.Contains(text, "FI") || strings.Contains(text, "MI")):
			page.Tokens = append(page.Tokens, schedule.ExamToken(text))
		case strings.Contains(class, "sectxt") && !strings.Contains(text, "Cancelled"):
			email := ""
			if anchor := row.Find("a[href^='mailto:']").First(); anchor.Length() > 0 {
				href, _ := anchor.Attr("href")
				email = strings.TrimPrefix(href, "mailto:")
				if name := normalize(anchor.Text()); name != "" && email != "" {
					if _, seen := page.Emails[name]; !seen {
						page.Emails[name] = email
					}
				}
			}
			page.Tokens = append(page.Tokens, schedule.SectionToken(text, email))
		}
		return true
	})

	return page, extractErr
}

func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// rowText joins the cells of a row with single spaces so adjacent cells
// never run together
func rowText(row *goquery.Selection) string {
	cells := row.ChildrenFiltered("td,th")
	if cells.Length() == 0 {
		return normalize(row.Text())
	}
	parts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		if text := normalize(cell.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

func firstClass(row *goquery.Selection) (string, bool) {
	classes := strings.Fields(row.AttrOr("class", ""))
	if len(classes) == 0 {
		return "", false
	}
	return classes[0], true
}
