package news

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wanhafiz/bursapulse/internal/models"
)

// markdownLink matches an inline markdown link: [text](url).
var markdownLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// parseAnnouncementsHTML extracts announcements from the exchange page's
// listing table. Expected row shape: date, company, title (linked),
// category. Rows missing a company or title are skipped.
func parseAnnouncementsHTML(r io.Reader) ([]models.Announcement, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse announcement page: %w", err)
	}

	announcements := make([]models.Announcement, 0)
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return // header or layout row
		}

		date := strings.TrimSpace(cells.Eq(0).Text())
		company := strings.TrimSpace(cells.Eq(1).Text())
		titleCell := cells.Eq(2)
		title := strings.TrimSpace(titleCell.Text())

		var category string
		if cells.Length() > 3 {
			category = strings.TrimSpace(cells.Eq(3).Text())
		}

		if company == "" || title == "" {
			return
		}

		link, _ := titleCell.Find("a").Attr("href")

		announcements = append(announcements, models.Announcement{
			Company:  company,
			Title:    title,
			Category: category,
			Date:     date,
			URL:      link,
		})
	})

	return announcements, nil
}

// parseAnnouncementsMarkdown extracts announcements from a scraped
// markdown rendering of the listing table. Row shape mirrors the HTML
// table: | date | company | [title](url) | category |.
func parseAnnouncementsMarkdown(markdown string) []models.Announcement {
	announcements := make([]models.Announcement, 0)

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") || strings.Contains(line, "---") {
			continue
		}

		cells := strings.Split(strings.Trim(line, "|"), "|")
		if len(cells) < 3 {
			continue
		}
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}

		title := cells[2]
		var link string
		if m := markdownLink.FindStringSubmatch(title); m != nil {
			title = m[1]
			link = m[2]
		}

		var category string
		if len(cells) > 3 {
			category = cells[3]
		}

		if cells[1] == "" || title == "" || strings.EqualFold(cells[1], "company") {
			continue // empty or header row
		}

		announcements = append(announcements, models.Announcement{
			Company:  cells[1],
			Title:    title,
			Category: category,
			Date:     cells[0],
			URL:      link,
		})
	}

	return announcements
}
