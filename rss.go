package presskit

import (
	"bytes"
	"encoding/xml"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// RenderRSS produces the RSS 2.0 feed for the given routes. It is a pure
// function of (config, routes) so the build and the serve handler emit
// identical bytes.
func RenderRSS(cfg SiteConfig, routes []Route) ([]byte, error) {
	base := cfg.URL
	items := make([]rssItem, 0, len(routes))
	for _, r := range routes {
		pubDate := ""
		if t, err := time.Parse("2006-01-02", r.Doc.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := BuildURL(base, "blog", r.Doc.Slug)
		items = append(items, rssItem{
			Title:       r.Doc.Title,
			Link:        postURL,
			Description: r.Doc.Abstract,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        base,
			Description: cfg.Description,
			Items:       items,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(feed); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
