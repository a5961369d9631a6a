package torrentinfo

import (
	"net/url"
	"strings"
)

type MagnetOptions struct {
	// Full adds the display name and every known tracker to the link.
	Full bool
}

// Magnet renders the magnet URI for m, without a trailing newline.
func Magnet(m Metainfo, opts MagnetOptions) string {
	link := "magnet:?xt=urn:btih:" + m.InfoHashHex()
	if !opts.Full {
		return link
	}

	var b strings.Builder
	b.WriteString(link)
	b.WriteString("&dn=")
	b.WriteString(url.QueryEscape(m.Name))
	for _, tr := range m.Trackers() {
		b.WriteString("&tr=")
		b.WriteString(url.QueryEscape(tr))
	}
	return b.String()
}

// Trackers returns announce followed by every announce-list URL, without duplicates.
func (m Metainfo) Trackers() []string {
	seen := map[string]bool{}
	var trackers []string
	add := func(u string) {
		if u == "" || u == NoAnnounce || seen[u] {
			return
		}
		seen[u] = true
		trackers = append(trackers, u)
	}
	for _, u := range m.Announce {
		add(u)
	}
	for _, tier := range m.AnnounceList {
		for _, u := range tier {
			add(u)
		}
	}
	return trackers
}
