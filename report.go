package torrentinfo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	unknownDate  = "Unknown"
	notAvailable = "N/A"
)

type SummaryOptions struct {
	// SourceName is shown in the header line, usually the torrent file's base name.
	// The header is omitted when empty.
	SourceName string
}

// Summary renders the detail report for m. Every line ends in "\n".
func Summary(m Metainfo, opts SummaryOptions) string {
	var b strings.Builder
	if opts.SourceName != "" {
		fmt.Fprintf(&b, "- - - - - Details for %s: - - - - -\n\n", opts.SourceName)
	}

	created, createdUnix := unknownDate, int64(0)
	if m.CreationDate != nil {
		created, createdUnix = m.CreationDate.Human, m.CreationDate.Unix
	}
	pieceCount, pieceSize := notAvailable, notAvailable
	if m.Pieces != nil {
		pieceCount, pieceSize = strconv.Itoa(m.Pieces.Count), FormatSize(m.Pieces.SizeBytes)
	}

	fmt.Fprintf(&b, "Name: %s\n", m.Name)
	fmt.Fprintf(&b, "Torrent creation date: %s (Unix timestamp: %d)\n", created, createdUnix)
	fmt.Fprintf(&b, "Number of files: %d\n", len(m.Files))
	fmt.Fprintf(&b, "Total size: %s\n", FormatSize(m.TotalSizeBytes))
	fmt.Fprintf(&b, "Torrent infohash: %s\n", m.InfoHashHex())
	fmt.Fprintf(&b, "Number of Pieces: %s (x %s)\n", pieceCount, pieceSize)
	b.WriteString("\nAnnounce URL(s):\n")
	for _, u := range m.Announce {
		fmt.Fprintf(&b, "%s\n", u)
	}
	fmt.Fprintf(&b, "Comment: %s\n", m.Comment)
	fmt.Fprintf(&b, "\nPrivate?: %t\n", m.Private)
	return b.String()
}

type SizeStyle int

const (
	SizeHuman  SizeStyle = iota // "path (1.50 MB)"
	SizeBytes                   // "path (1572864 bytes)"
	SizeHidden                  // "path"
)

type FileListOptions struct {
	SortBySize    bool // largest first unless SmallestFirst is set
	SmallestFirst bool
	Sizes         SizeStyle
}

// SortFiles returns a sorted copy of files: by path by default, otherwise by size.
// Files of equal size keep their relative order.
func SortFiles(files []File, opts FileListOptions) []File {
	sorted := make([]File, len(files))
	copy(sorted, files)
	switch {
	case !opts.SortBySize:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })
	case opts.SmallestFirst:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SizeBytes < sorted[j].SizeBytes })
	default:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SizeBytes > sorted[j].SizeBytes })
	}
	return sorted
}

// FileList renders one line per file of m, ordered by SortFiles.
func FileList(m Metainfo, opts FileListOptions) string {
	var b strings.Builder
	for _, f := range SortFiles(m.Files, opts) {
		switch opts.Sizes {
		case SizeHidden:
			fmt.Fprintf(&b, "%s\n", f.Path)
		case SizeBytes:
			fmt.Fprintf(&b, "%s (%d bytes)\n", f.Path, f.SizeBytes)
		default:
			fmt.Fprintf(&b, "%s (%s)\n", f.Path, FormatSize(f.SizeBytes))
		}
	}
	return b.String()
}
