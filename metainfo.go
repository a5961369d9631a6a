package torrentinfo

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"github.com/bunsenmcdubbs/torrentinfo/bencoding"
	"io"
	"math"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// Defaults for optional fields that are absent from the metainfo.
const (
	UnknownName = "Unknown"
	NoAnnounce  = "N/A"
	NoComment   = "None"
)

const creationDateLayout = "2006-01-02 15:04:05"

type File struct {
	Path      string // path segments joined with "/"
	SizeBytes int64  // length
}

type CreationDate struct {
	Unix  int64
	Human string // local time, creationDateLayout
}

type PieceLayout struct {
	// Count is the byte length of info.pieces, not the number of 20-byte hashes in it.
	// Existing reports print this value, so it is kept as is. len(Metainfo.Hashes) is the
	// conventional piece count.
	Count     int
	SizeBytes int64 // info.piece length
}

// Metainfo is the read-only projection of a decoded torrent file.
type Metainfo struct {
	Name           string            // info.name
	Files          []File            // info.files, or one entry synthesized from info.name and info.length
	TotalSizeBytes int64             // sum of Files
	Pieces         *PieceLayout      // nil unless info.pieces and info.piece length are both usable
	Hashes         [][sha1.Size]byte // info.pieces split into hashes, nil unless its length is a multiple of 20
	Announce       []string          // announce
	AnnounceList   [][]string        // announce-list tiers, BEP 12
	CreationDate   *CreationDate     // creation date
	Comment        string            // comment
	Private        bool              // info.private == 1

	infoHash [sha1.Size]byte
}

// InfoHash is the SHA-1 of the canonical encoding of the info dictionary.
func (m Metainfo) InfoHash() [sha1.Size]byte {
	return m.infoHash
}

func (m Metainfo) InfoHashHex() string {
	return hex.EncodeToString(m.infoHash[:])
}

// LoadFile reads and parses the torrent file at path.
func LoadFile(path string) (Metainfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metainfo{}, err
	}
	meta, err := parse(raw)
	if err != nil {
		return Metainfo{}, fmt.Errorf("%s: %w", path, err)
	}
	return meta, nil
}

func ParseMetainfo(raw io.Reader) (Metainfo, error) {
	data, err := io.ReadAll(raw)
	if err != nil {
		return Metainfo{}, err
	}
	return parse(data)
}

func parse(data []byte) (Metainfo, error) {
	root, err := bencoding.Unmarshal(data)
	if err != nil {
		return Metainfo{}, err
	}
	return FromValue(root)
}

// FromValue projects a decoded root dictionary into a Metainfo.
func FromValue(root bencoding.Value) (Metainfo, error) {
	info, ok := root.Get("info")
	if !ok || info.Kind() != bencoding.Dict {
		return Metainfo{}, missingField("", "info")
	}

	var meta Metainfo
	var err error

	meta.Name, err = optionalString(info, "info", "name", UnknownName)
	if err != nil {
		return Metainfo{}, err
	}

	meta.Files, err = resolveFiles(info, meta.Name)
	if err != nil {
		return Metainfo{}, err
	}
	for _, f := range meta.Files {
		if f.SizeBytes > math.MaxInt64-meta.TotalSizeBytes {
			return Metainfo{}, invalidValue("info", "length")
		}
		meta.TotalSizeBytes += f.SizeBytes
	}

	pieces, hasPieces := bytesField(info, "pieces")
	pieceLength, hasPieceLength := intField(info, "piece length")
	if hasPieces && hasPieceLength && pieceLength > 0 {
		meta.Pieces = &PieceLayout{Count: len(pieces), SizeBytes: pieceLength}
	}
	if hasPieces && len(pieces)%sha1.Size == 0 {
		meta.Hashes = make([][sha1.Size]byte, len(pieces)/sha1.Size)
		for i := range meta.Hashes {
			copy(meta.Hashes[i][:], pieces[i*sha1.Size:(i+1)*sha1.Size])
		}
	}

	meta.Announce, err = resolveAnnounce(root)
	if err != nil {
		return Metainfo{}, err
	}
	meta.AnnounceList, err = resolveAnnounceList(root)
	if err != nil {
		return Metainfo{}, err
	}

	if v, ok := root.Get("creation date"); ok {
		ts, ok := v.Int()
		if !ok {
			return Metainfo{}, invalidValue("", "creation date")
		}
		meta.CreationDate = &CreationDate{
			Unix:  ts,
			Human: time.Unix(ts, 0).Local().Format(creationDateLayout),
		}
	}

	meta.Comment, err = optionalString(root, "", "comment", NoComment)
	if err != nil {
		return Metainfo{}, err
	}

	private, ok := intField(info, "private")
	meta.Private = ok && private == 1

	meta.infoHash = sha1.Sum(bencoding.Marshal(info))
	return meta, nil
}

// normalizeFiles returns the entries of info.files. A bare dictionary is treated as a one-entry
// list since some encoders omit the outer list for single-entry torrents.
func normalizeFiles(files bencoding.Value) ([]bencoding.Value, bool) {
	switch files.Kind() {
	case bencoding.List:
		l, _ := files.List()
		return l, true
	case bencoding.Dict:
		return []bencoding.Value{files}, true
	default:
		return nil, false
	}
}

func resolveFiles(info bencoding.Value, name string) ([]File, error) {
	files, ok := info.Get("files")
	if !ok {
		length, ok := intField(info, "length")
		if !ok {
			return nil, missingField("info", "length")
		}
		if length < 0 {
			return nil, invalidValue("info", "length")
		}
		return []File{{Path: name, SizeBytes: length}}, nil
	}

	entries, ok := normalizeFiles(files)
	if !ok {
		return nil, invalidValue("info", "files")
	}
	resolved := make([]File, 0, len(entries))
	for i, entry := range entries {
		context := fmt.Sprintf("info.files[%d]", i)
		if entry.Kind() != bencoding.Dict {
			return nil, invalidValue("info", "files")
		}
		path, err := resolvePath(entry, context)
		if err != nil {
			return nil, err
		}
		length, ok := intField(entry, "length")
		if !ok {
			return nil, missingField(context, "length")
		}
		if length < 0 {
			return nil, invalidValue(context, "length")
		}
		resolved = append(resolved, File{Path: path, SizeBytes: length})
	}
	return resolved, nil
}

func resolvePath(entry bencoding.Value, context string) (string, error) {
	v, ok := entry.Get("path")
	if !ok {
		return "", missingField(context, "path")
	}
	segments, ok := v.List()
	if !ok {
		return "", missingField(context, "path")
	}
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		s, ok := seg.Bytes()
		if !ok {
			return "", invalidValue(context, "path")
		}
		if !utf8.Valid(s) {
			return "", invalidEncoding(context, "path")
		}
		parts = append(parts, string(s))
	}
	return strings.Join(parts, "/"), nil
}

// resolveAnnounce accepts announce as either one URL or a list of URLs.
func resolveAnnounce(root bencoding.Value) ([]string, error) {
	v, ok := root.Get("announce")
	if !ok {
		return []string{NoAnnounce}, nil
	}
	if s, ok := v.Bytes(); ok {
		if !utf8.Valid(s) {
			return nil, invalidEncoding("", "announce")
		}
		return []string{string(s)}, nil
	}
	l, ok := v.List()
	if !ok {
		return nil, invalidValue("", "announce")
	}
	urls, err := stringList(l, "announce")
	if err != nil {
		return nil, err
	}
	return urls, nil
}

func resolveAnnounceList(root bencoding.Value) ([][]string, error) {
	v, ok := root.Get("announce-list")
	if !ok {
		return nil, nil
	}
	tiers, ok := v.List()
	if !ok {
		return nil, invalidValue("", "announce-list")
	}
	resolved := make([][]string, 0, len(tiers))
	for _, tier := range tiers {
		l, ok := tier.List()
		if !ok {
			return nil, invalidValue("", "announce-list")
		}
		urls, err := stringList(l, "announce-list")
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, urls)
	}
	return resolved, nil
}

func stringList(l []bencoding.Value, field string) ([]string, error) {
	out := make([]string, 0, len(l))
	for _, elem := range l {
		s, ok := elem.Bytes()
		if !ok {
			return nil, invalidValue("", field)
		}
		if !utf8.Valid(s) {
			return nil, invalidEncoding("", field)
		}
		out = append(out, string(s))
	}
	return out, nil
}

// optionalString returns def when key is absent. A present key must hold a valid UTF-8 string.
func optionalString(dict bencoding.Value, context, key, def string) (string, error) {
	v, ok := dict.Get(key)
	if !ok {
		return def, nil
	}
	s, ok := v.Bytes()
	if !ok {
		return "", invalidValue(context, key)
	}
	if !utf8.Valid(s) {
		return "", invalidEncoding(context, key)
	}
	return string(s), nil
}

func bytesField(dict bencoding.Value, key string) ([]byte, bool) {
	v, ok := dict.Get(key)
	if !ok {
		return nil, false
	}
	return v.Bytes()
}

func intField(dict bencoding.Value, key string) (int64, bool) {
	v, ok := dict.Get(key)
	if !ok {
		return 0, false
	}
	return v.Int()
}
