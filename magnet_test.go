package torrentinfo

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestMagnet(t *testing.T) {
	meta, err := ParseMetainfo(bytes.NewReader([]byte("d4:infod6:lengthi1e4:name1:aee")))
	require.NoError(t, err)
	assert.Equal(t, "magnet:?xt=urn:btih:8aa9d3c65b0164d222d9b2527a70f125668575ef", Magnet(meta, MagnetOptions{}))
	assert.Equal(t, "magnet:?xt=urn:btih:8aa9d3c65b0164d222d9b2527a70f125668575ef&dn=a", Magnet(meta, MagnetOptions{Full: true}))
}

func TestMagnet_Full(t *testing.T) {
	meta, err := LoadFile("testdata/multi.torrent")
	require.NoError(t, err)
	assert.Equal(t,
		"magnet:?xt=urn:btih:ba4eca2b5f7e30fe9417597deeec8b9983f41406"+
			"&dn=fixture"+
			"&tr=http%3A%2F%2Ftracker.example.org%2Fannounce"+
			"&tr=udp%3A%2F%2Fbackup.example.net%3A6969",
		Magnet(meta, MagnetOptions{Full: true}))
}

func TestMetainfo_Trackers(t *testing.T) {
	meta := Metainfo{
		Announce:     []string{NoAnnounce},
		AnnounceList: [][]string{{"http://a", "http://b"}, {"http://a"}},
	}
	assert.Equal(t, []string{"http://a", "http://b"}, meta.Trackers())
}
