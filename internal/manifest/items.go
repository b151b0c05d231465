package manifest

import (
	"net/url"
	"path"
	"strings"

	"github.com/lehigh-university-libraries/microarchive/internal/ead"
)

// DefaultThumbDir marks generated thumbnails, which are not items.
const DefaultThumbDir = ".thumb"

// Options control how storage keys become items.
type Options struct {
	// Prefix is the storage prefix of the dataset; it is removed from keys.
	// A missing trailing slash is added.
	Prefix string
	// IIIFServerURL is the image server base, e.g. "https://iiif.example.org/iiif/2/".
	IIIFServerURL string
	// ThumbDir is the marker for thumbnail keys. Defaults to DefaultThumbDir.
	ThumbDir string
}

// Items converts a listing to item inputs, keeping listing order.
func Items(objects []Object, opts Options) []ead.ItemInput {
	items := make([]ead.ItemInput, 0, len(objects))
	for _, obj := range objects {
		if item, ok := ItemFromKey(obj.Key, opts); ok {
			items = append(items, item)
		}
	}
	return items
}

// ItemFromKey derives an item from one storage key. Folder markers,
// thumbnails and keys outside the prefix are skipped.
//
// The identifier is the key without the prefix and without its extension:
//
//	prefix "letters/", key "letters/box1/scan 01.jpg" -> "box1/scan 01"
func ItemFromKey(key string, opts Options) (ead.ItemInput, bool) {
	thumbDir := opts.ThumbDir
	if thumbDir == "" {
		thumbDir = DefaultThumbDir
	}

	if key == "" || strings.HasSuffix(key, "/") || strings.Contains(key, thumbDir) {
		return ead.ItemInput{}, false
	}
	prefix := opts.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if !strings.HasPrefix(key, prefix) {
		return ead.ItemInput{}, false
	}

	id := strings.TrimSuffix(key, path.Ext(key))
	id = strings.TrimPrefix(id, prefix)
	if id == "" {
		return ead.ItemInput{}, false
	}

	return ead.ItemInput{
		Identifier:   id,
		ResourceURL:  ImageURL(opts.IIIFServerURL, key),
		ThumbnailURL: ThumbnailURL(opts.IIIFServerURL, key),
	}, true
}

// ImageURL is the IIIF Image API URL for the full image.
func ImageURL(server, key string) string {
	return server + url.QueryEscape(key) + "/full/max/0/default.jpg"
}

// ThumbnailURL is the IIIF Image API URL for a 75x100 thumbnail.
func ThumbnailURL(server, key string) string {
	return server + url.QueryEscape(key) + "/full/!75,100/0/default.jpg"
}
