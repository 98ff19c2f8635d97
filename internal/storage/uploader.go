// Package storage is the file upload gateway: review images go to object
// storage under date-partitioned keys and come back as public URLs.
package storage

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ReviewImagePrefix = "static/reviewImage"
	ImagePrefix       = "static/image"
)

type Uploader interface {
	// Upload stores file under dirName and returns its public URL. A nil
	// file returns savedURL untouched without any network call.
	Upload(ctx context.Context, file *multipart.FileHeader, dirName, savedURL string, orderFoodID *int64) (string, error)
	// Delete removes an object previously returned by Upload.
	Delete(ctx context.Context, url string) error
}

// DirName builds the date partition, e.g. static/image/20261019.
func DirName(prefix string, t time.Time) string {
	return prefix + "/" + t.Format("20060102")
}

// ObjectKey names a new object inside dirName. The order food id, when
// known, prefixes the file name so images of one order sort together.
func ObjectKey(dirName, filename string, orderFoodID *int64) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext
	if orderFoodID != nil {
		name = fmt.Sprintf("%d_%s", *orderFoodID, name)
	}
	return strings.TrimRight(dirName, "/") + "/" + name
}

// BelongsToOrderFood reports whether rawURL names an object uploaded for
// orderFoodID, i.e. one of our image directories holding a file named
// "<orderFoodID>_...". Anything else may be shared and must not be deleted
// on behalf of that order food.
func BelongsToOrderFood(rawURL string, orderFoodID int64) bool {
	u, err := url.Parse(rawURL)
	if err != nil || orderFoodID <= 0 {
		return false
	}
	dir, name := path.Split(u.Path)
	if !strings.HasPrefix(name, fmt.Sprintf("%d_", orderFoodID)) {
		return false
	}
	return strings.Contains(dir, "/"+ReviewImagePrefix+"/") || strings.Contains(dir, "/"+ImagePrefix+"/")
}

func contentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
