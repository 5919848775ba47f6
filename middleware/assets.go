package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Static assets referenced from the page layout, relative to the working directory
const (
	SiteCSSPath    = "static/css/site.css"
	WaitlistJSPath = "static/js/waitlist.js"
	FaviconPath    = "static/images/favicon.svg"
)

var (
	assetVersions     map[string]string
	assetVersionsMu   sync.RWMutex
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions() {
	assetVersionsOnce.Do(func() {
		versions := make(map[string]string)
		for _, path := range []string{SiteCSSPath, WaitlistJSPath, FaviconPath} {
			if version := computeFileHash(path); version != "" {
				versions[path] = version
			}
		}

		assetVersionsMu.Lock()
		assetVersions = versions
		assetVersionsMu.Unlock()
		log.Printf("[INFO] Asset versions initialized: %d files", len(versions))
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	// Return first 8 chars of the hash for brevity
	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetAssetVersion returns the version hash of a static file, or "1" when unknown.
// The ctx parameter keeps the signature in line with the other template helpers.
func GetAssetVersion(ctx context.Context, path string) string {
	assetVersionsMu.RLock()
	defer assetVersionsMu.RUnlock()
	if version, ok := assetVersions[filepath.ToSlash(path)]; ok {
		return version
	}
	return "1"
}

// AssetURL returns "/<path>?v=<hash>" for a static file
func AssetURL(ctx context.Context, path string) string {
	return "/" + path + "?v=" + GetAssetVersion(ctx, path)
}
