package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"io/fs"
	"sync"

	"go.uber.org/zap"
)

// Asset paths relative to the static filesystem root
const (
	LandingCSS      = "css/landing.css"
	ConsultationJS  = "js/consultation.js"
	defaultVersion  = "1"
	versionHashSize = 8
)

var (
	assetVersions     = make(map[string]string)
	assetVersionsMu   sync.RWMutex
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(fsys fs.FS, log *zap.Logger) {
	assetVersionsOnce.Do(func() {
		loadAssetVersions(fsys, log)
	})
}

func loadAssetVersions(fsys fs.FS, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	versions := make(map[string]string)
	for _, path := range []string{LandingCSS, ConsultationJS} {
		version, err := computeFileHash(fsys, path)
		if err != nil {
			log.Warn("failed to hash asset", zap.String("path", path), zap.Error(err))
			version = defaultVersion
		}
		versions[path] = version
	}

	assetVersionsMu.Lock()
	assetVersions = versions
	assetVersionsMu.Unlock()

	log.Info("asset versions initialized",
		zap.String("css", versions[LandingCSS]),
		zap.String("js", versions[ConsultationJS]))
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(fsys fs.FS, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil))[:versionHashSize], nil
}

// AssetVersion returns the cache-busting version of path, "1" if unknown
func AssetVersion(path string) string {
	assetVersionsMu.RLock()
	defer assetVersionsMu.RUnlock()
	if v, ok := assetVersions[path]; ok && v != "" {
		return v
	}
	return defaultVersion
}

// GetCSSVersion returns the stylesheet version for templates.
// ctx is unused; it keeps the signature in line with the other template helpers.
func GetCSSVersion(ctx context.Context) string {
	return AssetVersion(LandingCSS)
}

// GetConsultationJSVersion returns the form script version for templates
func GetConsultationJSVersion(ctx context.Context) string {
	return AssetVersion(ConsultationJS)
}
