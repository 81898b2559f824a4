// Package uriutil converts between file system paths and file:// URIs
package uriutil

import (
	"net/url"
	"path/filepath"
	"strings"
)

// PathToURI converts a file system path to a file:// URI.
// Relative paths are made absolute and each segment is percent-encoded:
//
//	/home/me/a b.js -> file:///home/me/a%20b.js
//	C:\proj         -> file:///C:/proj
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "file://" + strings.Join(segments, "/")
}

// URIToPath converts a file:// URI to a file system path, decoding percent
// escapes. URIs with another scheme, such as untitled:, are returned with
// any scheme prefix intact so they never match a workspace path.
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return uri
	}

	path := parsed.Path
	if parsed.Host != "" && parsed.Host != "localhost" {
		path = "//" + parsed.Host + path
	}

	// file:///C:/proj -> C:/proj
	if IsDrivePath(path) {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

// IsFileURI reports whether uri uses the file scheme
func IsFileURI(uri string) bool {
	return strings.HasPrefix(uri, "file:")
}

// IsDrivePath reports whether a slash path starts with a Windows drive,
// as in /C:/proj
func IsDrivePath(path string) bool {
	return len(path) >= 3 && path[0] == '/' && path[2] == ':' && isLetter(path[1])
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
