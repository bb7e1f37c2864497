package domain

import (
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// File represents a source file queued for ingestion, together with
// the access control metadata that must be echoed onto every index
// document produced from it.
//
// The file's identity is derived deterministically from its name and
// access control set, so re-ingesting an unchanged file produces the
// same index document ids and overwrites rather than duplicates.
type File struct {
	// Content is the raw byte stream. The pipeline closes it after
	// all sections derived from the file have been indexed.
	Content io.ReadCloser

	// Name is the file's path or name as reported by the lister.
	Name string

	// ACLs maps a principal kind ("oids", "groups") to principal ids
	// permitted to read documents derived from this file.
	ACLs map[string][]string

	// URL is the file's origin or storage location, if known.
	URL string
}

var nonIDChars = regexp.MustCompile(`[^0-9a-zA-Z_-]`)

// Filename returns the base filename without any directory path.
func (f *File) Filename() string {
	return filepath.Base(f.Name)
}

// Extension returns the file extension including the leading dot,
// lowercased for registry lookup.
func (f *File) Extension() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// ID returns the deterministic, content-addressable identity used as
// the index document key prefix. Two files with the same name and the
// same access control set always produce the same id.
func (f *File) ID() string {
	name := f.Filename()
	ascii := nonIDChars.ReplaceAllString(name, "_")
	nameHash := strings.ToUpper(hex.EncodeToString([]byte(name)))
	if len(f.ACLs) == 0 {
		return fmt.Sprintf("file-%s-%s", ascii, nameHash)
	}
	aclHash := strings.ToUpper(hex.EncodeToString([]byte(canonicalACLs(f.ACLs))))
	return fmt.Sprintf("file-%s-%s%s", ascii, nameHash, aclHash)
}

// Close releases the underlying content stream if present.
func (f *File) Close() error {
	if f == nil || f.Content == nil {
		return nil
	}
	return f.Content.Close()
}

// canonicalACLs renders the ACL map in a stable order so the derived
// id does not depend on map iteration order.
func canonicalACLs(acls map[string][]string) string {
	kinds := make([]string, 0, len(acls))
	for kind := range acls {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	var b strings.Builder
	for _, kind := range kinds {
		fmt.Fprintf(&b, "%s:[%s];", kind, strings.Join(acls[kind], ","))
	}
	return b.String()
}

// SourcePageFromFilePage returns the human-readable locator stored in
// the sourcepage index field. PDF pages get a one-based page fragment
// so citations can deep link; other formats cite the file itself.
func SourcePageFromFilePage(filename string, page int) string {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return fmt.Sprintf("%s#page=%d", filepath.Base(filename), page+1)
	}
	return filepath.Base(filename)
}

// PageImageName returns the stored name for a rendered page image.
func PageImageName(filename string, page int) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s-%d.png", stem, page)
}
