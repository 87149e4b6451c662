// Package document maps stored employee document paths to browsable URLs.
package document

import "strings"

type Type string

const (
	TypeOfferLetter Type = "offer-letter"
	TypeAadhaar     Type = "aadhaar"
	TypePAN         Type = "pan"
)

// UploadsRoot is the URL prefix all uploads are served from.
const UploadsRoot = "/uploads/"

var folders = map[Type]string{
	TypeOfferLetter: UploadsRoot + "offer-letters/",
	TypeAadhaar:     UploadsRoot + "aadhaar-cards/",
	TypePAN:         UploadsRoot + "pan-cards/",
}

// ParseType accepts the wire names of the document types.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	_, ok := folders[t]
	return t, ok
}

// Folder returns the upload folder for t, or UploadsRoot for unknown types.
func Folder(t Type) string {
	if f, ok := folders[t]; ok {
		return f
	}
	return UploadsRoot
}

// ResolveURL joins base with a stored path. Paths already under
// UploadsRoot are used verbatim; bare file names get the folder of t.
func ResolveURL(base, path string, t Type) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	base = strings.TrimRight(base, "/")
	if strings.HasPrefix(path, UploadsRoot) {
		return base + path
	}
	return base + Folder(t) + strings.TrimLeft(path, "/")
}
