package iconpack

import (
	"bytes"
	"strings"
)

// SVGMimeType is the only MIME type accepted for dropped icon files.
const SVGMimeType = "image/svg+xml"

// IsSVGContent sniffs whether content is an SVG document: optional byte
// order mark, XML declaration, comments and doctype, then an <svg> root.
func IsSVGContent(content []byte) bool {
	rest := bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	rest = bytes.TrimLeft(rest, " \t\r\n")

	for {
		switch {
		case hasFoldPrefix(rest, "<?"):
			end := bytes.Index(rest, []byte("?>"))
			if end < 0 {
				return false
			}
			rest = rest[end+2:]
		case hasFoldPrefix(rest, "<!--"):
			end := bytes.Index(rest, []byte("-->"))
			if end < 0 {
				return false
			}
			rest = rest[end+3:]
		case hasFoldPrefix(rest, "<!"):
			end := bytes.IndexByte(rest, '>')
			if end < 0 {
				return false
			}
			rest = rest[end+1:]
		default:
			rest = bytes.TrimLeft(rest, " \t\r\n")
			if !hasFoldPrefix(rest, "<svg") {
				return false
			}
			after := rest[4:]
			return len(after) == 0 || after[0] == ' ' || after[0] == '\t' ||
				after[0] == '\r' || after[0] == '\n' || after[0] == '>' || after[0] == '/'
		}
		rest = bytes.TrimLeft(rest, " \t\r\n")
	}
}

// MimeTypeFor returns the MIME type this registry assigns to a file, judged
// by extension first and content second.
func MimeTypeFor(name string, content []byte) string {
	if strings.EqualFold(strings.TrimPrefix(ext(name), "."), "svg") {
		return SVGMimeType
	}
	if IsSVGContent(content) {
		return SVGMimeType
	}
	return "text/plain"
}

func ext(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}

func hasFoldPrefix(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	return strings.EqualFold(string(b[:len(prefix)]), prefix)
}
