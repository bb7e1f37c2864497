// Package parsers maps file extensions to format-specific parsers and
// the splitter each format uses. Individual formats live in
// subpackages; this package holds the registry the pipeline consults.
package parsers
