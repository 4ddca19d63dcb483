// Package extractors provides the registry that maps files to the
// driven.Extractor able to read them, plus the default set of extractors.
//
// Each sub-package knows how to turn one document format into plain text:
//
//   - tabular: CSV and XLSX spreadsheets
//   - pdf: paginated documents
//   - docx: word-processing documents
//   - pptx: slide decks (deadline-guarded)
//   - html: web pages (deadline-guarded)
//   - image: raster images through OCR (deadline-guarded)
//   - plaintext: text and Markdown
package extractors
