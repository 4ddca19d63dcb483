// Package ooxml reads text out of Office Open XML parts. WordprocessingML
// (w:p, w:t) and DrawingML (a:p, a:t) share the same local element names,
// so one reader serves documents and slide decks.
package ooxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Paragraphs returns the text of every non-empty paragraph in part, in
// document order. Text runs are concatenated. Tabs within runs and line
// breaks inside a paragraph are kept.
func Paragraphs(part io.Reader) ([]string, error) {
	dec := xml.NewDecoder(part)

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
		runDepth   int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "r":
				runDepth++
			case "tab":
				// Tab stops in paragraph properties share the name.
				if runDepth > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "p":
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	// Text outside any paragraph still counts.
	if text := strings.TrimSpace(current.String()); text != "" {
		paragraphs = append(paragraphs, text)
	}
	return paragraphs, nil
}
