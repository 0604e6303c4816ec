package doc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// wordDocument mirrors the slice of word/document.xml the decoder needs.
// encoding/xml matches on local names, so the w: prefix is irrelevant.
type wordDocument struct {
	Body struct {
		Paragraphs []wordParagraph `xml:"p"`
		Tables     []wordTable     `xml:"tbl"`
	} `xml:"body"`
}

type wordParagraph struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Text []wordText `xml:"t"`
}

type wordText struct {
	Value string `xml:",chardata"`
}

type wordTable struct {
	Rows []wordRow `xml:"tr"`
}

type wordRow struct {
	Cells []wordCell `xml:"tc"`
}

type wordCell struct {
	Paragraphs []wordParagraph `xml:"p"`
}

// decodeDOCX reads word/document.xml out of the OOXML container and emits
// one line per non-empty block: body paragraphs first, then table cells.
func decodeDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	var raw []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		raw, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		break
	}
	if raw == nil {
		return "", errors.New("no word/document.xml in archive")
	}

	var docx wordDocument
	if err := xml.Unmarshal(raw, &docx); err != nil {
		return "", fmt.Errorf("parse document.xml: %w", err)
	}

	var parts []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	for _, p := range docx.Body.Paragraphs {
		add(paragraphText(p))
	}
	for _, tbl := range docx.Body.Tables {
		for _, row := range tbl.Rows {
			for _, cell := range row.Cells {
				lines := make([]string, 0, len(cell.Paragraphs))
				for _, p := range cell.Paragraphs {
					lines = append(lines, paragraphText(p))
				}
				add(strings.Join(lines, "\n"))
			}
		}
	}
	return strings.Join(parts, "\n"), nil
}

func paragraphText(p wordParagraph) string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Value)
		}
	}
	return b.String()
}
