// Package ingest reads review columns from CSV files in UTF-8, Shift_JIS or
// EUC-JP.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tsawler/kansou"
)

var (
	// ErrMissingColumn is returned when the header row lacks the requested
	// column. It is a configuration error.
	ErrMissingColumn = errors.New("column not found")
	// ErrUndecodable is returned when no supported encoding decodes a file
	// cleanly.
	ErrUndecodable = errors.New("unsupported character encoding")
)

// Encodings tried, in order, after UTF-8.
var fallbacks = []struct {
	name string
	enc  encoding.Encoding
}{
	{"shift_jis", japanese.ShiftJIS},
	{"euc-jp", japanese.EUCJP},
}

// Decode converts data to UTF-8 and reports the encoding it was read as. A
// UTF-8 byte order mark is removed.
//
// EUC-JP bytes often decode without error as Shift_JIS half-width katakana,
// so among the legacy encodings that decode cleanly the one producing the
// fewest half-width katakana wins.
func Decode(data []byte) (text, name string, err error) {
	if utf8.Valid(data) {
		out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
		if err != nil {
			return "", "", fmt.Errorf("decoding utf-8: %w", err)
		}
		return string(out), "utf-8", nil
	}
	best := -1
	for _, fb := range fallbacks {
		out, _, err := transform.Bytes(fb.enc.NewDecoder(), data)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			continue
		}
		if n := halfWidthKana(out); best < 0 || n < best {
			best, text, name = n, string(out), fb.name
		}
	}
	if best < 0 {
		return "", "", ErrUndecodable
	}
	return text, name, nil
}

func halfWidthKana(b []byte) int {
	n := 0
	for _, r := range string(b) {
		if r >= 0xFF61 && r <= 0xFF9F {
			n++
		}
	}
	return n
}

// ReadColumn returns every value of column in the CSV file at path, in row
// order. The first row is the header.
func ReadColumn(path, column string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	text, _, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return readColumn(strings.NewReader(text), path, column)
}

func readColumn(r io.Reader, path, column string) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w: %q (empty file)", path, ErrMissingColumn, column)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	idx := -1
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w: %q (have %v)", path, ErrMissingColumn, column, header)
	}

	var values []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
		if idx < len(rec) {
			values = append(values, rec[idx])
		} else {
			values = append(values, "")
		}
	}
	return values, nil
}

// Source names the CSV column holding one title's documents.
type Source struct {
	Title  string
	Path   string
	Column string
}

// Load reads every source and returns the documents in source order. IDs
// follow insertion order across all sources.
func Load(sources []Source) ([]kansou.Document, error) {
	var docs []kansou.Document
	for _, src := range sources {
		values, err := ReadColumn(src.Path, src.Column)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", src.Title, err)
		}
		for _, v := range values {
			docs = append(docs, kansou.NewDocument(len(docs), src.Title, v))
		}
	}
	return docs, nil
}
