// =============================================================================
// Blind Receiving Highlighter - Report Parser Module
// =============================================================================
//
// This module reads blind receiving report exports (.rpt) into memory as a
// list of lines and writes the intermediate plain text copy.
//
// FEATURES:
//   - Character encoding conversion (UTF-8, UTF-16, Windows-1252, Latin-1)
//   - Byte order mark detection for UTF-8 and UTF-16 exports
//   - CRLF and LF line endings
//
// The whole report is read at once; the classifier needs random access to
// every line.
//
// =============================================================================

package rptparser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/blind-receiver-highlighter/internal/config"
)

// maxLineLength bounds a single report line.
const maxLineLength = 1024 * 1024

// =============================================================================
// REPORT DATA STRUCTURE
// =============================================================================

// Report represents a parsed report file.
type Report struct {
	// Lines holds the report text, one entry per line, without line endings.
	Lines []string

	// SourceFile is the path to the source report.
	SourceFile string

	// Encoding is the encoding the report was decoded with.
	Encoding string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a report file and returns its lines.
//
// PARAMETERS:
//   - filePath: The path to the report file.
//   - settings: The intake settings from the main configuration.
//
// RETURNS:
//   - A pointer to the Report struct.
//   - An error if the file cannot be opened or decoded.
func Parse(filePath string, settings config.IntakeSettings) (*Report, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer file.Close()

	lines, err := ReadLines(file, settings.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", filepath.Base(filePath), err)
	}

	return &Report{
		Lines:      lines,
		SourceFile: filePath,
		Encoding:   settings.Encoding,
	}, nil
}

// ReadLines decodes r and splits it into lines. Carriage returns before
// line feeds are dropped.
func ReadLines(r io.Reader, encoding string) ([]string, error) {
	decoder, err := decoderFor(encoding)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	return lines, nil
}

// decoderFor returns the transformer for a configured encoding name.
func decoderFor(encoding string) (transform.Transformer, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// =============================================================================
// INTERMEDIATE TEXT COPY
// =============================================================================

// WriteText writes lines as a UTF-8 text file, creating the parent
// directory if needed.
//
// PARAMETERS:
//   - path: The destination file.
//   - lines: The report lines.
//
// RETURNS:
//   - An error if the file cannot be written.
func WriteText(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create text copy: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write text copy: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush text copy: %w", err)
	}
	return nil
}
