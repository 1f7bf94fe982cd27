// Package csvwriter serializes conversion jobs to one or more CSV files.
//
// Every header cell and every field is quoted unconditionally. The standard
// encoding/csv writer only quotes when a field requires it, so the quoting
// is done here; embedded quotes are doubled per RFC 4180 and rows end in
// CRLF. Quote-all output stays unambiguous for downstream loaders whatever
// the values contain.
package csvwriter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"json2csv/internal/errors"
	"json2csv/internal/models"
)

const lineTerminator = "\r\n"

// Write serializes job to outputPath. A maxRowsPerFile of 0 disables
// splitting; a positive value partitions the records into contiguous chunks
// of at most that many rows, each written to its own numbered file with the
// full header. Files are opened, written and closed one at a time; chunks
// already written when a later chunk fails stay on disk.
func Write(job *models.ConversionJob, outputPath string, maxRowsPerFile int) (*models.WriteResult, error) {
	if maxRowsPerFile < 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("invalid max rows per file %d", maxRowsPerFile),
			errors.ErrInvalidMaxRows,
		)
	}

	total := len(job.Records)
	numChunks := 1
	if maxRowsPerFile > 0 && total > maxRowsPerFile {
		numChunks = (total + maxRowsPerFile - 1) / maxRowsPerFile
	}

	result := &models.WriteResult{TotalRows: total}

	// A chunk count of 1 always writes the original path with no suffix,
	// including when splitting was requested but the threshold covers every
	// record.
	if numChunks == 1 {
		if err := writeFile(outputPath, job.OrderedKeys, job.Records); err != nil {
			return nil, err
		}
		result.FileCount = 1
		result.Files = []string{outputPath}
		return result, nil
	}

	dir := filepath.Dir(outputPath)
	ext := filepath.Ext(outputPath)
	base := strings.TrimSuffix(filepath.Base(outputPath), ext)

	for i := 0; i < numChunks; i++ {
		start := i * maxRowsPerFile
		end := start + maxRowsPerFile
		if end > total {
			end = total
		}
		chunkPath := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i+1, ext))
		if err := writeFile(chunkPath, job.OrderedKeys, job.Records[start:end]); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, chunkPath)
	}
	result.FileCount = numChunks
	return result, nil
}

// writeFile writes one CSV file: a header row followed by one row per
// record. Keys missing from a record render as empty fields, so every row
// has exactly len(orderedKeys) fields.
func writeFile(path string, orderedKeys []string, records []*models.FlatRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to create output file '%s'", path), err)
	}

	writer := bufio.NewWriter(file)
	writeRow(writer, orderedKeys)
	fields := make([]string, len(orderedKeys))
	for _, record := range records {
		for i, key := range orderedKeys {
			value, ok := record.Get(key)
			if ok {
				fields[i] = renderScalar(value)
			} else {
				fields[i] = ""
			}
		}
		writeRow(writer, fields)
	}

	// bufio defers write errors until Flush, so the error checks happen
	// here and on Close.
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return errors.NewOutputError(fmt.Sprintf("failed to write output file '%s'", path), err)
	}
	if err := file.Close(); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to close output file '%s'", path), err)
	}
	return nil
}

func writeRow(writer *bufio.Writer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			_ = writer.WriteByte(',')
		}
		_, _ = writer.WriteString(quoteField(field))
	}
	_, _ = writer.WriteString(lineTerminator)
}

// quoteField wraps a field in double quotes, doubling any embedded quotes.
func quoteField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// renderScalar converts a scalar value to its output text. Numbers keep
// their original JSON text; null renders as the empty string, the same as a
// missing key.
func renderScalar(value models.Value) string {
	switch v := value.(type) {
	case models.String:
		return string(v)
	case models.Number:
		return string(v)
	case models.Bool:
		return strconv.FormatBool(bool(v))
	case models.Null:
		return ""
	case models.Object, models.Array:
		// Flattening has eliminated structure before values reach the
		// writer.
		return ""
	}
	return ""
}
