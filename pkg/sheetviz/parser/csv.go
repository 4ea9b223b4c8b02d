package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffBytes bounds how much of the input is inspected to detect the delimiter.
const sniffBytes = 4096

// ParseCSV reads delimited text into rows of cells. Rows may have differing
// lengths. A leading byte order mark is dropped (UTF-16 input is decoded).
func ParseCSV(name string, r io.Reader, delimiter rune) ([][]models.Cell, error) {
	br := bufio.NewReaderSize(
		transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())),
		sniffBytes,
	)

	if delimiter == 0 {
		head, err := br.Peek(sniffBytes)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, newParseError(name, "read", err)
		}
		delimiter = detectDelimiter(head)
	}

	cr := csv.NewReader(br)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]models.Cell
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newParseError(name, "rows", err)
		}
		row := make([]models.Cell, len(record))
		for i, field := range record {
			row[i] = parseValue(field)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// detectDelimiter returns whichever of ',', ';' or '\t' occurs most often
// outside quotes on the first line, preferring ','.
func detectDelimiter(head []byte) rune {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	counts := map[byte]int{}
	quoted := false
	for _, b := range head {
		switch {
		case b == '"':
			quoted = !quoted
		case !quoted && (b == ',' || b == ';' || b == '\t'):
			counts[b]++
		}
	}

	best := byte(',')
	for _, c := range []byte{';', '\t'} {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return rune(best)
}
