package intervals

import (
	"encoding/csv"
	"io"
)

// ReadCSV reads header-keyed rows, matching what WriteCSV produces.
func ReadCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes rows under the given header, so a database read can be
// replayed later with the --input-csv flag.
func WriteCSV(w io.Writer, header []string, rows []map[string]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, column := range header {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadStopIDsCSV reads stop IDs from the first column of a CSV file.
func ReadStopIDsCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	var stopIDs []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return stopIDs, nil
		}
		if err != nil {
			return nil, err
		}
		if len(record) > 0 && record[0] != "" {
			stopIDs = append(stopIDs, record[0])
		}
	}
}
