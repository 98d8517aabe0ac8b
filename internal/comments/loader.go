package comments

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrUnsupportedFormat is returned for comment logs whose extension is
// neither .json nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported comment log format")

// anonymousUser is the sentinel for comments without a user identifier.
const anonymousUser = "anonymous"

// Record is one chat/comment line. Immutable once loaded.
type Record struct {
	Time float64 `json:"time"`
	Text string  `json:"text"`
	User string  `json:"user"`
}

// LoadLog reads a comment log from a JSON array or a headered CSV file.
//
//	JSON: [{"time": 123.4, "text": "草", "user": "xxx"}, ...]
//	CSV:  time,text[,user] header, comma-delimited, UTF-8
func LoadLog(path string) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// jsonSeconds unmarshals a time value that exporters write either as a
// number or as a quoted number string.
type jsonSeconds float64

func (s *jsonSeconds) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(strings.Trim(string(data), `"`), 64)
	if err != nil {
		return fmt.Errorf("invalid time value %s", data)
	}
	*s = jsonSeconds(v)
	return nil
}

func loadJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read comment log: %w", err)
	}

	// Time is required per entry; text and user may be absent.
	var raw []struct {
		Time *jsonSeconds `json:"time"`
		Text string       `json:"text"`
		User string       `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse comment log %s: %w", path, err)
	}

	records := make([]Record, 0, len(raw))
	for i, r := range raw {
		if r.Time == nil {
			return nil, fmt.Errorf("parse comment log %s: entry %d has no time field", path, i)
		}
		user := r.User
		if user == "" {
			user = anonymousUser
		}
		records = append(records, Record{Time: float64(*r.Time), Text: r.Text, User: user})
	}
	return records, nil
}

func loadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read comment log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse comment log %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	timeCol, textCol, userCol := -1, -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "time":
			timeCol = i
		case "text":
			textCol = i
		case "user":
			userCol = i
		}
	}
	if timeCol < 0 || textCol < 0 {
		return nil, fmt.Errorf("parse comment log %s: header must contain time and text columns", path)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if timeCol >= len(row) {
			continue
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(row[timeCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse comment log %s: row %d: invalid time %q", path, i+2, row[timeCol])
		}

		rec := Record{Time: t, User: anonymousUser}
		if textCol < len(row) {
			rec.Text = row[textCol]
		}
		if userCol >= 0 && userCol < len(row) && row[userCol] != "" {
			rec.User = row[userCol]
		}
		records = append(records, rec)
	}
	return records, nil
}
