package growth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadCatalog reads a stage table from a .csv or .xlsx file with the columns
// Crop, Stage, Days and an optional Description. Rows for one crop must be
// listed in stage order.
func LoadCatalog(path string) (*Catalog, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("stage config %s: unsupported extension", path)
	}
	if err != nil {
		return nil, fmt.Errorf("stage config %s: %w", path, err)
	}
	c, err := parseStageRows(rows)
	if err != nil {
		return nil, fmt.Errorf("stage config %s: %w", path, err)
	}
	return c, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	return x.GetRows(x.GetSheetName(0))
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	for _, r := range []string{" ", "-", "_"} {
		s = strings.ReplaceAll(s, r, "")
	}
	return s
}

func parseStageRows(rows [][]string) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty stage table")
	}
	head := rows[0]
	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHeader(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHeader(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := findAny("Crop", "crop_type", "cropname")
	cStage := findAny("Stage", "phase", "stage_name")
	cDays := findAny("Days", "day_threshold", "cumulative_days", "until_day")
	cDesc := findAny("Description", "notes", "note", "desc")
	if cCrop == -1 || cStage == -1 || cDays == -1 {
		return nil, fmt.Errorf("missing required columns Crop, Stage, Days (found %v)", head)
	}

	tables := map[string][]Stage{}
	for n, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		crop := get(cCrop)
		if crop == "" && get(cStage) == "" {
			continue // blank line
		}
		days, err := strconv.Atoi(get(cDays))
		if err != nil {
			return nil, fmt.Errorf("row %d: days %q is not an integer", n+2, get(cDays))
		}
		key := normCrop(crop)
		tables[key] = append(tables[key], Stage{Name: get(cStage), Days: days, Description: get(cDesc)})
	}
	return NewCatalog(tables)
}
