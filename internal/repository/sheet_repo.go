package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Williamfew09/youtube-dashboard/internal/model"
)

// The gviz export wraps its JSON document in a JavaScript callback.
const (
	gvizPrefix = "/*O_o*/\ngoogle.visualization.Query.setResponse("
	gvizSuffix = ");"
)

const sourceSheet = "sheet"

// Column positions in the content log.
const (
	colTimestamp = iota
	colTitle
	colCreator
	colSourceTitle
	colItemID
	colSourceURL
)

// SheetRepo reads the content log from a published Google Sheet.
type SheetRepo struct {
	up        upstream
	baseURL   string
	sheetID   string
	sheetName string
}

func NewSheetRepo(baseURL, sheetID, sheetName string, timeout time.Duration, log zerolog.Logger) *SheetRepo {
	return &SheetRepo{
		up:        newUpstream(timeout, log),
		baseURL:   strings.TrimRight(baseURL, "/"),
		sheetID:   sheetID,
		sheetName: sheetName,
	}
}

// Rows fetches and parses every row of the sheet. It never fails: on any
// transport or decode error it logs and returns an empty, degraded result.
func (r *SheetRepo) Rows(ctx context.Context) Result[[]model.Record] {
	rows, err := r.fetchRows(ctx)
	if err != nil {
		r.up.fail(sourceSheet, err, "sheet: fetch failed, using empty rows")
		return Result[[]model.Record]{Value: []model.Record{}, Err: err}
	}
	return Result[[]model.Record]{Value: rows}
}

func (r *SheetRepo) fetchRows(ctx context.Context) ([]model.Record, error) {
	if r.sheetID == "" {
		return nil, fmt.Errorf("sheet: %w: no document id configured", ErrMalformedResponse)
	}

	endpoint := fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq", r.baseURL, url.PathEscape(r.sheetID))
	body, err := r.up.get(ctx, sourceSheet, endpoint, map[string]string{
		"tqx":   "out:json",
		"sheet": r.sheetName,
	})
	if err != nil {
		return nil, err
	}
	return ParseGviz(body)
}

type gvizResponse struct {
	Table *struct {
		Rows []gvizRow `json:"rows"`
	} `json:"table"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

type gvizCell struct {
	V any     `json:"v"`
	F *string `json:"f"`
}

// ParseGviz strips the gviz callback wrapper from body and maps each row to a
// Record by column position. Rows without an item id are dropped; the
// remaining rows keep sheet order.
func ParseGviz(body []byte) ([]model.Record, error) {
	text := strings.Replace(string(body), gvizPrefix, "", 1)
	text = strings.TrimSuffix(strings.TrimSpace(text), gvizSuffix)

	var doc gvizResponse
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("sheet: %w: %v", ErrMalformedResponse, err)
	}

	records := []model.Record{}
	if doc.Table == nil {
		return records, nil
	}

	for _, row := range doc.Table.Rows {
		rec := model.Record{
			Timestamp:   cellAt(row.C, colTimestamp).formatted(),
			Title:       cellAt(row.C, colTitle).text(),
			Creator:     cellAt(row.C, colCreator).text(),
			SourceTitle: cellAt(row.C, colSourceTitle).text(),
			ItemID:      cellAt(row.C, colItemID).text(),
			SourceURL:   cellAt(row.C, colSourceURL).text(),
		}
		if rec.ItemID == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func cellAt(cells []*gvizCell, i int) *gvizCell {
	if i >= len(cells) {
		return nil
	}
	return cells[i]
}

// text renders the raw cell value. Absent and null cells read as "".
func (c *gvizCell) text() string {
	if c == nil {
		return ""
	}
	switch v := c.V.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// formatted prefers the sheet's display string over the raw value.
func (c *gvizCell) formatted() string {
	if c != nil && c.F != nil && *c.F != "" {
		return *c.F
	}
	return c.text()
}
