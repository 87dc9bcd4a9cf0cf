package agronomy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadFromFiles builds the reference tables from deployment config files,
// starting from the built-in defaults. Every path is optional; an empty path
// keeps the defaults for that table. The result is validated before use.
func LoadFromFiles(stageCSV, templateCSV, stageXLSX string) (*Tables, error) {
	t := Defaults()

	if stageCSV != "" {
		if err := t.loadStagesCSV(stageCSV); err != nil {
			return nil, fmt.Errorf("load stage csv: %w", err)
		}
	}
	if templateCSV != "" {
		if err := t.loadTemplatesCSV(templateCSV); err != nil {
			return nil, fmt.Errorf("load template csv: %w", err)
		}
	}
	if stageXLSX != "" {
		if err := t.loadStagesXLSX(stageXLSX); err != nil {
			return nil, fmt.Errorf("load stage xlsx: %w", err)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

type headerIndex map[string]int

func indexHeader(head []string) headerIndex {
	h := headerIndex{}
	for i, c := range head {
		h[normHeader(c)] = i
	}
	return h
}

func (h headerIndex) findAny(keys ...string) int {
	for _, k := range keys {
		if idx, ok := h[normHeader(k)]; ok {
			return idx
		}
	}
	return -1
}

// loadStagesCSV replaces the stage tables of every crop present in the file.
// Expected columns (aliases accepted): crop, stage, start_day, end_day,
// water_mm_day.
func (t *Tables) loadStagesCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}
	h := indexHeader(head)

	cCrop := h.findAny("crop", "crop_type", "croptype")
	cStage := h.findAny("stage", "stage_name", "phase")
	cStart := h.findAny("start_day", "startday", "from_day")
	cEnd := h.findAny("end_day", "endday", "to_day")
	cWmm := h.findAny("water_requirement_mm_day", "water_mm_day", "waterneed", "watermmday")
	if cCrop == -1 || cStage == -1 || cStart == -1 || cEnd == -1 || cWmm == -1 {
		return fmt.Errorf("stage csv missing required columns, found headers: %v", head)
	}

	loaded := map[string][]StageDef{}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		crop := strings.ToLower(get(cCrop))
		if crop == "" {
			continue
		}
		start, _ := strconv.Atoi(get(cStart))
		end, _ := strconv.Atoi(get(cEnd))
		wmm, _ := strconv.ParseFloat(get(cWmm), 64)
		loaded[crop] = append(loaded[crop], StageDef{
			Name:       get(cStage),
			StartDay:   start,
			EndDay:     end,
			WaterMMDay: wmm,
		})
	}
	for crop, stages := range loaded {
		t.stages[crop] = stages
	}
	return nil
}

// loadTemplatesCSV replaces the activity templates of every crop present in
// the file. Columns: crop, stage, days_after_planting, activity_type,
// quantity, priority.
func (t *Tables) loadTemplatesCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}
	h := indexHeader(head)

	cCrop := h.findAny("crop", "crop_type")
	cStage := h.findAny("stage", "stage_name")
	cDays := h.findAny("days_after_planting", "day_offset", "days")
	cType := h.findAny("activity_type", "type")
	cQty := h.findAny("quantity", "qty")
	cPrio := h.findAny("priority", "prio")
	if cCrop == -1 || cStage == -1 || cDays == -1 || cType == -1 {
		return fmt.Errorf("template csv missing required columns, found headers: %v", head)
	}

	loaded := map[string][]TemplateEntry{}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		crop := strings.ToLower(get(cCrop))
		if crop == "" {
			continue
		}
		days, _ := strconv.Atoi(get(cDays))
		prio := get(cPrio)
		if prio == "" {
			prio = "medium"
		}
		loaded[crop] = append(loaded[crop], TemplateEntry{
			Stage:             get(cStage),
			DaysAfterPlanting: days,
			ActivityType:      get(cType),
			Quantity:          get(cQty),
			Priority:          prio,
		})
	}
	for crop, tmpl := range loaded {
		t.templates[crop] = tmpl
	}
	return nil
}

// loadStagesXLSX reads the same stage columns from the first sheet of an
// XLSX workbook, for deployments that maintain the reference data as a
// spreadsheet rather than CSV.
func (t *Tables) loadStagesXLSX(path string) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return errors.New("xlsx has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return nil
	}
	h := indexHeader(rows[0])
	cCrop := h.findAny("crop", "crop_type")
	cStage := h.findAny("stage", "stage_name")
	cStart := h.findAny("start_day")
	cEnd := h.findAny("end_day")
	cWmm := h.findAny("water_requirement_mm_day", "water_mm_day")
	if cCrop == -1 || cStage == -1 || cStart == -1 || cEnd == -1 || cWmm == -1 {
		return fmt.Errorf("stage xlsx missing required columns, found headers: %v", rows[0])
	}

	loaded := map[string][]StageDef{}
	for _, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		crop := strings.ToLower(get(cCrop))
		if crop == "" {
			continue
		}
		start, _ := strconv.Atoi(get(cStart))
		end, _ := strconv.Atoi(get(cEnd))
		wmm, _ := strconv.ParseFloat(get(cWmm), 64)
		loaded[crop] = append(loaded[crop], StageDef{Name: get(cStage), StartDay: start, EndDay: end, WaterMMDay: wmm})
	}
	for crop, stages := range loaded {
		t.stages[crop] = stages
	}
	return nil
}
