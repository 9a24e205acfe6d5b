// Package refdata supplies the static and semi-static reference tables
// behind the cost projection engine: per-component construction and
// operations unit costs by tier, electricity prices by year and capacity
// class, land requirements, and the fixed water cost schedule.
package refdata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	_ "embed"

	"github.com/rs/zerolog"
)

//go:embed data/construction_costs.csv
var rawConstructionCSV []byte

//go:embed data/operations_costs.csv
var rawOperationsCSV []byte

// ElectricityFileName is the dated electricity price sheet inside the
// data directory. EnsureElectricityData regenerates it when absent.
const ElectricityFileName = "electricity_prices.csv"

// SupportedCapacities is the fixed set of capacity classes the land,
// water, and electricity tables cover.
var SupportedCapacities = []string{"5MW", "20MW", "100MW"}

// constructionRow is the on-disk shape of a construction table row.
// Exactly one of the per-tier rates or the precomputed total applies;
// which one is resolved once at load time.
type constructionRow struct {
	component string
	tierIII   float64
	tierIV    float64
	total     float64
	hasTotal  bool
}

// operationsRow is the on-disk shape of an operations table row.
type operationsRow struct {
	component string
	tierIII   float64
	tierIV    float64
}

// Tables implements Provider from embedded CSV tables plus the
// electricity price sheet in the configured data directory. All tables
// are parsed exactly once and are read-only afterwards.
type Tables struct {
	dataDir string
	logger  zerolog.Logger

	once sync.Once
	err  error

	construction []constructionRow
	operations   []operationsRow

	// capacity class -> year -> $/MWh
	electricity map[string]map[int]float64
}

// NewTables loads the reference tables. dataDir must contain the
// electricity price sheet; run EnsureElectricityData first to generate
// it. Returns a non-nil error if any table fails to load.
func NewTables(dataDir string, logger zerolog.Logger) (*Tables, error) {
	t := &Tables{
		dataDir: dataDir,
		logger:  logger.With().Str("component", "refdata").Logger(),
	}
	if err := t.init(); err != nil {
		return nil, err
	}
	return t, nil
}

// init parses the embedded tables and the electricity sheet exactly once.
func (t *Tables) init() error {
	t.once.Do(func() {
		t.construction, t.err = parseConstructionCSV(rawConstructionCSV)
		if t.err != nil {
			t.err = fmt.Errorf("failed to parse construction table: %w", t.err)
			return
		}

		t.operations, t.err = parseOperationsCSV(rawOperationsCSV)
		if t.err != nil {
			t.err = fmt.Errorf("failed to parse operations table: %w", t.err)
			return
		}

		path := filepath.Join(t.dataDir, ElectricityFileName)
		t.electricity, t.err = loadElectricityCSV(path)
		if t.err != nil {
			return
		}

		t.logger.Debug().
			Int("construction_rows", len(t.construction)).
			Int("operations_rows", len(t.operations)).
			Int("electricity_classes", len(t.electricity)).
			Msg("reference tables loaded")
	})
	return t.err
}

// ConstructionTable returns the ordered construction rows with the tier
// column resolved. Row order follows the backing table.
func (t *Tables) ConstructionTable(tier Tier) []ConstructionItem {
	items := make([]ConstructionItem, 0, len(t.construction))
	for _, row := range t.construction {
		item := ConstructionItem{Component: row.component}
		if row.hasTotal {
			item.Kind = PrecomputedTotal
			item.Total = row.total
		} else {
			item.Kind = RatePerMW
			item.RatePerMW = row.rate(tier)
		}
		items = append(items, item)
	}
	return items
}

// OperationsTable returns the ordered operations rows with the tier
// column resolved.
func (t *Tables) OperationsTable(tier Tier) []OperationsItem {
	items := make([]OperationsItem, 0, len(t.operations))
	for _, row := range t.operations {
		rate := row.tierIII
		if tier == TierIV {
			rate = row.tierIV
		}
		items = append(items, OperationsItem{Component: row.component, RatePerMW: rate})
	}
	return items
}

// ElectricityRate returns the $/MWh rate for a capacity class and year.
func (t *Tables) ElectricityRate(capacity string, year int) (float64, bool) {
	years, ok := t.electricity[strings.ToUpper(capacity)]
	if !ok {
		return 0, false
	}
	rate, ok := years[year]
	return rate, ok
}

// LandAcreage returns the acreage requirement for a capacity class.
func (t *Tables) LandAcreage(capacity string) (int, bool) {
	acres, ok := landAcreage[strings.ToUpper(capacity)]
	return acres, ok
}

// LandPricePerAcre returns the fixed land price in USD per acre.
func (t *Tables) LandPricePerAcre() float64 {
	return landPricePerAcre
}

// WaterAnnualCost returns the annual water cost in USD for a capacity
// class. See GenerateWaterCost for the schedule.
func (t *Tables) WaterAnnualCost(capacity string) (float64, error) {
	return GenerateWaterCost(capacity)
}

func (r constructionRow) rate(tier Tier) float64 {
	if tier == TierIV {
		return r.tierIV
	}
	return r.tierIII
}

// parseConstructionCSV reads component,tierIII,tierIV[,totalcost] rows.
// A totalcost column resolves every row to the precomputed-total variant.
func parseConstructionCSV(raw []byte) ([]constructionRow, error) {
	header, records, err := readCSV(raw)
	if err != nil {
		return nil, err
	}

	col := columnIndex(header)
	for _, required := range []string{"component", "tierIII", "tierIV"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	totalIdx, hasTotal := col["totalcost"]

	rows := make([]constructionRow, 0, len(records))
	for i, rec := range records {
		row := constructionRow{component: rec[col["component"]]}
		if row.tierIII, err = strconv.ParseFloat(rec[col["tierIII"]], 64); err != nil {
			return nil, fmt.Errorf("row %d: bad tierIII value %q", i+1, rec[col["tierIII"]])
		}
		if row.tierIV, err = strconv.ParseFloat(rec[col["tierIV"]], 64); err != nil {
			return nil, fmt.Errorf("row %d: bad tierIV value %q", i+1, rec[col["tierIV"]])
		}
		if hasTotal {
			if row.total, err = strconv.ParseFloat(rec[totalIdx], 64); err != nil {
				return nil, fmt.Errorf("row %d: bad totalcost value %q", i+1, rec[totalIdx])
			}
			row.hasTotal = true
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseOperationsCSV reads component,tierIII,tierIV rows.
func parseOperationsCSV(raw []byte) ([]operationsRow, error) {
	header, records, err := readCSV(raw)
	if err != nil {
		return nil, err
	}

	col := columnIndex(header)
	for _, required := range []string{"component", "tierIII", "tierIV"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	rows := make([]operationsRow, 0, len(records))
	for i, rec := range records {
		row := operationsRow{component: rec[col["component"]]}
		if row.tierIII, err = strconv.ParseFloat(rec[col["tierIII"]], 64); err != nil {
			return nil, fmt.Errorf("row %d: bad tierIII value %q", i+1, rec[col["tierIII"]])
		}
		if row.tierIV, err = strconv.ParseFloat(rec[col["tierIV"]], 64); err != nil {
			return nil, fmt.Errorf("row %d: bad tierIV value %q", i+1, rec[col["tierIV"]])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// loadElectricityCSV reads the generated price sheet:
// year,datacenter_size,rate_cents_kwh,rate_dollars_MW,source
func loadElectricityCSV(path string) (map[string]map[int]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataFileError{Path: path, Err: err}
	}

	header, records, err := readCSV(raw)
	if err != nil {
		return nil, &DataFileError{Path: path, Err: err}
	}

	col := columnIndex(header)
	for _, required := range []string{"year", "datacenter_size", "rate_dollars_MW"} {
		if _, ok := col[required]; !ok {
			return nil, &DataFileError{Path: path, Err: fmt.Errorf("missing column %q", required)}
		}
	}

	rates := make(map[string]map[int]float64)
	for i, rec := range records {
		year, err := strconv.Atoi(rec[col["year"]])
		if err != nil {
			return nil, &DataFileError{Path: path, Err: fmt.Errorf("row %d: bad year %q", i+1, rec[col["year"]])}
		}
		rate, err := strconv.ParseFloat(rec[col["rate_dollars_MW"]], 64)
		if err != nil {
			return nil, &DataFileError{Path: path, Err: fmt.Errorf("row %d: bad rate %q", i+1, rec[col["rate_dollars_MW"]])}
		}
		size := strings.ToUpper(rec[col["datacenter_size"]])
		if rates[size] == nil {
			rates[size] = make(map[int]float64)
		}
		rates[size][year] = rate
	}
	return rates, nil
}

// readCSV splits a CSV document into header and records.
func readCSV(raw []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("empty csv: %w", err)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}
	return header, records, nil
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}
