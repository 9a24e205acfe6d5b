package refdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// fallbackRatesCentsKWh are the built-in current-year electricity rates
// in cents per kWh, used when no tariff page is configured or the
// scrape fails. Larger capacity classes negotiate lower rates.
var fallbackRatesCentsKWh = map[string]float64{
	"5MW":   12.5,
	"20MW":  8.8,
	"100MW": 6.5,
}

const (
	sourceCurrentYearRates = "Current Year Rates"
	sourceTariffScrape     = "Tariff Scrape"
)

// RefreshConfig configures the one-time electricity data refresh.
type RefreshConfig struct {
	// DataDir is where the electricity price sheet is written.
	DataDir string

	// TariffURL, when set, is the utility tariff page to scrape for
	// current rates. Empty means use the built-in rates.
	TariffURL string

	// HTTPClient overrides the client used for the tariff fetch.
	// Defaults to a client with a 15s timeout.
	HTTPClient *http.Client

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// refreshMu serializes first-time generation of the price sheet so two
// callers cannot race on the existence check.
var refreshMu sync.Mutex

// EnsureElectricityData makes sure the electricity price sheet exists
// in the data directory, generating it if absent. The step is
// idempotent: when the sheet is already present it does nothing.
//
// Rates come from the configured tariff page when one is set; a fetch
// or parse failure falls back to the built-in current-year rates with a
// warning rather than failing startup.
func EnsureElectricityData(ctx context.Context, cfg RefreshConfig, logger zerolog.Logger) error {
	refreshMu.Lock()
	defer refreshMu.Unlock()

	log := logger.With().Str("component", "refdata").Logger()

	path := filepath.Join(cfg.DataDir, ElectricityFileName)
	if _, err := os.Stat(path); err == nil {
		log.Debug().Str("path", path).Msg("electricity price sheet present")
		return nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return &DataFileError{Path: cfg.DataDir, Err: err}
	}

	rates := fallbackRatesCentsKWh
	source := sourceCurrentYearRates
	if cfg.TariffURL != "" {
		scraped, err := scrapeTariffRates(ctx, cfg.TariffURL, cfg.HTTPClient)
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.TariffURL).
				Msg("tariff scrape failed, using built-in rates")
		} else {
			rates = scraped
			source = sourceTariffScrape
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	year := now().Year()

	if err := writeElectricityCSV(path, year, rates, source); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("year", year).Str("source", source).
		Msg("electricity price sheet generated")
	return nil
}

// scrapeTariffRates fetches the utility tariff page and extracts the
// ¢/kWh rate per datacenter size class. The page is expected to carry a
// table whose rows name a size class ("5MW", "20MW", "100MW") in one
// cell and the rate in a later cell, e.g. "12.5¢/kWh".
func scrapeTariffRates(ctx context.Context, url string, client *http.Client) (map[string]float64, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build tariff request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tariff page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tariff page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse tariff page: %w", err)
	}

	return extractTariffRates(doc)
}

// extractTariffRates walks table rows looking for one rate per
// supported capacity class. All classes must be found for the scrape
// to count; a partial table falls back to built-in rates.
func extractTariffRates(doc *goquery.Document) (map[string]float64, error) {
	rates := make(map[string]float64)

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		label := strings.ToUpper(strings.TrimSpace(cells.First().Text()))
		for _, capacity := range SupportedCapacities {
			if !strings.Contains(label, capacity) {
				continue
			}
			cells.Each(func(i int, cell *goquery.Selection) {
				if i == 0 {
					return
				}
				if _, ok := rates[capacity]; ok {
					return
				}
				if rate, ok := parseRateCell(cell.Text()); ok {
					rates[capacity] = rate
				}
			})
		}
	})

	for _, capacity := range SupportedCapacities {
		if _, ok := rates[capacity]; !ok {
			return nil, fmt.Errorf("no rate found for %s on tariff page", capacity)
		}
	}
	return rates, nil
}

// parseRateCell extracts a ¢/kWh figure from a table cell such as
// "12.5¢/kWh", "12.5 cents", or a bare "12.5".
func parseRateCell(text string) (float64, bool) {
	cleaned := strings.TrimSpace(text)
	var number strings.Builder
	for _, r := range cleaned {
		if (r >= '0' && r <= '9') || r == '.' {
			number.WriteRune(r)
			continue
		}
		if number.Len() > 0 {
			break
		}
	}
	rate, err := strconv.ParseFloat(number.String(), 64)
	if err != nil || rate <= 0 {
		return 0, false
	}
	return rate, true
}

// writeElectricityCSV writes the price sheet atomically via a temp file
// so a crashed refresh never leaves a half-written sheet behind.
func writeElectricityCSV(path string, year int, centsKWh map[string]float64, source string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ElectricityFileName+".*")
	if err != nil {
		return &DataFileError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"year", "datacenter_size", "rate_cents_kwh", "rate_dollars_MW", "source"}); err != nil {
		tmp.Close()
		return &DataFileError{Path: path, Err: err}
	}
	for _, capacity := range SupportedCapacities {
		cents := centsKWh[capacity]
		record := []string{
			strconv.Itoa(year),
			capacity,
			formatRate(cents),
			formatRate(cents * 10),
			source,
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return &DataFileError{Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return &DataFileError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &DataFileError{Path: path, Err: err}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return &DataFileError{Path: path, Err: err}
	}
	return nil
}

// formatRate renders a rate rounded to two decimals without trailing
// zero noise beyond them.
func formatRate(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
