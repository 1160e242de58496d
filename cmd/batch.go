package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/masklab/snowmask/internal/logger"
	"github.com/masklab/snowmask/internal/mask"
)

// RunBatch masks CSV rows of the form value[,category[,level]] from the
// given file (or stdin when path is empty or "-") and writes masked
// rows to stdout. Rows fan out across workers; the engine is pure, so
// no synchronization is needed beyond collecting results, and output
// order matches input order.
func RunBatch(path string, workers int, config *Config) error {
	var in io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	if workers < 1 {
		workers = 1
	}

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read CSV input: %w", err)
	}

	logger.Debug("Masking %d row(s) with %d worker(s)", len(rows), workers)

	masked := make([][]string, len(rows))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				masked[i] = maskRow(rows[i], config)
			}
		}()
	}
	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	writer := csv.NewWriter(os.Stdout)
	if err := writer.WriteAll(masked); err != nil {
		return fmt.Errorf("failed to write CSV output: %w", err)
	}
	return nil
}

// maskRow masks the first column; optional second and third columns
// select category and level for that row, falling back to the
// configured defaults.
func maskRow(record []string, config *Config) []string {
	if len(record) == 0 {
		return record
	}

	category := config.DefaultCategory
	if len(record) > 1 && record[1] != "" {
		category = record[1]
	}
	level := config.DefaultLevel
	if len(record) > 2 && record[2] != "" {
		level = record[2]
	}

	out := make([]string, len(record))
	copy(out, record)
	out[0] = mask.String(record[0], category, level)
	return out
}
