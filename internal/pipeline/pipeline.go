// Package pipeline drives the nationwide build: load the postal datasets once,
// transform every prefecture and write the concatenated result.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"jpaddress/internal/assembler"
	"jpaddress/internal/exceptions"
	"jpaddress/internal/matcher"
	"jpaddress/internal/models"
	"jpaddress/internal/source"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Fetcher downloads one archive and returns its CSV rows.
type Fetcher interface {
	Fetch(ctx context.Context, url string, columns []string) ([]source.Row, error)
}

// Sink persists the final ordered records.
type Sink interface {
	WriteFile(path string, records []models.OutputRecord) error
}

// Options controls a pipeline run.
type Options struct {
	KanaURL        string
	RomeURL        string
	ISJURLTemplate string
	ISJVersion     string
	OutputPath     string
	// FirstPref and LastPref bound the prefecture numbers, inclusive.
	FirstPref int
	LastPref  int
	// Concurrent runs up to Workers prefectures at once; otherwise one at a time.
	Concurrent bool
	Workers    int
}

// Driver runs the pipeline.
type Driver struct {
	fetcher     Fetcher
	sink        Sink
	renames     exceptions.RenameTable
	divergences exceptions.DivergenceTable
	opts        Options
	logger      zerolog.Logger
}

// NewDriver creates a driver using the curated exception tables.
func NewDriver(fetcher Fetcher, sink Sink, opts Options, logger zerolog.Logger) *Driver {
	if opts.FirstPref == 0 {
		opts.FirstPref = 1
	}
	if opts.LastPref == 0 {
		opts.LastPref = 47
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Driver{
		fetcher:     fetcher,
		sink:        sink,
		renames:     exceptions.Renames,
		divergences: exceptions.Divergences,
		opts:        opts,
		logger:      logger,
	}
}

// PrefectureCodes lists the zero-padded codes the driver will process, in order.
func (d *Driver) PrefectureCodes() []string {
	var codes []string
	for n := d.opts.FirstPref; n <= d.opts.LastPref; n++ {
		codes = append(codes, source.PrefectureCode(n))
	}
	return codes
}

// Run executes the three stages. Any fetch or parse failure aborts the run.
func (d *Driver) Run(ctx context.Context) error {
	records, err := d.Build(ctx)
	if err != nil {
		return err
	}

	if err := d.sink.WriteFile(d.opts.OutputPath, records); err != nil {
		return fmt.Errorf("pipeline: failed to write output: %w", err)
	}
	d.logger.Info().Str("path", d.opts.OutputPath).Int("records", len(records)).Msg("output written")
	return nil
}

// Build loads the reference data and transforms every prefecture, returning
// the records in prefecture-code order.
func (d *Driver) Build(ctx context.Context) ([]models.OutputRecord, error) {
	m, err := d.loadReference(ctx)
	if err != nil {
		return nil, err
	}
	asm := assembler.NewAssembler(m, d.renames, d.logger)

	codes := d.PrefectureCodes()
	results := make([][]models.OutputRecord, len(codes))

	limit := 1
	if d.opts.Concurrent {
		limit = d.opts.Workers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, code := range codes {
		g.Go(func() error {
			records, err := d.transform(gctx, asm, code)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]models.OutputRecord, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func (d *Driver) loadReference(ctx context.Context) (*matcher.Matcher, error) {
	start := time.Now()
	d.logger.Info().Msg("downloading postal code datasets")

	kanaRows, err := d.fetcher.Fetch(ctx, d.opts.KanaURL, source.KanaColumns)
	if err != nil {
		return nil, fmt.Errorf("pipeline: failed to load kana dataset: %w", err)
	}
	romeRows, err := d.fetcher.Fetch(ctx, d.opts.RomeURL, source.RomeColumns)
	if err != nil {
		return nil, fmt.Errorf("pipeline: failed to load rome dataset: %w", err)
	}

	kana := source.KanaRecords(kanaRows)
	rome := source.RomeRecords(romeRows)
	d.logger.Info().
		Int("kana_rows", len(kana)).
		Int("rome_rows", len(rome)).
		Dur("took", time.Since(start)).
		Msg("postal code datasets loaded")

	return matcher.New(kana, rome, d.divergences), nil
}

func (d *Driver) transform(ctx context.Context, asm *assembler.Assembler, prefCode string) ([]models.OutputRecord, error) {
	url := source.AddressURL(d.opts.ISJURLTemplate, d.opts.ISJVersion, prefCode)
	d.logger.Debug().Str("pref_code", prefCode).Str("url", url).Msg("fetching address archive")

	rows, err := d.fetcher.Fetch(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("pipeline: prefecture %s: %w", prefCode, err)
	}
	addresses, err := source.AddressRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("pipeline: prefecture %s: %w", prefCode, err)
	}

	records, summary := asm.Assemble(prefCode, addresses)
	d.logger.Info().
		Str("pref_code", summary.PrefCode).
		Int("hit", summary.Hit).
		Int("nohit", summary.NoHit).
		Strs("nohit_cases", summary.NoHitCases).
		Int("missing_postal_code", summary.MissingPostalCode).
		Msg("summary")

	return records, nil
}
