package dataset

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmehdipour/custgen/internal/export"
	"github.com/jmehdipour/custgen/internal/generator"
	"github.com/jmehdipour/custgen/internal/identity"
	"github.com/jmehdipour/custgen/internal/metrics"
	"github.com/jmehdipour/custgen/internal/model"
	"github.com/jmehdipour/custgen/internal/util"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ManifestSaver is implemented by *manifest.Store.
type ManifestSaver interface {
	Save(ctx context.Context, m model.RunManifest) (bool, error)
}

// Service builds customer batches and writes them out.
type Service struct {
	fs    afero.Fs
	store ManifestSaver // nil disables manifests
	log   *zap.Logger
	now   func() time.Time
}

func New(fs afero.Fs, store ManifestSaver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{fs: fs, store: store, log: log, now: time.Now}
}

type Request struct {
	Options generator.Options
	Dir     string
	File    string
	Format  export.Format
}

type Result struct {
	Records  []model.Customer
	Summary  generator.Summary
	File     export.Result
	Manifest model.RunManifest
	Baseline bool // first run saved for this fingerprint
}

// Build generates the batch in memory and records generation metrics.
func (s *Service) Build(opts generator.Options) ([]model.Customer, generator.Summary, error) {
	start := s.now()
	records, err := generator.Generate(opts)
	if err != nil {
		return nil, generator.Summary{}, err
	}
	elapsed := s.now().Sub(start)

	sum := generator.Summarize(records)
	for st, n := range sum.Status {
		metrics.RecordsGenerated.WithLabelValues(st.String()).Add(float64(n))
	}
	metrics.GenerationDuration.Observe(elapsed.Seconds())

	s.log.Info("dataset generated",
		zap.Int64("records", sum.Total),
		zap.Int64("first_id", sum.FirstID),
		zap.Int64("last_id", sum.LastID),
		zap.Int64("middle_names", sum.MiddleNames),
		zap.Duration("elapsed", elapsed),
	)
	return records, sum, nil
}

// Generate builds the batch, writes it under req.Dir and saves a run manifest
// when a store is configured.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	records, sum, err := s.Build(req.Options)
	if err != nil {
		return Result{}, err
	}

	name := FileName(req.File, req.Format)
	file, err := export.WriteFile(s.fs, req.Dir, name, req.Format, records)
	if err != nil {
		return Result{}, fmt.Errorf("write %s: %w", filepath.Join(req.Dir, name), err)
	}
	metrics.SinkRows.WithLabelValues("file").Add(float64(len(records)))
	s.log.Info("dataset written",
		zap.String("path", file.Path),
		zap.Int64("bytes", file.Bytes),
		zap.String("sha256", file.Checksum),
	)

	res := Result{
		Records:  records,
		Summary:  sum,
		File:     file,
		Manifest: s.manifest(req, sum, file),
	}
	if s.store == nil {
		return res, nil
	}

	res.Baseline, err = s.store.Save(ctx, res.Manifest)
	if err != nil {
		return res, err
	}
	s.log.Info("run manifest saved",
		zap.String("run_id", res.Manifest.RunID),
		zap.String("fingerprint", res.Manifest.Fingerprint),
		zap.Bool("baseline", res.Baseline),
	)
	return res, nil
}

// Checksum regenerates the batch in memory and hashes its encoding.
func (s *Service) Checksum(opts generator.Options, format export.Format) (string, error) {
	records, err := generator.Generate(opts)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := export.Encode(&buf, format, records); err != nil {
		return "", err
	}
	return export.Checksum(buf.Bytes()), nil
}

func (s *Service) manifest(req Request, sum generator.Summary, file export.Result) model.RunManifest {
	o := req.Options
	now := s.now().UTC()
	return model.RunManifest{
		RunID:        util.NewRunID(now),
		Fingerprint:  Fingerprint(o, req.Format),
		BankPrefix:   o.BankPrefix,
		Start:        o.SequenceStart,
		Digits:       o.SequenceDigits,
		Count:        o.Count,
		Seed:         o.Seed,
		RefDate:      identity.Date(o.ReferenceDate).Format(model.DateLayout),
		Provider:     o.Provider,
		Format:       req.Format.String(),
		Path:         file.Path,
		Bytes:        file.Bytes,
		Checksum:     file.Checksum,
		StatusCounts: sum.Status,
		MiddleNames:  sum.MiddleNames,
		CreatedAt:    now,
	}
}

// Fingerprint scopes the options fingerprint to an output format.
func Fingerprint(o generator.Options, format export.Format) string {
	return o.Fingerprint() + "-" + format.String()
}

// FileName swaps the extension of name to match format.
func FileName(name string, format export.Format) string {
	ext := filepath.Ext(name)
	if strings.EqualFold(ext, format.Ext()) {
		return name
	}
	return strings.TrimSuffix(name, ext) + format.Ext()
}
