// Package session holds one working dataset through load, profile, clean
// and export.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/datacleaner-cli/internal/analysis"
	"github.com/KaramelBytes/datacleaner-cli/internal/batch"
	"github.com/KaramelBytes/datacleaner-cli/internal/cleaning"
	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
	"github.com/KaramelBytes/datacleaner-cli/internal/engine"
	"github.com/KaramelBytes/datacleaner-cli/internal/parser"
	"github.com/KaramelBytes/datacleaner-cli/internal/utils"
)

var (
	ErrNoData     = errors.New("no dataset loaded")
	ErrNotCleaned = errors.New("dataset has not been cleaned")
)

// Format selects the export encoding of cleaned data.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Session is the state of one dataset being worked on. Loading a new file
// resets the profile and cleaning result.
type Session struct {
	ID       string                   `json:"id"`
	Name     string                   `json:"name"`
	Source   string                   `json:"source"`
	LoadedAt time.Time                `json:"loaded_at"`
	Data     *dataset.Dataset         `json:"-"`
	Profile  *analysis.DatasetProfile `json:"profile,omitempty"`
	Cleaned  *cleaning.Result         `json:"cleaned,omitempty"`

	eng *engine.Engine
}

// New constructs an empty session backed by eng.
func New(eng *engine.Engine) *Session {
	if eng == nil {
		eng = engine.New()
	}
	return &Session{ID: uuid.NewString(), eng: eng}
}

// Load parses a file and makes it the current dataset.
func (s *Session) Load(path string) error {
	if _, err := parser.Lookup(path); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	d, err := s.eng.ParseCSV(string(b))
	if err != nil {
		return fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	s.set(utils.BaseName(path), path, d)
	return nil
}

// LoadText parses CSV text under the given dataset name.
func (s *Session) LoadText(name, text string) error {
	d, err := s.eng.ParseCSV(text)
	if err != nil {
		return err
	}
	s.set(name, "", d)
	return nil
}

func (s *Session) set(name, source string, d *dataset.Dataset) {
	s.Name = name
	s.Source = source
	s.LoadedAt = time.Now()
	s.Data = d
	s.Profile = nil
	s.Cleaned = nil
}

// Analyze profiles the current dataset. The enhanced profile adds
// correlations and per-column outliers and reports chunk progress.
func (s *Session) Analyze(ctx context.Context, enhanced bool, progress batch.ProgressFunc) (*analysis.DatasetProfile, error) {
	if s.Data == nil {
		return nil, ErrNoData
	}
	var (
		p   *analysis.DatasetProfile
		err error
	)
	if enhanced {
		p, err = s.eng.GenerateEnhancedDataProfile(ctx, s.Data, progress)
	} else {
		p, err = s.eng.GenerateDataProfile(s.Data)
	}
	if p != nil {
		p.Name = s.Name
		s.Profile = p
	}
	return p, err
}

// Clean runs the cleaning pipeline over the current dataset. The original
// data stays untouched; the result is kept for Export. On failure the
// engine's fallback result is returned alongside the error and not kept.
func (s *Session) Clean(ctx context.Context, opts cleaning.Options, chunked bool, progress cleaning.ProgressFunc) (*cleaning.Result, error) {
	if s.Data == nil {
		return nil, ErrNoData
	}
	var (
		res *cleaning.Result
		err error
	)
	if chunked {
		res, err = s.eng.ProcessDataCleaningChunked(ctx, s.Data, opts, progress)
	} else {
		res, err = s.eng.ProcessDataCleaning(s.Data, opts)
	}
	if err != nil {
		return res, err
	}
	s.Cleaned = res
	return res, nil
}

// Exported lists the files written by Export.
type Exported struct {
	Data string `json:"data"`
	Log  string `json:"log"`
}

// Export writes <name>_cleaned.<format> and <name>_cleaning_log.json into dir.
func (s *Session) Export(dir string, format Format) (*Exported, error) {
	if s.Data == nil {
		return nil, ErrNoData
	}
	if s.Cleaned == nil {
		return nil, ErrNotCleaned
	}
	var (
		body []byte
		err  error
	)
	switch format {
	case FormatCSV, "":
		format = FormatCSV
		body = []byte(parser.ToCSV(s.Cleaned.Data))
	case FormatJSON:
		body, err = parser.ToJSON(s.Cleaned.Data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported export format: %s (use csv|json)", format)
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	name := s.Name
	if name == "" {
		name = "dataset"
	}
	out := &Exported{
		Data: filepath.Join(dir, name+"_cleaned."+string(format)),
		Log:  filepath.Join(dir, name+"_cleaning_log.json"),
	}
	if err := utils.SafeWriteFile(out.Data, body); err != nil {
		return nil, err
	}
	logJSON, err := utils.PrettyJSON(s.Cleaned.Log)
	if err != nil {
		return nil, err
	}
	if err := utils.SafeWriteFile(out.Log, logJSON); err != nil {
		return nil, err
	}
	return out, nil
}
