package resolver

import (
	"context"
	"sort"

	"github.com/arthur-debert/openwith/pkg/config"
	"github.com/arthur-debert/openwith/pkg/desktop"
	"github.com/arthur-debert/openwith/pkg/detect"
	"github.com/arthur-debert/openwith/pkg/execline"
	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/logging"
	"github.com/arthur-debert/openwith/pkg/paths"
	"github.com/arthur-debert/openwith/pkg/toolrun"
	"github.com/rs/zerolog"
)

// CandidateInfo is one application able to open the requested files
type CandidateInfo struct {
	Name           string `json:"name"`
	ID             string `json:"id"`
	Terminal       bool   `json:"terminal"`
	MultiFileAware bool   `json:"multiFileAware"`
}

// Field is one labeled line of candidate details
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Provider resolves files to applications. The entries and sources found by
// the last GetAppCandidates call are kept for GenerateLaunchCommands and
// GetCandidateDetails. A Provider is not safe for concurrent use.
type Provider struct {
	fs           filesystem.FS
	runner       toolrun.Runner
	customRunner bool
	cfg          *config.Config
	configPath   string
	logger       zerolog.Logger

	store    *desktop.Store
	sources  map[string]string
	profiles []detect.Profile
}

// Option configures a Provider
type Option func(*Provider)

// WithFS sets the filesystem used for every read and the settings write
func WithFS(fsys filesystem.FS) Option {
	return func(p *Provider) { p.fs = fsys }
}

// WithRunner replaces the external tool runner
func WithRunner(r toolrun.Runner) Option {
	return func(p *Provider) {
		p.runner = r
		p.customRunner = true
	}
}

// WithConfig sets the initial configuration
func WithConfig(cfg *config.Config) Option {
	return func(p *Provider) { p.cfg = cfg }
}

// WithConfigPath overrides the settings file location used by Load and Save
func WithConfigPath(path string) Option {
	return func(p *Provider) { p.configPath = path }
}

// New creates a Provider with the built-in defaults
func New(opts ...Option) *Provider {
	p := &Provider{
		fs:     filesystem.NewOS(),
		cfg:    config.Default(),
		logger: logging.GetLogger("resolver"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.runner == nil {
		p.runner = p.cfg.Tools.Runner()
	}
	return p
}

// Config returns the active configuration
func (p *Provider) Config() *config.Config {
	return p.cfg
}

// GetAppCandidates returns the applications able to open every file, best
// first. Nothing here fails: unreadable files and databases simply
// contribute nothing.
func (p *Provider) GetAppCandidates(ctx context.Context, files []string) []CandidateInfo {
	if len(files) == 0 {
		return nil
	}
	done := logging.LogOperationStart(p.logger, "GetAppCandidates")
	defer done()

	op := newOpContext(ctx, p.fs, p.runner, p.cfg.Settings, p.logger)
	defer op.release()

	p.store = op.store
	p.sources = make(map[string]string)
	p.profiles = nil

	var found candidateMap
	if len(files) == 1 {
		profile := op.detector.Profile(files[0])
		p.profiles = []detect.Profile{profile}
		found = op.discoverProfile(profile)
	} else {
		seen := make(map[detect.Profile]bool)
		for _, f := range files {
			profile := op.detector.Profile(f)
			if !seen[profile] {
				seen[profile] = true
				p.profiles = append(p.profiles, profile)
			}
		}
		found = op.discoverAll(p.profiles)
	}

	sorted := found.sorted(p.cfg.Settings.SortAlphabetically)
	result := make([]CandidateInfo, 0, len(sorted))
	for _, r := range sorted {
		entry, ok := op.store.Get(r.id)
		if !ok {
			continue
		}
		ci := candidateInfo(entry)
		if len(files) == 1 {
			if _, ok := p.sources[ci.ID]; !ok {
				p.sources[ci.ID] = r.source
			}
		}
		result = append(result, ci)
	}

	p.logger.Debug().
		Int("files", len(files)).
		Int("profiles", len(p.profiles)).
		Int("candidates", len(result)).
		Msg("Resolved candidates")
	return result
}

func candidateInfo(e *desktop.Entry) CandidateInfo {
	return CandidateInfo{
		Name:           e.DisplayName(),
		ID:             e.ID,
		Terminal:       e.IsTerminal(),
		MultiFileAware: e.Analysis.MultiFileAware(),
	}
}

// GenerateLaunchCommands builds the shell command lines that open files with
// candidate. The candidate must come from the last GetAppCandidates call.
func (p *Provider) GenerateLaunchCommands(candidate CandidateInfo, files []string) []string {
	if len(files) == 0 {
		return nil
	}
	entry, ok := p.entry(candidate.ID)
	if !ok || entry.Exec == "" {
		return nil
	}

	target := execline.Target{Name: entry.Name, DesktopFile: entry.Path}
	opts := execline.Options{URLsAsPaths: p.cfg.Settings.TreatUrlsAsPaths}
	return execline.GenerateLaunchCommands(entry.Analysis, target, files, opts)
}

// GetCandidateDetails lists the desktop entry fields of candidate. The
// association source is only known after a single-file lookup.
func (p *Provider) GetCandidateDetails(candidate CandidateInfo) []Field {
	entry, ok := p.entry(candidate.ID)
	if !ok {
		return nil
	}

	details := []Field{{Label: "Desktop file", Value: entry.Path}}
	if source, ok := p.sources[candidate.ID]; ok {
		details = append(details, Field{Label: "Source", Value: source})
	}

	for _, f := range []Field{
		{"Name", entry.Name},
		{"GenericName", entry.GenericName},
		{"Comment", entry.Comment},
		{"Categories", entry.Categories},
		{"Exec", entry.Exec},
		{"TryExec", entry.TryExec},
		{"Terminal", entry.Terminal},
		{"MimeType", entry.MimeType},
		{"NotShowIn", entry.NotShowIn},
		{"OnlyShowIn", entry.OnlyShowIn},
	} {
		if f.Value != "" {
			details = append(details, f)
		}
	}
	return details
}

// GetMimeTypes describes the unique detection profiles of the last
// GetAppCandidates call as "(a;b)" strings. "(none)" comes first when some
// file produced no type at all.
func (p *Provider) GetMimeTypes() []string {
	var result []string
	none := false
	unique := make(map[string]bool)
	var reprs []string

	for _, profile := range p.profiles {
		if profile.Empty() {
			none = true
			continue
		}
		s := profile.String()
		if !unique[s] {
			unique[s] = true
			reprs = append(reprs, s)
		}
	}
	sort.Strings(reprs)

	if none {
		result = append(result, "(none)")
	}
	return append(result, reprs...)
}

func (p *Provider) entry(id string) (*desktop.Entry, bool) {
	if p.store == nil {
		return nil, false
	}
	return p.store.Get(id)
}

func (p *Provider) settingsPath() string {
	if p.configPath != "" {
		return p.configPath
	}
	return paths.New(p.fs).ConfigFile()
}
