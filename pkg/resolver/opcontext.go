package resolver

import (
	"context"

	"github.com/arthur-debert/openwith/pkg/config"
	"github.com/arthur-debert/openwith/pkg/desktop"
	"github.com/arthur-debert/openwith/pkg/detect"
	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/mimetype"
	"github.com/arthur-debert/openwith/pkg/paths"
	"github.com/arthur-debert/openwith/pkg/toolrun"
	"github.com/arthur-debert/openwith/pkg/xdgdb"
	"github.com/erni27/imcache"
	"github.com/rs/zerolog"
)

// opContext is everything one GetAppCandidates call reads from the system.
// It is built at call entry and released when the call returns; only the
// store outlives it.
type opContext struct {
	ctx      context.Context
	settings config.Settings
	runner   toolrun.Runner
	logger   zerolog.Logger

	store    *desktop.Store
	assoc    *xdgdb.Associations
	index    *xdgdb.Index
	detector *detect.Detector
	expander *mimetype.Expander

	// desktops is empty unless FilterByShowIn is on
	desktops []string
	xdgMime  bool
	defaults *imcache.Cache[string, string]
}

func newOpContext(ctx context.Context, fsys filesystem.FS, runner toolrun.Runner, settings config.Settings, logger zerolog.Logger) *opContext {
	p := paths.New(fsys)
	current := paths.CurrentDesktops()

	db := xdgdb.LoadMimeDB(fsys, p.MimeDatabaseDirs(), settings.MimeDBOptions())

	dirs := p.DesktopFileDirs()
	op := &opContext{
		ctx:      ctx,
		settings: settings,
		runner:   runner,
		logger:   logger,
		store:    desktop.NewStore(fsys, dirs, desktop.Locales()),
		assoc:    xdgdb.LoadAssociations(fsys, p.MimeappsListFiles(current)),
		detector: detect.New(ctx, fsys, runner, settings.DetectOptions(), db.Globs),
		expander: mimetype.NewExpander(db, settings.ExpandOptions()),
		xdgMime:  runner.LookPath(toolrun.XdgMime),
		defaults: imcache.New[string, string](),
	}
	if settings.FilterByShowIn {
		op.desktops = current
	}

	if settings.UseMimeinfoCache {
		op.index = xdgdb.LoadMimeinfoCache(fsys, dirs)
	}
	if op.index.Empty() {
		op.index = xdgdb.ScanDesktopFiles(op.store)
	}

	logger.Debug().
		Strs("desktopDirs", dirs).
		Strs("desktops", current).
		Bool("mimeinfoCache", op.index.Kind == xdgdb.KindMimeinfoCache).
		Bool("xdgMime", op.xdgMime).
		Msg("Operation context ready")
	return op
}

func (o *opContext) release() {
	o.defaults.Close()
	o.assoc = nil
	o.index = nil
	o.detector = nil
	o.expander = nil
}

// defaultApp asks xdg-mime for the system default handler of mime. Answers,
// including empty ones, are memoized for the rest of the call.
func (o *opContext) defaultApp(mime string) string {
	if mime == "" || !o.xdgMime {
		return ""
	}
	if id, ok := o.defaults.Get(mime); ok {
		return id
	}
	id := o.runner.Output(o.ctx, toolrun.XdgMime, "query", "default", mime)
	o.defaults.Set(mime, id, imcache.WithNoExpiration())
	return id
}
