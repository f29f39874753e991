// Package detect collects the raw MIME signals for a path: external query
// tools, an in-process content sniffer, the stat file type and the extension
// table. Every detector degrades to an empty string; nothing here fails.
package detect

import (
	"context"
	"io/fs"
	"sort"
	"strings"

	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/logging"
	"github.com/arthur-debert/openwith/pkg/toolrun"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// Stat pseudo-types for non-regular files
const (
	InodeDirectory   = "inode/directory"
	InodeFifo        = "inode/fifo"
	InodeSocket      = "inode/socket"
	InodeCharDevice  = "inode/chardevice"
	InodeBlockDevice = "inode/blockdevice"
)

// Profile is the set of raw MIME signals for one path. It is comparable and
// used directly as a map key to deduplicate identical files.
type Profile struct {
	XdgMime       string
	FileMime      string
	MagikaMime    string
	BuiltinMime   string
	StatMime      string
	ExtMime       string
	IsRegularFile bool
}

// Types returns the distinct non-empty signals, sorted
func (p Profile) Types() []string {
	set := make(map[string]bool)
	for _, m := range []string{p.XdgMime, p.FileMime, p.MagikaMime, p.BuiltinMime, p.StatMime, p.ExtMime} {
		if m != "" {
			set[m] = true
		}
	}
	types := make([]string, 0, len(set))
	for m := range set {
		types = append(types, m)
	}
	sort.Strings(types)
	return types
}

// Empty reports whether no detector produced anything
func (p Profile) Empty() bool {
	return len(p.Types()) == 0
}

// String renders the profile as "(a;b)"
func (p Profile) String() string {
	types := p.Types()
	if len(types) == 0 {
		return "(none)"
	}
	return "(" + strings.Join(types, ";") + ")"
}

// Options selects the enabled detectors
type Options struct {
	UseXdgMimeTool            bool
	UseFileTool               bool
	UseMagikaTool             bool
	UseBuiltinSniffer         bool
	UseExtensionBasedFallback bool
}

// Detector builds profiles. Tool availability is probed once in New, so a
// Detector belongs to a single resolution call.
type Detector struct {
	ctx    context.Context
	fs     filesystem.FS
	runner toolrun.Runner
	opts   Options
	globs  map[string]string
	logger zerolog.Logger

	xdgMime bool
	file    bool
	magika  bool
}

// New creates a detector. globs extends the extension table and may be nil.
func New(ctx context.Context, fsys filesystem.FS, runner toolrun.Runner, opts Options, globs map[string]string) *Detector {
	d := &Detector{
		ctx:    ctx,
		fs:     fsys,
		runner: runner,
		opts:   opts,
		globs:  globs,
		logger: logging.GetLogger("detect"),
	}
	d.xdgMime = opts.UseXdgMimeTool && runner.LookPath(toolrun.XdgMime)
	d.file = opts.UseFileTool && runner.LookPath(toolrun.File)
	d.magika = opts.UseMagikaTool && runner.LookPath(toolrun.Magika)

	d.logger.Debug().
		Bool("xdgMime", d.xdgMime).
		Bool("file", d.file).
		Bool("magika", d.magika).
		Msg("Detector tools")
	return d
}

// Profile gathers the raw MIME signals for path. Symlinks are followed; a
// missing path yields the zero Profile.
func (d *Detector) Profile(path string) Profile {
	var p Profile

	info, err := d.fs.Stat(path)
	if err != nil {
		d.logger.Debug().Err(err).Str("path", path).Msg("Cannot stat path")
		return p
	}

	mode := info.Mode()
	switch {
	case mode.IsRegular():
		p.IsRegularFile = true
	case mode.IsDir():
		p.StatMime = InodeDirectory
		return p
	case mode&fs.ModeNamedPipe != 0:
		p.StatMime = InodeFifo
		return p
	case mode&fs.ModeSocket != 0:
		p.StatMime = InodeSocket
		return p
	case mode&fs.ModeCharDevice != 0:
		p.StatMime = InodeCharDevice
		return p
	case mode&fs.ModeDevice != 0:
		p.StatMime = InodeBlockDevice
		return p
	default:
		return p
	}

	if d.opts.UseExtensionBasedFallback {
		p.ExtMime = GuessByExtension(path, d.globs)
	}

	if !d.xdgMime && !d.file && !d.magika && !d.opts.UseBuiltinSniffer {
		return p
	}
	if !filesystem.IsReadableFile(d.fs, path) {
		return p
	}

	if d.xdgMime {
		p.XdgMime = normalize(d.runner.Output(d.ctx, toolrun.XdgMime, "query", "filetype", path))
	}
	if d.file {
		p.FileMime = normalize(d.runner.Output(d.ctx, toolrun.File, "--brief", "--dereference", "--mime-type", path))
	}
	if d.magika {
		p.MagikaMime = normalize(d.runner.Output(d.ctx, toolrun.Magika, "--no-colors", "--format", "%m", path))
	}
	if d.opts.UseBuiltinSniffer {
		p.BuiltinMime = d.sniff(path)
	}

	d.logger.Trace().
		Str("path", path).
		Str("profile", p.String()).
		Msg("Built MIME profile")
	return p
}

func (d *Detector) sniff(path string) string {
	f, err := d.fs.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	m, err := mimetype.DetectReader(f)
	if err != nil || m == nil {
		return ""
	}
	return normalize(m.String())
}

// normalize drops parameters such as "; charset=utf-8" and surrounding space
func normalize(mime string) string {
	if semi := strings.IndexByte(mime, ';'); semi >= 0 {
		mime = mime[:semi]
	}
	return strings.TrimSpace(mime)
}
