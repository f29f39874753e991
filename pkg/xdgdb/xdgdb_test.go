// pkg/xdgdb/xdgdb_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Verify mimeapps.list merging, cache/scan indexes and MIME database loading

package xdgdb

import (
	"testing"

	"github.com/arthur-debert/openwith/pkg/desktop"
	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, fsys filesystem.FS, path, content string) {
	t.Helper()
	require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
}

func TestLoadAssociations(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, "/user/mimeapps.list", `[Default Applications]
image/jpeg=gimp.desktop;other.desktop

[Added Associations]
image/jpeg=feh.desktop;eog.desktop;
text/plain=gedit.desktop;

[Removed Associations]
text/plain=nano.desktop;
`)
	write(t, fsys, "/system/mimeapps.list", `[Default Applications]
image/jpeg=eog.desktop
image/png=eog.desktop

[Added Associations]
image/jpeg=eog.desktop;shotwell.desktop;

[Removed Associations]
image/jpeg=feh.desktop;shotwell.desktop;
image/*=paint.desktop;
`)

	assoc := LoadAssociations(fsys, []string{"/user/mimeapps.list", "/missing/mimeapps.list", "/system/mimeapps.list"})

	assert.Equal(t, Association{ID: "gimp.desktop", Source: "/user/mimeapps.list"}, assoc.Defaults["image/jpeg"])
	assert.Equal(t, Association{ID: "eog.desktop", Source: "/system/mimeapps.list"}, assoc.Defaults["image/png"])

	assert.Equal(t, []Association{
		{ID: "feh.desktop", Source: "/user/mimeapps.list"},
		{ID: "eog.desktop", Source: "/user/mimeapps.list"},
		{ID: "shotwell.desktop", Source: "/system/mimeapps.list"},
	}, assoc.Added["image/jpeg"])

	assert.False(t, assoc.IsRemoved("image/jpeg", "feh.desktop"), "lower file cannot remove a higher file's addition")
	assert.True(t, assoc.IsRemoved("image/jpeg", "shotwell.desktop"))
	assert.True(t, assoc.IsRemoved("text/plain", "nano.desktop"))
	assert.True(t, assoc.IsRemoved("image/png", "paint.desktop"), "wildcard removal applies")
	assert.False(t, assoc.IsRemoved("text/plain", "paint.desktop"))
}

func TestWildcard(t *testing.T) {
	assert.Equal(t, "image/*", Wildcard("image/png"))
	assert.Equal(t, "", Wildcard("noslash"))
	assert.Equal(t, "", Wildcard("/png"))
	assert.Equal(t, "image", MajorType("image/png"))
}

func TestLoadMimeinfoCache(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, "/a/mimeinfo.cache", "[MIME Cache]\nimage/png=eog.desktop;gimp.desktop;\n")
	write(t, fsys, "/b/mimeinfo.cache", "[MIME Cache]\nimage/png=eog.desktop;\ntext/plain=gedit.desktop;\n[Other]\nimage/gif=x.desktop;\n")

	index := LoadMimeinfoCache(fsys, []string{"/a", "/b", "/c"})
	assert.Equal(t, KindMimeinfoCache, index.Kind)
	assert.Equal(t, []Handler{
		{ID: "eog.desktop", Source: "/a/mimeinfo.cache"},
		{ID: "gimp.desktop", Source: "/a/mimeinfo.cache"},
		{ID: "eog.desktop", Source: "/b/mimeinfo.cache"},
	}, index.Lookup("image/png"))
	assert.Nil(t, index.Lookup("image/gif"))
	assert.False(t, index.Empty())

	assert.True(t, LoadMimeinfoCache(fsys, []string{"/c"}).Empty())
}

func TestScanDesktopFiles(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, "/apps/eog.desktop", "[Desktop Entry]\nType=Application\nName=Eye\nExec=eog %U\nMimeType=image/png;image/jpeg;\n")
	write(t, fsys, "/apps/hidden.desktop", "[Desktop Entry]\nType=Application\nName=H\nExec=h\nHidden=true\nMimeType=image/png;\n")
	write(t, fsys, "/more/eog.desktop", "[Desktop Entry]\nType=Application\nName=Other Eye\nExec=eog2\nMimeType=image/gif;\n")

	store := desktop.NewStore(fsys, []string{"/apps", "/more"}, nil)
	index := ScanDesktopFiles(store)

	assert.Equal(t, KindFullScan, index.Kind)
	assert.Equal(t, []Handler{{ID: "eog.desktop", Source: "/apps/eog.desktop"}}, index.Lookup("image/png"))
	assert.Nil(t, index.Lookup("image/gif"), "shadowed file in a lower directory is not indexed")

	_, ok := store.Get("eog.desktop")
	assert.True(t, ok, "scan populates the store")
}

func TestLoadMimeDB(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, "/user/mime/aliases", "# comment\nimage/x-icon image/vnd.microsoft.icon\n")
	write(t, fsys, "/sys/mime/aliases", "image/x-icon image/other\ntext/ico image/vnd.microsoft.icon\napplication/x-pdf application/pdf\nbroken\n")
	write(t, fsys, "/user/mime/subclasses", "application/x-foo text/x-user\n")
	write(t, fsys, "/sys/mime/subclasses", "application/x-foo text/plain\nimage/svg+xml application/xml\n")

	db := LoadMimeDB(fsys, []string{"/user/mime", "/sys/mime"}, LoadOptions{Aliases: true, Subclasses: true})

	assert.Equal(t, "image/vnd.microsoft.icon", db.Aliases["image/x-icon"], "first definition wins")
	assert.Equal(t, "application/pdf", db.Aliases["application/x-pdf"])
	assert.Equal(t, []string{"image/x-icon"}, db.Reverse["image/vnd.microsoft.icon"], "cross-family alias is not reversed")
	assert.Equal(t, []string{"application/x-pdf"}, db.Reverse["application/pdf"])

	assert.Equal(t, "text/x-user", db.Subclasses["application/x-foo"], "higher priority overwrites")
	assert.Equal(t, "application/xml", db.Subclasses["image/svg+xml"])
	assert.Nil(t, db.Globs)
}

func TestLoadMimeDB_Disabled(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, "/sys/mime/aliases", "a/b c/d\n")

	db := LoadMimeDB(fsys, []string{"/sys/mime"}, LoadOptions{})
	assert.Nil(t, db.Aliases)
	assert.Nil(t, db.Reverse)
	assert.Nil(t, db.Subclasses)
}

const packageXML = `<?xml version="1.0" encoding="UTF-8"?>
<mime-info xmlns="http://www.freedesktop.org/standards/shared-mime-info">
  <mime-type type="text/x-openwith">
    <comment>Openwith test</comment>
    <sub-class-of type="text/plain"/>
    <alias type="text/x-ow"/>
    <glob pattern="*.OWT"/>
    <glob pattern="Makefile.*"/>
  </mime-type>
  <mime-type type="image/vnd.microsoft.icon">
    <alias type="image/x-icon"/>
    <glob pattern="*.ico"/>
  </mime-type>
</mime-info>
`

func TestLoadMimeDB_Packages(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, "/sys/mime/packages/openwith.xml", packageXML)
	write(t, fsys, "/sys/mime/packages/broken.xml", "<mime-info><mime-type")
	write(t, fsys, "/sys/mime/aliases", "image/x-icon image/vnd.compiled\n")
	write(t, fsys, "/sys/mime/subclasses", "text/x-openwith text/x-compiled\n")

	db := LoadMimeDB(fsys, []string{"/sys/mime"}, LoadOptions{Aliases: true, Subclasses: true, Packages: true})

	assert.Equal(t, "text/x-openwith", db.Aliases["text/x-ow"])
	assert.Equal(t, "image/vnd.compiled", db.Aliases["image/x-icon"], "compiled aliases take priority")
	assert.Equal(t, "text/x-compiled", db.Subclasses["text/x-openwith"], "compiled subclasses take priority")
	assert.Equal(t, "text/x-openwith", db.Globs[".owt"])
	assert.Equal(t, "image/vnd.microsoft.icon", db.Globs[".ico"])
	assert.Len(t, db.Globs, 2)
}

func TestGlobExtension(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
		ok      bool
	}{
		{"*.png", ".png", true},
		{"*.TAR.GZ", ".tar.gz", true},
		{"*.[ch]", "", false},
		{"README", "", false},
		{"*.", "", false},
	}
	for _, tt := range tests {
		got, ok := globExtension(tt.pattern)
		assert.Equal(t, tt.ok, ok, tt.pattern)
		assert.Equal(t, tt.want, got, tt.pattern)
	}
}
