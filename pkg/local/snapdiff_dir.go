// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package local

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/fsnotify/fsnotify"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wrgl/snapdiff/pkg/conf"
	"github.com/wrgl/snapdiff/pkg/diffcache"
	cachebadger "github.com/wrgl/snapdiff/pkg/diffcache/badger"
	cachesql "github.com/wrgl/snapdiff/pkg/diffcache/sql"
)

const DirName = ".snapdiff"

// SnapdiffDir is the directory holding the local config and the diff cache.
type SnapdiffDir struct {
	FullPath  string
	badgerLog string
	watcher   *fsnotify.Watcher
}

func NewSnapdiffDir(dir string, badgerLog string) *SnapdiffDir {
	return &SnapdiffDir{
		FullPath:  dir,
		badgerLog: strings.ToLower(badgerLog),
	}
}

func (d *SnapdiffDir) KVPath() string {
	return filepath.Join(d.FullPath, "kv")
}

func (d *SnapdiffDir) SQLitePath() string {
	return filepath.Join(d.FullPath, "cache.db")
}

func (d *SnapdiffDir) openBadger() (*badger.DB, error) {
	opts := badger.DefaultOptions(d.KVPath()).
		WithLoggingLevel(badger.ERROR)
	switch d.badgerLog {
	case "debug":
		opts = opts.WithLoggingLevel(badger.DEBUG)
	case "info":
		opts = opts.WithLoggingLevel(badger.INFO)
	case "warning":
		opts = opts.WithLoggingLevel(badger.WARNING)
	}
	return badger.Open(opts)
}

func (d *SnapdiffDir) openSQLite() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", d.SQLitePath())
	if err != nil {
		return nil, err
	}
	if err = cachesql.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenCache opens the diff cache of the given type. It returns a nil store for
// conf.CTNone.
func (d *SnapdiffDir) OpenCache(typ conf.CacheType) (diffcache.Store, error) {
	switch typ {
	case conf.CTNone:
		return nil, nil
	case conf.CTBadger, "":
		db, err := d.openBadger()
		if err != nil {
			return nil, err
		}
		return cachebadger.NewStore(db), nil
	case conf.CTSQLite:
		db, err := d.openSQLite()
		if err != nil {
			return nil, err
		}
		return cachesql.NewStore(db), nil
	}
	return nil, fmt.Errorf("unknown cache type %q", typ)
}

// Watcher returns a watcher of the given paths. Directories are watched
// non-recursively. The same watcher is returned on subsequent calls.
func (d *SnapdiffDir) Watcher(paths ...string) (*fsnotify.Watcher, error) {
	if d.watcher == nil {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, err
		}
		d.watcher = watcher
	}
	for _, p := range paths {
		if err := d.watcher.Add(p); err != nil {
			return nil, err
		}
	}
	return d.watcher, nil
}

func (d *SnapdiffDir) Init() error {
	if _, err := os.Stat(d.FullPath); os.IsNotExist(err) {
		if err := os.Mkdir(d.FullPath, 0755); err != nil {
			return err
		}
	}
	return os.Mkdir(d.KVPath(), 0755)
}

func (d *SnapdiffDir) Exist() bool {
	for _, s := range []string{d.FullPath, d.KVPath()} {
		_, err := os.Stat(s)
		if err != nil {
			return false
		}
	}
	return true
}

// FindSnapdiffDir looks for a .snapdiff directory in the working directory and
// its parents. The search stops at the home directory when the working
// directory is under it. It returns an empty string if nothing is found.
func FindSnapdiffDir() (string, error) {
	d, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}
	home, _ := os.UserHomeDir()
	if home != "" {
		home, err = filepath.EvalSymlinks(home)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(d, home) {
			home = ""
		}
	}
	for {
		wd := filepath.Join(d, DirName)
		_, err := os.Stat(wd)
		if err == nil {
			return wd, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		if home != "" {
			if d == home {
				break
			}
		} else if filepath.Dir(d) == d {
			break
		}
		d = filepath.Dir(d)
	}
	return "", nil
}

func (d *SnapdiffDir) Close() error {
	if d.watcher != nil {
		return d.watcher.Close()
	}
	return nil
}
