// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapdiff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"github.com/wrgl/snapdiff/cmd/snapdiff/utils"
	"github.com/wrgl/snapdiff/pkg/conf"
	"github.com/wrgl/snapdiff/pkg/diffcache"
	"github.com/wrgl/snapdiff/pkg/ignore"
	"github.com/wrgl/snapdiff/pkg/local"
	"github.com/wrgl/snapdiff/pkg/pbar"
	"github.com/wrgl/snapdiff/pkg/present"
	"github.com/wrgl/snapdiff/pkg/snapshot"
	"github.com/wrgl/snapdiff/pkg/tablediff"
	"github.com/wrgl/snapdiff/pkg/widgets"
	"golang.org/x/sync/errgroup"
)

const watchDebounce = 200 * time.Millisecond

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff SNAPSHOT1 SNAPSHOT2",
		Short: "Show cell-level changes between two snapshots",
		Long: strings.Join([]string{
			"Show cell-level changes between two snapshots. A snapshot is either a CSV file, which",
			"holds a single table named after the file, or a directory of CSV files. Rows are",
			"matched by primary key value and every cell is reported as stay, added, deleted or none.",
		}, " "),
		Example: strings.Join([]string{
			`  # browse changes in the interactive viewer`,
			`  snapdiff diff yesterday/ today/`,
			``,
			`  # use "user_id" as the primary key of table "users" and "id" everywhere else`,
			`  snapdiff diff yesterday/ today/ -p users=user_id`,
			``,
			`  # hide audit tables and print changes as text`,
			`  snapdiff diff yesterday/ today/ --ignore-pattern "audit_*" --format text`,
			``,
			`  # print change counts only`,
			`  snapdiff diff yesterday/ today/ --format text --summary`,
			``,
			`  # keep the viewer open and refresh it whenever a snapshot file changes`,
			`  snapdiff diff yesterday/ today/ --watch`,
		}, "\n"),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := utils.GetSnapdiffDir(cmd)
			if err != nil {
				return err
			}
			if d != nil {
				defer d.Close()
			}
			c, err := utils.OpenConfig(d)
			if err != nil {
				return err
			}
			opts, err := getDiffOptions(cmd, c)
			if err != nil {
				return err
			}
			cleanup, err := utils.SetupLogger(cmd, opts.format == conf.OFGUI)
			if err != nil {
				return err
			}
			defer cleanup()
			opts.logger = utils.GetLogger(cmd)
			if !opts.noCache && d != nil && d.Exist() {
				opts.cache, err = d.OpenCache(c.CacheType())
				if err != nil {
					return err
				}
				if opts.cache != nil {
					defer opts.cache.Close()
				}
			}
			opts.pt, err = utils.GetProgressBarContainer(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			sd, err := opts.diff(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			ignored, err := opts.ignoreList(sd)
			if err != nil {
				return err
			}

			if opts.format == conf.OFGUI {
				return runDiffApp(ctx, d, opts, args, sd, ignored)
			}
			if err := writeDiff(cmd.OutOrStdout(), opts, sd, ignored); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}
			return watchSnapshots(ctx, d, opts, args, func(sd *tablediff.SnapshotDiff) error {
				fmt.Fprintln(cmd.OutOrStdout())
				return writeDiff(cmd.OutOrStdout(), opts, sd, ignored)
			})
		},
	}
	cmd.Flags().StringSliceP("primary-key", "p", nil, strings.Join([]string{
		`primary key column. Either "COLUMN", which applies to every table without a`,
		`table specific key, or "TABLE=COLUMN". Defaults to config diff.primaryKey or "id".`,
	}, " "))
	cmd.Flags().StringSlice("ignore", nil, "hide these tables in addition to config diff.ignoreTables")
	cmd.Flags().StringSlice("ignore-pattern", nil, "hide tables whose name matches these glob patterns in addition to config diff.ignorePatterns")
	cmd.Flags().String("format", "", `output format, one of "gui", "text", "csv" and "json". Defaults to config output.format, "gui" when output is a terminal and "text" otherwise`)
	cmd.Flags().Bool("no-cache", false, "don't read or write the diff cache")
	cmd.Flags().Bool("watch", false, "recompute the diff whenever a snapshot file changes")
	cmd.Flags().Int("workers", 0, "number of tables compared in parallel. Defaults to config diff.workers or 4")
	cmd.Flags().String("delimiter", "", "CSV delimiter, defaults to comma")
	cmd.Flags().Bool("quote-strings", false, `show string values quoted ("John") and null tokens as <null>, leaving numbers as-is`)
	cmd.Flags().String("null", "", `with --quote-strings, values equal to this token are shown as <null>`)
	cmd.Flags().Bool("summary", false, "only show row and column change counts of each table")
	cmd.Flags().Bool("no-color", false, "disable text output colors")
	utils.SetupProgressBarFlags(cmd.Flags())
	return cmd
}

type diffOptions struct {
	pk             snapshot.PrimaryKeys
	readOpts       []snapshot.ReadOption
	ignoreTables   []string
	ignorePatterns []string
	format         conf.OutputFormat
	noColor        bool
	noCache        bool
	watch          bool
	summary        bool
	workers        int
	cache          diffcache.Store
	logger         *logr.Logger
	pt             *pbar.Container
}

func getDiffOptions(cmd *cobra.Command, c *conf.Config) (*diffOptions, error) {
	opts := &diffOptions{}
	pkFlag, err := cmd.Flags().GetStringSlice("primary-key")
	if err != nil {
		return nil, err
	}
	if opts.pk, err = snapshot.ParsePrimaryKeys(c.PrimaryKey(), pkFlag); err != nil {
		return nil, err
	}
	if opts.ignoreTables, err = cmd.Flags().GetStringSlice("ignore"); err != nil {
		return nil, err
	}
	opts.ignoreTables = append(append([]string{}, c.IgnoreTables()...), opts.ignoreTables...)
	if opts.ignorePatterns, err = cmd.Flags().GetStringSlice("ignore-pattern"); err != nil {
		return nil, err
	}
	opts.ignorePatterns = append(append([]string{}, c.IgnorePatterns()...), opts.ignorePatterns...)
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	opts.format = conf.OutputFormat(format)
	if opts.format == "" {
		opts.format = c.OutputFormat()
	}
	if opts.format == "" {
		if utils.IsTerminal(cmd) {
			opts.format = conf.OFGUI
		} else {
			opts.format = conf.OFText
		}
	}
	if err = (&conf.Config{Output: &conf.Output{Format: opts.format}}).Validate(); err != nil {
		return nil, err
	}
	if opts.noColor, err = cmd.Flags().GetBool("no-color"); err != nil {
		return nil, err
	}
	if !opts.noColor {
		if enabled, ok := c.ColorEnabled(); ok {
			opts.noColor = !enabled
		} else {
			opts.noColor = !utils.IsTerminal(cmd)
		}
	}
	if opts.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return nil, err
	}
	opts.noCache = opts.noCache || c.CacheType() == conf.CTNone
	if opts.watch, err = cmd.Flags().GetBool("watch"); err != nil {
		return nil, err
	}
	if opts.summary, err = cmd.Flags().GetBool("summary"); err != nil {
		return nil, err
	}
	if opts.workers, err = cmd.Flags().GetInt("workers"); err != nil {
		return nil, err
	}
	if opts.workers <= 0 {
		opts.workers = c.Workers()
	}
	delim, err := cmd.Flags().GetString("delimiter")
	if err != nil {
		return nil, err
	}
	if delim != "" {
		r, size := utf8.DecodeRuneInString(delim)
		if size != len(delim) {
			return nil, fmt.Errorf("invalid delimiter %q: must be a single character", delim)
		}
		opts.readOpts = append(opts.readOpts, snapshot.WithDelimiter(r))
	}
	quote, err := cmd.Flags().GetBool("quote-strings")
	if err != nil {
		return nil, err
	}
	if quote {
		null, err := cmd.Flags().GetString("null")
		if err != nil {
			return nil, err
		}
		opts.readOpts = append(opts.readOpts, snapshot.WithValueFormatter(snapshot.QuoteStrings(null)))
	}
	return opts, nil
}

func (o *diffOptions) readSet(path string) (*snapshot.Set, error) {
	bars := []pbar.Bar{}
	readOpts := append([]snapshot.ReadOption{
		snapshot.WithFileWrapper(func(name string, size int64, r io.Reader) io.Reader {
			bar := o.pt.NewBar(size, "Reading "+name, pbar.UnitKiB)
			bars = append(bars, bar)
			return pbar.NewReader(bar, r)
		}),
	}, o.readOpts...)
	set, err := snapshot.ReadPath(path, o.pk, readOpts...)
	// files that failed to parse are never read to the end
	for _, bar := range bars {
		bar.Abort()
	}
	o.pt.Wait()
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot %q: %w", path, err)
	}
	return set, nil
}

// diff reads both snapshots and diffs them, going through the cache when there
// is one.
func (o *diffOptions) diff(ctx context.Context, path1, path2 string) (*tablediff.SnapshotDiff, error) {
	set1, err := o.readSet(path1)
	if err != nil {
		return nil, err
	}
	set2, err := o.readSet(path2)
	if err != nil {
		return nil, err
	}
	id1, id2 := set1.ID(), set2.ID()
	if o.cache != nil {
		sd, err := o.cache.Get(id1, id2)
		if err == nil {
			o.info("found cached diff", "diffId", sd.ID)
			return sd, nil
		}
		if !errors.Is(err, diffcache.ErrKeyNotFound) {
			o.info("discarding unreadable cached diff", "error", err.Error())
		}
	}
	total := len(snapshotTableNames(set1, set2))
	bar := o.pt.NewBar(int64(total), "Comparing tables", 0)
	differOpts := []tablediff.DifferOption{
		tablediff.WithNumWorkers(o.workers),
		tablediff.WithProgressBar(bar),
	}
	if o.logger != nil {
		differOpts = append(differOpts, tablediff.WithDebugLogger(o.logger))
	}
	sd, err := tablediff.DiffSnapshots(ctx, set1, set2, differOpts...)
	if err != nil {
		bar.Abort()
		o.pt.Wait()
		return nil, err
	}
	bar.Done()
	o.pt.Wait()
	if o.cache != nil {
		if err := o.cache.Save(sd); err != nil {
			return nil, fmt.Errorf("error saving diff to cache: %w", err)
		}
		o.info("saved diff to cache", "diffId", sd.ID)
	}
	return sd, nil
}

func (o *diffOptions) info(msg string, keysAndValues ...interface{}) {
	if o.logger != nil {
		o.logger.Info(msg, keysAndValues...)
	}
}

func snapshotTableNames(set1, set2 *snapshot.Set) map[string]struct{} {
	m := map[string]struct{}{}
	for _, set := range []*snapshot.Set{set1, set2} {
		for _, name := range set.TableNames() {
			m[name] = struct{}{}
		}
	}
	return m
}

// ignoreList builds the session ignore list. Patterns are matched once against
// the tables of sd.
func (o *diffOptions) ignoreList(sd *tablediff.SnapshotDiff) (*ignore.List, error) {
	l := ignore.NewList(o.ignoreTables...)
	names := sd.TableNames()
	for _, p := range o.ignorePatterns {
		if err := l.AddPattern(p, names); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func writeDiff(w io.Writer, o *diffOptions, sd *tablediff.SnapshotDiff, ignored *ignore.List) error {
	visible := ignore.Visible(sd.TableDiffs, ignored)
	switch o.format {
	case conf.OFJSON:
		if o.summary {
			return present.WriteJSONSummary(w, present.Summary(visible))
		}
		filtered := *sd
		filtered.TableDiffs = visible
		return present.WriteJSON(w, &filtered)
	case conf.OFCSV:
		if o.summary {
			return present.WriteCSVSummary(w, present.Summary(visible))
		}
		for i, td := range visible {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := present.WriteCSV(w, present.Layout(td)); err != nil {
				return err
			}
		}
		return nil
	default:
		r := present.NewTextRenderer(w, o.noColor)
		if o.summary {
			return r.RenderSummary(visible)
		}
		if len(visible) == 0 {
			_, err := fmt.Fprintln(w, "No tables to show")
			return err
		}
		for _, td := range visible {
			if err := r.Render(present.Layout(td)); err != nil {
				return err
			}
		}
		return nil
	}
}

// watchSnapshots re-runs the diff after files under the snapshot paths change
// and calls update with the result. It returns when ctx is done.
func watchSnapshots(ctx context.Context, d *local.SnapdiffDir, o *diffOptions, paths []string, update func(sd *tablediff.SnapshotDiff) error) error {
	if d == nil {
		d = local.NewSnapdiffDir("", "")
		defer d.Close()
	}
	watcher, err := d.Watcher(paths...)
	if err != nil {
		return err
	}
	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			o.info("snapshot changed", "file", ev.Name, "op", ev.Op.String())
			timer = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		case <-timer:
			timer = nil
			sd, err := o.diff(ctx, paths[0], paths[1])
			if err != nil {
				o.info("diff failed, waiting for further changes", "error", err.Error())
				continue
			}
			if err := update(sd); err != nil {
				return err
			}
		}
	}
}

func runDiffApp(ctx context.Context, d *local.SnapdiffDir, o *diffOptions, paths []string, sd *tablediff.SnapshotDiff, ignored *ignore.List) error {
	app := tview.NewApplication()
	diffApp := widgets.NewDiffApp(app, sd, ignored).SetIgnoreFunc(func(name string, hidden bool) {
		o.info("toggled table visibility", "table", name, "ignored", hidden)
	})
	app.SetRoot(diffApp.Pages, true).EnableMouse(true)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		app.Stop()
	}()
	if o.watch {
		// progress bars would draw over the viewer
		o.pt = pbar.NewContainer(io.Discard, true)
		stopWatching := startWatching(ctx, d, o, paths, func(sd *tablediff.SnapshotDiff) error {
			if ctx.Err() == nil {
				app.QueueUpdateDraw(func() {
					diffApp.SetDiff(sd)
				})
			}
			return nil
		})
		defer stopWatching()
	}
	err := app.Run()
	cancel()
	return err
}

// startWatching runs watchSnapshots in the background. The returned func stops
// watching and waits until any diff in progress is done with the cache.
func startWatching(ctx context.Context, d *local.SnapdiffDir, o *diffOptions, paths []string, update func(sd *tablediff.SnapshotDiff) error) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var g errgroup.Group
	g.Go(func() error {
		return watchSnapshots(ctx, d, o, paths, update)
	})
	return func() {
		cancel()
		if err := g.Wait(); err != nil {
			o.info("stopped watching", "error", err.Error())
		}
	}
}
