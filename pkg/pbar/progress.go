// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package pbar

import (
	"io"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

const (
	UnitKiB int = decor.UnitKiB
	UnitKB  int = decor.UnitKB
)

// Container renders bars on a single mpb.Progress. A quiet container hands out
// no-op bars.
type Container struct {
	mu    sync.Mutex
	p     *mpb.Progress
	out   io.Writer
	quiet bool
}

func NewContainer(out io.Writer, quiet bool) *Container {
	return &Container{
		out:   out,
		quiet: quiet,
	}
}

func (c *Container) NewBar(total int64, name string, unit int) Bar {
	if c.quiet {
		return &noopBar{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.p == nil {
		c.p = mpb.New(mpb.WithOutput(c.out))
	}
	return &bar{b: c.addBar(total, name, unit), total: total}
}

func (c *Container) addBar(total int64, name string, unit int) *mpb.Bar {
	pairFmt := "%d / %d"
	if unit != 0 {
		pairFmt = "% .2f / % .2f"
	}
	options := []mpb.BarOption{
		mpb.PrependDecorators(decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DidentRight}), decor.Counters(unit, pairFmt)),
		mpb.BarRemoveOnComplete(),
	}
	if total > 0 {
		options = append(options,
			mpb.AppendDecorators(decor.Percentage(decor.WC{W: 5, C: decor.DidentRight}), decor.Elapsed(decor.ET_STYLE_GO)),
		)
	} else {
		options = append(options,
			mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
		)
	}
	b := c.p.New(total,
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding(" ").Rbound("]"),
		options...,
	)
	b.EnableTriggerComplete()
	return b
}

// Wait blocks until every bar is done or aborted.
func (c *Container) Wait() {
	c.mu.Lock()
	p := c.p
	c.p = nil
	c.mu.Unlock()
	if p != nil {
		p.Wait()
	}
}
