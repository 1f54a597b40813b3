// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package pbar

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBar struct {
	noopBar
	n       int
	done    bool
	aborted bool
}

func (b *countingBar) IncrBy(n int) { b.n += n }
func (b *countingBar) Done()        { b.done = true }
func (b *countingBar) Abort()       { b.aborted = true }

type errReader struct{}

func (r errReader) Read(b []byte) (int, error) {
	return 0, errors.New("boom")
}

func TestReader(t *testing.T) {
	b := &countingBar{}
	content, err := io.ReadAll(NewReader(b, strings.NewReader("abcdef")))
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(content))
	assert.Equal(t, 6, b.n)
	assert.True(t, b.done)

	b = &countingBar{}
	_, err = io.ReadAll(NewReader(b, errReader{}))
	assert.Error(t, err)
	assert.True(t, b.aborted)
}

func TestQuietContainer(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	c := NewContainer(buf, true)
	b := c.NewBar(10, "Reading", 0)
	assert.IsType(t, &noopBar{}, b)
	b.Incr()
	b.Done()
	c.Wait()
	assert.Empty(t, buf.String())
}

func TestContainer(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	c := NewContainer(buf, false)
	b := c.NewBar(3, "Diffing", 0)
	for i := 0; i < 3; i++ {
		b.Incr()
	}
	b.Done()
	c.Wait()
}
