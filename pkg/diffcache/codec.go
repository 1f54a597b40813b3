// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package diffcache

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/pckhoi/meow"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

// Encode serializes sd as s2-compressed JSON prefixed with the meow checksum of
// the uncompressed JSON.
func Encode(sd *tablediff.SnapshotDiff) ([]byte, error) {
	b, err := json.Marshal(sd)
	if err != nil {
		return nil, err
	}
	sum := meow.Checksum(0, b)
	return append(sum[:], s2.Encode(nil, b)...), nil
}

// Decode reverses Encode. Payloads that fail the checksum or describe an invalid
// diff return ErrCorrupted.
func Decode(b []byte) (*tablediff.SnapshotDiff, error) {
	if len(b) < meow.Size {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorrupted, len(b))
	}
	content, err := s2.Decode(nil, b[meow.Size:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	sum := meow.Checksum(0, content)
	if !bytes.Equal(sum[:], b[:meow.Size]) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupted)
	}
	sd := &tablediff.SnapshotDiff{}
	if err = json.Unmarshal(content, sd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if err = sd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return sd, nil
}

// Key is the badger key of the diff between two snapshots.
func Key(snapshotID1, snapshotID2 string) []byte {
	return []byte(fmt.Sprintf("diff/%s/%s", snapshotID1, snapshotID2))
}

// KeyPrefix is the common prefix of all diff keys.
var KeyPrefix = []byte("diff/")
