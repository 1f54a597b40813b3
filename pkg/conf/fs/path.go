// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conffs

import (
	"fmt"
	"os"
	"path/filepath"
)

const configFilename = "config.yaml"

func systemConfigPath() string {
	if s := os.Getenv("SNAPDIFF_SYSTEM_CONFIG_DIR"); s != "" {
		return filepath.Join(s, configFilename)
	}
	return filepath.Join("/usr/local/etc/snapdiff", configFilename)
}

func localPath(rootDir string) string {
	if rootDir == "" {
		return ""
	}
	return filepath.Join(rootDir, configFilename)
}

func (s *Store) path() (string, error) {
	switch s.source {
	case SystemSource:
		return systemConfigPath(), nil
	case GlobalSource:
		return globalConfigPath()
	case LocalSource:
		return localPath(s.rootDir), nil
	case FileSource:
		return s.fp, nil
	default:
		return "", fmt.Errorf("unrecognized source: %v", s.source)
	}
}
