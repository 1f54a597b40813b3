// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conffs

import (
	"reflect"

	"github.com/imdario/mergo"
	"github.com/wrgl/snapdiff/pkg/conf"
)

// ptrTransformer lets a non-nil pointer to a scalar (such as output.color set
// to false) override the lower level value.
type ptrTransformer struct{}

func (t *ptrTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ.Kind() == reflect.Ptr && typ.Elem().Kind() != reflect.Struct {
		return func(dst, src reflect.Value) error {
			if dst.CanSet() && !src.IsNil() {
				dst.Set(src)
			}
			return nil
		}
	}
	return nil
}

// aggregateConfig merges system, global and local configs, in increasing order
// of precedence.
func (s *Store) aggregateConfig() (*conf.Config, error) {
	fp, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	var result *conf.Config
	for _, p := range []string{systemConfigPath(), fp, localPath(s.rootDir)} {
		c, err := s.readConfig(p)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = c
			continue
		}
		if err = mergo.Merge(result, c, mergo.WithOverride, mergo.WithTransformers(&ptrTransformer{})); err != nil {
			return nil, err
		}
	}
	return result, nil
}
