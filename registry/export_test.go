// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package registry

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/binaryshapes/mixor/result"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_Export(t *testing.T) {
	t.Run("will serialize the catalog", func(t *testing.T) {
		t.Run("with records sorted by id", func(t *testing.T) {
			reg := New()

			_, err := reg.Add(map[string]int{"n": 1}, "value")
			if !assert.Nil(t, err) {
				return
			}
			_, err = reg.Add(map[string]int{"n": 2}, "schema")
			if !assert.Nil(t, err) {
				return
			}
			_, err = reg.Add(map[string]int{"n": 3}, "rule")
			if !assert.Nil(t, err) {
				return
			}

			var buf bytes.Buffer
			if !assert.Nil(t, reg.Export(&buf)) {
				return
			}

			var c struct {
				Records []Record `json:"records"`
			}
			if !assert.Nil(t, json.Unmarshal(buf.Bytes(), &c)) {
				return
			}
			if !assert.Len(t, c.Records, 3) {
				return
			}

			ids := make([]string, len(c.Records))
			for i, rec := range c.Records {
				ids[i] = rec.ID
			}
			if !assert.True(t, sort.StringsAreSorted(ids)) {
				return
			}
		})

		t.Run("including annotated meta records", func(t *testing.T) {
			reg := New()

			rec, err := reg.Add(map[string]int{"n": 1}, "value")
			if !assert.Nil(t, err) {
				return
			}

			err = reg.Annotate(rec.MetaID, MetaPatch{
				Name:        result.Some("count"),
				Description: result.Some("a positive counter"),
			})
			if !assert.Nil(t, err) {
				return
			}

			var buf bytes.Buffer
			if !assert.Nil(t, reg.Export(&buf)) {
				return
			}

			var c struct {
				Metas []MetaRecord `json:"metaRecords"`
			}
			if !assert.Nil(t, json.Unmarshal(buf.Bytes(), &c)) {
				return
			}
			if !assert.Len(t, c.Metas, 1) {
				return
			}
			if !assert.Equal(t, "count", c.Metas[0].Name) {
				return
			}
		})
	})
}

func TestRegistry_ExportFile(t *testing.T) {
	t.Run("will write the catalog to disk", func(t *testing.T) {
		t.Run("if the path is writable", func(t *testing.T) {
			reg := New()

			_, err := reg.Add(map[string]int{"n": 1}, "value")
			if !assert.Nil(t, err) {
				return
			}

			path := filepath.Join(t.TempDir(), "catalog.json")
			if !assert.Nil(t, reg.ExportFile(path)) {
				return
			}

			b, err := os.ReadFile(path)
			if !assert.Nil(t, err) {
				return
			}

			var c struct {
				Records []Record `json:"records"`
			}
			if !assert.Nil(t, json.Unmarshal(b, &c)) {
				return
			}
			if !assert.Len(t, c.Records, 1) {
				return
			}
		})
	})

	t.Run("will fail with export_failed", func(t *testing.T) {
		t.Run("if the path cannot be created", func(t *testing.T) {
			reg := New()

			err := reg.ExportFile(filepath.Join(t.TempDir(), "missing", "catalog.json"))
			if !assert.ErrorIs(t, err, ErrExportFailed) {
				return
			}
		})
	})
}
