// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package registry

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/binaryshapes/mixor/fault"
)

// catalog is the export schema. Records are sorted by id and meta
// records by meta id so exports diff cleanly.
type catalog struct {
	Records []Record     `json:"records"`
	Metas   []MetaRecord `json:"metaRecords,omitempty"`
}

// Export serializes the full catalog as indented JSON to w.
//
// Exported records never include per-registration meta ids; the meta
// records section carries those. Export is the only I/O the registry
// performs besides ExportFile.
func (r *Registry) Export(w io.Writer) error {
	r.mu.RLock()

	c := catalog{Records: make([]Record, 0, len(r.records))}
	for _, rec := range r.records {
		c.Records = append(c.Records, rec.snapshot())
	}
	for _, m := range r.metas {
		c.Metas = append(c.Metas, m.snapshot())
	}

	r.mu.RUnlock()

	sort.Slice(c.Records, func(i, j int) bool {
		return c.Records[i].ID < c.Records[j].ID
	})
	sort.Slice(c.Metas, func(i, j int) bool {
		return c.Metas[i].MetaID < c.Metas[j].MetaID
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fault.Wrap("registry", "export_failed", "encoding catalog", err)
	}
	return nil
}

// ExportFile serializes the full catalog as indented JSON to the file
// at path, creating or truncating it.
func (r *Registry) ExportFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fault.Wrap("registry", "export_failed", "creating "+path, err)
	}

	err = r.Export(f)
	cerr := f.Close()
	if err != nil {
		return err
	}
	if cerr != nil {
		return fault.Wrap("registry", "export_failed", "closing "+path, cerr)
	}
	return nil
}
