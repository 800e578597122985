package vecindex

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/candidly/candex/core"
	"github.com/mus-format/mus-go/varint"
)

// Snapshot format: a varint entry count followed by (id, vector) pairs in
// MUS encoding. The file is written to a temp sibling and renamed into
// place so readers never observe a partial snapshot.

// Save writes the full index contents to path.
func (x *Index) Save(path string) error {
	x.mu.RLock()

	size := varint.Uint64.Size(uint64(len(x.ids)))
	for i := range x.ids {
		size += core.IDMUS.Size(x.ids[i])
		size += core.VectorMUS.Size(x.vectors[i])
	}

	bs := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(len(x.ids)), bs)
	for i := range x.ids {
		n += core.IDMUS.Marshal(x.ids[i], bs[n:])
		n += core.VectorMUS.Marshal(x.vectors[i], bs[n:])
	}

	x.mu.RUnlock()

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(bs[:n]); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	slog.Default().Debug("saved index snapshot", "path", path, "vectors", len(x.byID))
	return nil
}

// Open loads an index snapshot from path. A missing file yields an empty
// index; this is the normal first-run case.
func Open(path string, dim int) (*Index, error) {
	bs, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Default().Info("no index snapshot found, starting empty", "path", path)
		return New(dim), nil
	}
	if err != nil {
		return nil, err
	}

	x := New(dim)

	count, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	for i := uint64(0); i < count; i++ {
		id, n1, err := core.IDMUS.Unmarshal(bs[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		n += n1

		vector, n1, err := core.VectorMUS.Unmarshal(bs[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		n += n1

		if err := x.Add(id, vector); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	}

	slog.Default().Info("loaded index snapshot", "path", path, "vectors", x.Len())
	return x, nil
}
