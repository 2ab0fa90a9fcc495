package catalog

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ItemIndex is the full item-identity list, parsed once from the
// multi-document items.yaml catalog dump. The flip scan uses it to sweep
// items that no recipe produces.
type ItemIndex struct {
	path string

	once sync.Once
	ids  []uint64
}

func NewItemIndex(path string) *ItemIndex {
	return &ItemIndex{path: path}
}

// ItemIDs returns every known item id, deduplicated, in file order.
func (i *ItemIndex) ItemIDs() []uint64 {
	i.once.Do(i.load)
	return i.ids
}

func (i *ItemIndex) load() {
	f, err := os.Open(i.path)
	if err != nil {
		slog.Warn("Items file not found, supplementary sweep disabled",
			slog.String("path", i.path), slog.Any("error", err))
		return
	}
	defer f.Close()

	type itemDoc struct {
		UniqueID uint64 `yaml:"uniqueId"`
	}

	seen := make(map[uint64]struct{})
	dec := yaml.NewDecoder(f)
	for {
		var doc itemDoc
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Error("Failed to parse items file", slog.String("path", i.path), slog.Any("error", err))
			break
		}
		if doc.UniqueID == 0 {
			continue
		}
		if _, dup := seen[doc.UniqueID]; dup {
			continue
		}
		seen[doc.UniqueID] = struct{}{}
		i.ids = append(i.ids, doc.UniqueID)
	}

	slog.Info("Item identities loaded", slog.Int("count", len(i.ids)))
}
