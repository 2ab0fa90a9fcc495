package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

const itemsYAML = `name: IronOre
uniqueId: 1001
tier: 1
---
name: CopperOre
uniqueId: 1002
displayProperties:
  icon: copper.png
---
name: Duplicate
uniqueId: 1001
---
name: NoID
description: entry without a uniqueId field
---
name: Screws
uniqueId: 2001
`

func TestItemIndex_ParsesMultiDocYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.yaml")
	if err := os.WriteFile(path, []byte(itemsYAML), 0644); err != nil {
		t.Fatal(err)
	}

	idx := NewItemIndex(path)
	ids := idx.ItemIDs()

	want := []uint64{1001, 1002, 2001}
	if len(ids) != len(want) {
		t.Fatalf("ItemIDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ItemIDs[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestItemIndex_MissingFile(t *testing.T) {
	idx := NewItemIndex("nope/items.yaml")
	if got := idx.ItemIDs(); len(got) != 0 {
		t.Errorf("ItemIDs from missing file = %v, want empty", got)
	}
}
