// internal/services/wells.go
// Snapshot daftar sumur: diisi sekali saat boot, read-only sesudahnya.

package services

import (
	"context"
	"fmt"
	"strings"

	"well-dashboard/internal/datasource"
)

// WellLister bagian dari datasource.Client untuk daftar sumur.
type WellLister interface {
	ListWells(ctx context.Context) ([]datasource.Well, error)
}

// WellSnapshot immutable; aman dibaca dari banyak goroutine.
type WellSnapshot struct {
	names []string
	index map[string]struct{}
}

// NewWellSnapshot mempertahankan urutan fetch, membuang nama kosong dan duplikat.
func NewWellSnapshot(wells []datasource.Well) WellSnapshot {
	s := WellSnapshot{
		names: make([]string, 0, len(wells)),
		index: make(map[string]struct{}, len(wells)),
	}
	for _, w := range wells {
		name := strings.TrimSpace(w.Name)
		if name == "" {
			continue
		}
		if _, dup := s.index[name]; dup {
			continue
		}
		s.index[name] = struct{}{}
		s.names = append(s.names, name)
	}
	return s
}

// LoadWellSnapshot mengambil daftar sumur dari sumber data.
func LoadWellSnapshot(ctx context.Context, lister WellLister) (WellSnapshot, error) {
	wells, err := lister.ListWells(ctx)
	if err != nil {
		return WellSnapshot{}, fmt.Errorf("load well list: %w", err)
	}
	return NewWellSnapshot(wells), nil
}

// Names salinan daftar nama.
func (s WellSnapshot) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s WellSnapshot) Len() int { return len(s.names) }

// Default sumur pertama sesuai urutan fetch, "" jika kosong.
func (s WellSnapshot) Default() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[0]
}

func (s WellSnapshot) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}
