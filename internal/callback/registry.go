// internal/callback/registry.go
// Registri binding reaktif: nama callback -> (input ID, output ID, fungsi)

package callback

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownCallback = errors.New("callback not found")
	ErrMissingInput    = errors.New("missing declared input")
	ErrOutputArity     = errors.New("callback returned wrong number of outputs")
)

// Func menerima nilai input sesuai urutan Binding.Inputs dan
// mengembalikan nilai output sesuai urutan Binding.Outputs.
type Func func(ctx context.Context, inputs []string) ([]any, error)

// Binding kontrak eksplisit: ID input yang dibaca, ID output yang diisi.
type Binding struct {
	Name    string
	Inputs  []string
	Outputs []string
	Func    Func
}

// Registry menyimpan peta nama -> Binding secara thread-safe.
type Registry struct {
	mu   sync.RWMutex
	data map[string]Binding
}

func NewRegistry() *Registry {
	return &Registry{data: make(map[string]Binding)}
}

// Register mendaftarkan binding. Nama yang sama menimpa binding lama.
func (r *Registry) Register(b Binding) error {
	if b.Name == "" {
		return errors.New("callback: empty name")
	}
	if b.Func == nil {
		return fmt.Errorf("callback %q: nil func", b.Name)
	}
	if len(b.Inputs) == 0 || len(b.Outputs) == 0 {
		return fmt.Errorf("callback %q: inputs and outputs must be declared", b.Name)
	}
	if dup := firstDuplicate(b.Outputs); dup != "" {
		return fmt.Errorf("callback %q: duplicate output %q", b.Name, dup)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	b.Inputs = append([]string(nil), b.Inputs...)
	b.Outputs = append([]string(nil), b.Outputs...)
	r.data[b.Name] = b
	return nil
}

// MustRegister seperti Register namun panic bila gagal.
// Cocok untuk inisialisasi saat startup (fail-fast).
func (r *Registry) MustRegister(b Binding) {
	if err := r.Register(b); err != nil {
		panic(err)
	}
}

// Get mengambil binding berdasarkan nama.
func (r *Registry) Get(name string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.data[name]
	return b, ok
}

// List nama binding terurut.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dispatch menjalankan binding 'name' dengan input berdasarkan ID.
// Hasil dipetakan ke ID output yang dideklarasikan.
func (r *Registry) Dispatch(ctx context.Context, name string, inputs map[string]string) (map[string]any, error) {
	b, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCallback, name)
	}

	args := make([]string, len(b.Inputs))
	for i, id := range b.Inputs {
		v, ok := inputs[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, id)
		}
		args[i] = v
	}

	vals, err := b.Func(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("callback %s: %w", name, err)
	}
	if len(vals) != len(b.Outputs) {
		return nil, fmt.Errorf("%w: %s declared %d, got %d", ErrOutputArity, name, len(b.Outputs), len(vals))
	}

	out := make(map[string]any, len(vals))
	for i, id := range b.Outputs {
		out[id] = vals[i]
	}
	return out, nil
}

func firstDuplicate(ids []string) string {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
	}
	return ""
}
