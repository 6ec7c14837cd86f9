package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/pkg/cuid2"
)

// Data is the raw content of a snapshot.
type Data struct {
	Products   []Product
	Categories []Category
	Labels     Labels
}

// Snapshot is an immutable view of the catalog. Readers obtain it from
// Store.Snapshot and may use it without locking.
type Snapshot struct {
	products   []Product
	categories []Category
	labels     Labels

	tree  *CategoryTree
	index *LabelIndex

	version    uint64
	generation string
	loadedAt   time.Time
	// entityLoadedAt records when each entity was last fetched successfully.
	// A zero time means the entity has never been loaded.
	entityLoadedAt [entityCount]time.Time
}

// NewSnapshot builds a snapshot and its lookup indexes from data. Every
// entity is marked as loaded at the current time.
func NewSnapshot(data Data) *Snapshot {
	now := time.Now()
	s := build(data, 0, now)
	for i := range s.entityLoadedAt {
		s.entityLoadedAt[i] = now
	}
	return s
}

// EmptySnapshot returns the snapshot served before the first load.
func EmptySnapshot() *Snapshot {
	return build(Data{}, 0, time.Time{})
}

func build(data Data, version uint64, loadedAt time.Time) *Snapshot {
	for i := range data.Products {
		if data.Products[i].generalKeys == nil && len(data.Products[i].CharsGeneral) > 0 {
			data.Products[i].generalKeys = sortedKeys(data.Products[i].CharsGeneral)
		}
	}
	return &Snapshot{
		products:   data.Products,
		categories: data.Categories,
		labels:     data.Labels,
		tree:       NewCategoryTree(data.Categories),
		index:      NewLabelIndex(data.Labels),
		version:    version,
		generation: fingerprint(data),
		loadedAt:   loadedAt,
	}
}

// fingerprint hashes the snapshot content. Processes holding the same data
// agree on it; different data never shares it.
func fingerprint(data Data) string {
	h := sha256.New()
	if err := json.NewEncoder(h).Encode(data); err != nil {
		return cuid2.Prefixed("gen", cuid2.Options{})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Products returns the catalog products in catalog order. The slice must
// not be modified.
func (s *Snapshot) Products() []Product { return s.products }

// Categories returns the nested category tree.
func (s *Snapshot) Categories() []Category { return s.categories }

// Labels returns the raw label dictionaries.
func (s *Snapshot) Labels() Labels { return s.labels }

// Tree returns the category lookup index.
func (s *Snapshot) Tree() *CategoryTree { return s.tree }

// Index returns the label lookup index.
func (s *Snapshot) Index() *LabelIndex { return s.index }

// Version increases by one with every snapshot published by this process.
// It is local to the process; use Generation to identify content across
// replicas and restarts.
func (s *Snapshot) Version() uint64 { return s.version }

// Generation identifies the snapshot content. It is stable across processes
// and changes whenever any entity changes.
func (s *Snapshot) Generation() string { return s.generation }

// LoadedAt is the time the snapshot was published.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// EntityLoadedAt reports when an entity was last fetched successfully.
func (s *Snapshot) EntityLoadedAt(e Entity) time.Time {
	if e < 0 || e >= entityCount {
		return time.Time{}
	}
	return s.entityLoadedAt[e]
}

// Complete reports whether every entity has been loaded at least once.
func (s *Snapshot) Complete() bool {
	for _, t := range s.entityLoadedAt {
		if t.IsZero() {
			return false
		}
	}
	return true
}

// Len returns the number of records held for an entity.
func (s *Snapshot) Len(e Entity) int {
	switch e {
	case EntityProducts:
		return len(s.products)
	case EntityCategories:
		return len(s.categories)
	case EntityBrands:
		return len(s.labels.Brands)
	case EntityGeneralDefinitions:
		return len(s.labels.CharsGeneral)
	case EntityGeneralOptions:
		return len(s.labels.CharsGeneralOptions)
	case EntityExtraDefinitions:
		return len(s.labels.CharsExtra)
	case EntityExtraOptions:
		return len(s.labels.CharsExtraOptions)
	default:
		return 0
	}
}
