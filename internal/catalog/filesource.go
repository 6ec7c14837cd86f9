package catalog

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/storage"
)

// Fixture is the on-disk layout of a catalog fixture file.
type Fixture struct {
	Categories          []Category             `yaml:"categories" json:"categories"`
	Brands              []Brand                `yaml:"brands" json:"brands"`
	CharsGeneral        []CharacteristicDef    `yaml:"chars_general" json:"chars_general"`
	CharsGeneralOptions []CharacteristicOption `yaml:"chars_general_options" json:"chars_general_options"`
	CharsExtra          []CharacteristicDef    `yaml:"chars_extra" json:"chars_extra"`
	CharsExtraOptions   []CharacteristicOption `yaml:"chars_extra_options" json:"chars_extra_options"`
	Products            []RawProduct           `yaml:"products" json:"products"`
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(content []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("decode catalog fixture: %w", err)
	}
	return &f, nil
}

// Data converts the fixture into snapshot content, normalizing products.
func (f *Fixture) Data() Data {
	return Data{
		Products:   NormalizeAll(f.Products),
		Categories: f.Categories,
		Labels: Labels{
			Brands:              f.Brands,
			CharsGeneral:        f.CharsGeneral,
			CharsGeneralOptions: f.CharsGeneralOptions,
			CharsExtra:          f.CharsExtra,
			CharsExtraOptions:   f.CharsExtraOptions,
		},
	}
}

// FixtureSource serves catalog records from a YAML fixture held in storage.
// The decoded fixture is reused until the stored checksum changes.
type FixtureSource struct {
	store storage.Storage
	key   string

	mu       sync.Mutex
	checksum string
	fixture  *Fixture
}

// NewFixtureSource creates a source reading key from store.
func NewFixtureSource(store storage.Storage, key string) *FixtureSource {
	return &FixtureSource{store: store, key: key}
}

// Fixture returns the decoded fixture, re-reading it when it changed.
func (s *FixtureSource) Fixture(ctx context.Context) (*Fixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.store.Stat(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("stat fixture %s: %w", s.key, err)
	}
	if s.fixture != nil && info.Checksum == s.checksum {
		return s.fixture, nil
	}

	content, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", s.key, err)
	}
	f, err := ParseFixture(content)
	if err != nil {
		return nil, err
	}
	s.fixture = f
	s.checksum = info.Checksum
	return f, nil
}

func (s *FixtureSource) FetchProducts(ctx context.Context) ([]RawProduct, error) {
	f, err := s.Fixture(ctx)
	if err != nil {
		return nil, err
	}
	return f.Products, nil
}

func (s *FixtureSource) FetchCategories(ctx context.Context) ([]Category, error) {
	f, err := s.Fixture(ctx)
	if err != nil {
		return nil, err
	}
	return f.Categories, nil
}

func (s *FixtureSource) FetchBrands(ctx context.Context) ([]Brand, error) {
	f, err := s.Fixture(ctx)
	if err != nil {
		return nil, err
	}
	return f.Brands, nil
}

func (s *FixtureSource) FetchGeneralDefinitions(ctx context.Context) ([]CharacteristicDef, error) {
	f, err := s.Fixture(ctx)
	if err != nil {
		return nil, err
	}
	return f.CharsGeneral, nil
}

func (s *FixtureSource) FetchGeneralOptions(ctx context.Context) ([]CharacteristicOption, error) {
	f, err := s.Fixture(ctx)
	if err != nil {
		return nil, err
	}
	return f.CharsGeneralOptions, nil
}

func (s *FixtureSource) FetchExtraDefinitions(ctx context.Context) ([]CharacteristicDef, error) {
	f, err := s.Fixture(ctx)
	if err != nil {
		return nil, err
	}
	return f.CharsExtra, nil
}

func (s *FixtureSource) FetchExtraOptions(ctx context.Context) ([]CharacteristicOption, error) {
	f, err := s.Fixture(ctx)
	if err != nil {
		return nil, err
	}
	return f.CharsExtraOptions, nil
}
