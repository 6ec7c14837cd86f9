package catalog

// Level names one level of the category tree.
type Level string

const (
	LevelCategory       Level = "category"
	LevelSubcategory    Level = "subcategory"
	LevelSubsubcategory Level = "subsubcategory"
)

type subKey struct{ category, subcategory int64 }

type subsubKey struct{ category, subcategory, subsubcategory int64 }

// CategoryTree resolves category paths. When ids repeat, the first entry in
// tree order wins.
type CategoryTree struct {
	categories       map[int64]*Category
	subcategories    map[subKey]*Subcategory
	subsubcategories map[subsubKey]*Subsubcategory
}

// NewCategoryTree indexes a nested category list.
func NewCategoryTree(categories []Category) *CategoryTree {
	t := &CategoryTree{
		categories:       make(map[int64]*Category, len(categories)),
		subcategories:    make(map[subKey]*Subcategory),
		subsubcategories: make(map[subsubKey]*Subsubcategory),
	}
	for i := range categories {
		c := &categories[i]
		if _, ok := t.categories[c.ID]; ok {
			continue
		}
		t.categories[c.ID] = c
		for j := range c.Subcategories {
			s := &c.Subcategories[j]
			sk := subKey{c.ID, s.ID}
			if _, ok := t.subcategories[sk]; ok {
				continue
			}
			t.subcategories[sk] = s
			for k := range s.Subsubcategories {
				ss := &s.Subsubcategories[k]
				ssk := subsubKey{c.ID, s.ID, ss.ID}
				if _, ok := t.subsubcategories[ssk]; !ok {
					t.subsubcategories[ssk] = ss
				}
			}
		}
	}
	return t
}

// Path is a fully resolved category path.
type Path struct {
	Category       *Category
	Subcategory    *Subcategory
	Subsubcategory *Subsubcategory
}

// Resolve walks the tree from the root. On failure it returns the first
// level that could not be found.
func (t *CategoryTree) Resolve(categoryID, subcategoryID, subsubcategoryID int64) (Path, Level, bool) {
	var p Path
	c, ok := t.categories[categoryID]
	if !ok {
		return p, LevelCategory, false
	}
	p.Category = c
	s, ok := t.subcategories[subKey{categoryID, subcategoryID}]
	if !ok {
		return p, LevelSubcategory, false
	}
	p.Subcategory = s
	ss, ok := t.subsubcategories[subsubKey{categoryID, subcategoryID, subsubcategoryID}]
	if !ok {
		return p, LevelSubsubcategory, false
	}
	p.Subsubcategory = ss
	return p, "", true
}

// SubsubcategoryName returns the name of a product's subsubcategory, or ""
// when the path does not resolve.
func (t *CategoryTree) SubsubcategoryName(p *Product) string {
	ss, ok := t.subsubcategories[subsubKey{p.CategoryID, p.SubcategoryID, p.SubsubcategoryID}]
	if !ok {
		return ""
	}
	return ss.Name
}

// Namespace selects the general or extra characteristic dictionaries.
type Namespace int

const (
	General Namespace = iota
	Extra
)

type charIndex struct {
	defsByID    map[int64]*CharacteristicDef
	defsBySlug  map[string]*CharacteristicDef
	optionsByID map[int64]*CharacteristicOption
}

func newCharIndex(defs []CharacteristicDef, options []CharacteristicOption) charIndex {
	ci := charIndex{
		defsByID:    make(map[int64]*CharacteristicDef, len(defs)),
		defsBySlug:  make(map[string]*CharacteristicDef, len(defs)),
		optionsByID: make(map[int64]*CharacteristicOption, len(options)),
	}
	for i := range defs {
		d := &defs[i]
		if _, ok := ci.defsByID[d.ID]; !ok {
			ci.defsByID[d.ID] = d
		}
		if _, ok := ci.defsBySlug[d.Value]; !ok {
			ci.defsBySlug[d.Value] = d
		}
	}
	for i := range options {
		o := &options[i]
		if _, ok := ci.optionsByID[o.ID]; !ok {
			ci.optionsByID[o.ID] = o
		}
	}
	return ci
}

// LabelIndex resolves brand and characteristic ids to labels.
type LabelIndex struct {
	brands map[int64]*Brand
	chars  [2]charIndex
}

// NewLabelIndex indexes the label dictionaries.
func NewLabelIndex(l Labels) *LabelIndex {
	idx := &LabelIndex{brands: make(map[int64]*Brand, len(l.Brands))}
	for i := range l.Brands {
		b := &l.Brands[i]
		if _, ok := idx.brands[b.ID]; !ok {
			idx.brands[b.ID] = b
		}
	}
	idx.chars[General] = newCharIndex(l.CharsGeneral, l.CharsGeneralOptions)
	idx.chars[Extra] = newCharIndex(l.CharsExtra, l.CharsExtraOptions)
	return idx
}

// Brand looks up a brand by id.
func (idx *LabelIndex) Brand(id int64) (Brand, bool) {
	b, ok := idx.brands[id]
	if !ok {
		return Brand{}, false
	}
	return *b, true
}

// Definition looks up a characteristic definition by id.
func (idx *LabelIndex) Definition(ns Namespace, id int64) (CharacteristicDef, bool) {
	d, ok := idx.chars[ns].defsByID[id]
	if !ok {
		return CharacteristicDef{}, false
	}
	return *d, true
}

// DefinitionBySlug looks up a characteristic definition by its value slug.
func (idx *LabelIndex) DefinitionBySlug(ns Namespace, slug string) (CharacteristicDef, bool) {
	d, ok := idx.chars[ns].defsBySlug[slug]
	if !ok {
		return CharacteristicDef{}, false
	}
	return *d, true
}

// Option looks up a characteristic option by id.
func (idx *LabelIndex) Option(ns Namespace, id int64) (CharacteristicOption, bool) {
	o, ok := idx.chars[ns].optionsByID[id]
	if !ok {
		return CharacteristicOption{}, false
	}
	return *o, true
}
