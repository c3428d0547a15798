// Package catalog is the resource catalog: archetype templates, the prefab
// registry, the item table and locker default loot, loaded from YAML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/schematic-engine/internal/scene"
	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

//go:embed default.yaml
var defaultCatalog []byte

// PickupTemplate is the template name recorded on spawned pickups.
const PickupTemplate = "ItemPickup"

// File is the YAML layout of a catalog.
type File struct {
	Templates []TemplateEntry `yaml:"templates"`
	Prefabs   []PrefabEntry   `yaml:"prefabs"`
	Items     []ItemEntry     `yaml:"items"`
}

type TemplateEntry struct {
	Archetype   string      `yaml:"archetype"`
	Name        string      `yaml:"name"`
	Chambers    int         `yaml:"chambers"`
	DefaultLoot []LootEntry `yaml:"default_loot"`
}

type PrefabEntry struct {
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
}

type ItemEntry struct {
	ID   int32  `yaml:"id"`
	Name string `yaml:"name"`
}

type LootEntry struct {
	Item  string `yaml:"item"`
	Count int    `yaml:"count"`
}

type loot struct {
	item  schematic.ItemType
	name  string
	count int
}

// Catalog spawns templates into a scene tree.
type Catalog struct {
	tree *scene.Tree
	fold cases.Caser

	templates     map[schematic.Archetype]schematic.Template
	defaultLoot   map[schematic.Archetype][]loot
	prefabsByID   map[uint32]schematic.Template
	prefabsByName map[string]schematic.Template
	items         map[string]schematic.ItemType
	itemNames     map[schematic.ItemType]string
}

var _ schematic.Catalog = (*Catalog)(nil)

// Default returns the embedded catalog.
func Default(tree *scene.Tree) (*Catalog, error) {
	return Parse(defaultCatalog, tree)
}

// Load reads a catalog file, or the embedded default when path is empty.
func Load(path string, tree *scene.Tree) (*Catalog, error) {
	if path == "" {
		return Default(tree)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data, tree)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalog from YAML.
func Parse(data []byte, tree *scene.Tree) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f, tree)
}

// New validates f and indexes it.
func New(f File, tree *scene.Tree) (*Catalog, error) {
	c := &Catalog{
		tree:          tree,
		fold:          cases.Fold(),
		templates:     make(map[schematic.Archetype]schematic.Template),
		defaultLoot:   make(map[schematic.Archetype][]loot),
		prefabsByID:   make(map[uint32]schematic.Template),
		prefabsByName: make(map[string]schematic.Template),
		items:         make(map[string]schematic.ItemType),
		itemNames:     make(map[schematic.ItemType]string),
	}

	var errs []error

	for _, it := range f.Items {
		key := c.key(it.Name)
		if _, dup := c.items[key]; dup {
			errs = append(errs, fmt.Errorf("duplicate item %q", it.Name))
			continue
		}
		c.items[key] = schematic.ItemType(it.ID)
		c.itemNames[schematic.ItemType(it.ID)] = it.Name
	}

	for _, t := range f.Templates {
		a := schematic.Archetype(t.Archetype)
		if _, dup := c.templates[a]; dup {
			errs = append(errs, fmt.Errorf("duplicate template for archetype %q", t.Archetype))
			continue
		}
		if t.Chambers < 0 {
			errs = append(errs, fmt.Errorf("template %q: negative chamber count", t.Archetype))
			continue
		}
		c.templates[a] = schematic.Template{Name: t.Name, Archetype: a, Chambers: t.Chambers}

		for _, l := range t.DefaultLoot {
			item, ok := c.Item(l.Item)
			if !ok {
				errs = append(errs, fmt.Errorf("template %q: unknown default loot item %q", t.Archetype, l.Item))
				continue
			}
			c.defaultLoot[a] = append(c.defaultLoot[a], loot{item: item, name: c.itemNames[item], count: l.Count})
		}
	}

	for _, p := range f.Prefabs {
		tpl := schematic.Template{ID: p.ID, Name: p.Name}
		if _, dup := c.prefabsByID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate prefab id %d", p.ID))
			continue
		}
		c.prefabsByID[p.ID] = tpl
		if _, dup := c.prefabsByName[c.key(p.Name)]; !dup {
			c.prefabsByName[c.key(p.Name)] = tpl
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) key(name string) string {
	return c.fold.String(name)
}

func (c *Catalog) Template(a schematic.Archetype) (schematic.Template, bool) {
	t, ok := c.templates[a]
	return t, ok
}

func (c *Catalog) PrefabByID(id uint32) (schematic.Template, bool) {
	t, ok := c.prefabsByID[id]
	return t, ok
}

// PrefabByName matches under Unicode case folding; the first prefab
// registered under a folded name wins.
func (c *Catalog) PrefabByName(name string) (schematic.Template, bool) {
	t, ok := c.prefabsByName[c.key(name)]
	return t, ok
}

func (c *Catalog) Item(name string) (schematic.ItemType, bool) {
	it, ok := c.items[c.key(name)]
	return it, ok
}

// ItemName returns the display name of an item, or its number when the
// catalog does not know it.
func (c *Catalog) ItemName(item schematic.ItemType) string {
	if name, ok := c.itemNames[item]; ok {
		return name
	}
	return fmt.Sprintf("%d", int32(item))
}

func (c *Catalog) Instantiate(t schematic.Template, comp schematic.Component) schematic.Object {
	return c.tree.Add(t.Name, t.Name, comp)
}

func (c *Catalog) SpawnPickup(item schematic.ItemType) (schematic.Object, uuid.UUID) {
	serial := uuid.New()
	obj := c.tree.Add(c.ItemName(item), PickupTemplate, &schematic.Pickup{Item: item, Serial: serial})
	return obj, serial
}

// FillChamber gives the slot the default loot of the locker's template.
func (c *Catalog) FillChamber(l *schematic.Locker, ch *schematic.Chamber) {
	a, ok := l.Type.Archetype()
	if !ok {
		return
	}
	for _, it := range c.defaultLoot[a] {
		ch.SpawnItem(it.item, it.name, it.count)
	}
	ch.DefaultFilled = true
}
