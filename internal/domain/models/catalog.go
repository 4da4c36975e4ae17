package models

import "fmt"

// Catalog is the ordered, read-only field table of one screener variant.
type Catalog struct {
	name    string
	fields  []Field
	byLabel map[string]int
	byKey   map[string]int
}

// NewCatalog indexes fields. Labels must be unique.
func NewCatalog(name string, fields ...Field) (*Catalog, error) {
	c := &Catalog{
		name:    name,
		fields:  make([]Field, 0, len(fields)),
		byLabel: make(map[string]int, len(fields)),
		byKey:   make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Label == "" || f.Key == "" {
			return nil, fmt.Errorf("catalog %s: field with empty label or key", name)
		}
		if _, dup := c.byLabel[f.Label]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate label %q", name, f.Label)
		}
		c.byLabel[f.Label] = len(c.fields)
		if _, seen := c.byKey[f.Key]; !seen {
			c.byKey[f.Key] = len(c.fields)
		}
		c.fields = append(c.fields, f)
	}
	return c, nil
}

// MustCatalog panics on a malformed table. Used for package-level catalogs.
func MustCatalog(name string, fields ...Field) *Catalog {
	c, err := NewCatalog(name, fields...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Name() string { return c.name }

func (c *Catalog) Len() int { return len(c.fields) }

// Fields returns a copy in catalog order.
func (c *Catalog) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// FindByLabel resolves a display label back to its field.
func (c *Catalog) FindByLabel(label string) (Field, bool) {
	i, ok := c.byLabel[label]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}

// FindByKey returns the first field with the given base wire key.
func (c *Catalog) FindByKey(key string) (Field, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}

// Lookup tries the label first, then the wire key.
func (c *Catalog) Lookup(name string) (Field, bool) {
	if f, ok := c.FindByLabel(name); ok {
		return f, true
	}
	return c.FindByKey(name)
}
