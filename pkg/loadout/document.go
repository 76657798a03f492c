package loadout

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is the human-editable form of a loadout, used for YAML and JSON
// files and API payloads. Slots and paints are written by name; colors are
// hex strings.
type Document struct {
	BlueIsOrange bool          `yaml:"blue_is_orange" json:"blue_is_orange"`
	Blue         TeamDocument  `yaml:"blue" json:"blue"`
	Orange       *TeamDocument `yaml:"orange,omitempty" json:"orange,omitempty"`
}

// TeamDocument lists one team's items and optional color override.
type TeamDocument struct {
	Items  []ItemDocument `yaml:"items" json:"items"`
	Colors *ColorDocument `yaml:"colors,omitempty" json:"colors,omitempty"`
}

// ItemDocument is one item. Slot and Paint accept names or decimal indices.
type ItemDocument struct {
	Slot    Ref    `yaml:"slot" json:"slot"`
	Product uint16 `yaml:"product" json:"product"`
	Paint   Ref    `yaml:"paint,omitempty" json:"paint,omitempty"`
}

// Ref names a slot or paint, either by name ("forest green") or by index
// ("7"). In JSON a bare number is accepted as well as a string.
type Ref string

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ref) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		var n uint8
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownName, data)
		}
		*r = Ref(strconv.Itoa(int(n)))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = Ref(s)
	return nil
}

// ColorDocument is a primary/secondary override pair.
type ColorDocument struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
}

// Document converts l to its editable form. The orange team is omitted when
// it mirrors blue.
func (l *Loadout) Document() Document {
	doc := Document{
		BlueIsOrange: l.BlueIsOrange,
		Blue:         teamDocument(l.Blue, l.BlueColor),
	}
	if !l.BlueIsOrange {
		orange := teamDocument(l.Orange, l.OrangeColor)
		doc.Orange = &orange
	}
	return doc
}

// Loadout builds a Loadout from the document. When BlueIsOrange is set any
// orange section is ignored and Orange shares Blue's items.
func (d Document) Loadout() (*Loadout, error) {
	l := &Loadout{BlueIsOrange: d.BlueIsOrange}

	var err error
	if l.Blue, l.BlueColor, err = d.Blue.team(); err != nil {
		return nil, fmt.Errorf("blue: %w", err)
	}

	if d.BlueIsOrange {
		l.Orange = l.Blue
		return l, nil
	}

	if d.Orange == nil {
		l.Orange = NewTeamLoadout()
		return l, nil
	}
	if l.Orange, l.OrangeColor, err = d.Orange.team(); err != nil {
		return nil, fmt.Errorf("orange: %w", err)
	}
	return l, nil
}

// ReadDocumentYAML decodes a YAML document. JSON is valid YAML, so this also
// reads JSON documents.
func ReadDocumentYAML(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parsing loadout document: %w", err)
	}
	return doc, nil
}

// WriteYAML encodes the document as YAML.
func (d Document) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

// WriteJSON encodes the document as indented JSON.
func (d Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func teamDocument(t *TeamLoadout, c ColorOverride) TeamDocument {
	doc := TeamDocument{Items: []ItemDocument{}}
	for _, item := range t.Items() {
		it := ItemDocument{
			Slot:    Ref(SlotName(item.SlotIndex)),
			Product: item.ProductID,
		}
		if item.Painted() {
			it.Paint = Ref(PaintName(item.PaintIndex))
		}
		doc.Items = append(doc.Items, it)
	}
	if c.ShouldOverride {
		doc.Colors = &ColorDocument{
			Primary:   c.Primary.Hex(),
			Secondary: c.Secondary.Hex(),
		}
	}
	return doc
}

func (d TeamDocument) team() (*TeamLoadout, ColorOverride, error) {
	t := NewTeamLoadout()
	for i, it := range d.Items {
		slot, err := ParseSlot(string(it.Slot))
		if err != nil {
			return nil, ColorOverride{}, fmt.Errorf("item %d: %w", i, err)
		}
		paint, err := ParsePaint(string(it.Paint))
		if err != nil {
			return nil, ColorOverride{}, fmt.Errorf("item %d: %w", i, err)
		}
		t.Set(Item{SlotIndex: slot, ProductID: it.Product, PaintIndex: paint})
	}

	var c ColorOverride
	if d.Colors != nil {
		var err error
		c.ShouldOverride = true
		if c.Primary, err = ParseHexRGB(d.Colors.Primary); err != nil {
			return nil, ColorOverride{}, fmt.Errorf("primary color: %w", err)
		}
		if c.Secondary, err = ParseHexRGB(d.Colors.Secondary); err != nil {
			return nil, ColorOverride{}, fmt.Errorf("secondary color: %w", err)
		}
	}
	return t, c, nil
}
