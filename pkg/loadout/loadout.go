// Package loadout implements the binary loadout code used to share a player's
// car cosmetics: the item equipped in every slot for both teams, plus optional
// custom primary and secondary colors.
//
// A code is a base64 string wrapping a bit-packed message with a 3-byte
// header (version, size, checksum). Encode and Decode are pure functions that
// allocate per call, so they are safe for concurrent use.
package loadout

// Item is a single equipped product.
type Item struct {
	// SlotIndex is the equipment slot, 0-31.
	SlotIndex uint8
	// ProductID is the product in the slot, 0-8191. Zero means the slot is
	// present but nothing is equipped; such items are never encoded.
	ProductID uint16
	// PaintIndex is the paint applied to the product, 0-63. PaintNone (0)
	// means unpainted.
	PaintIndex uint8
}

// Equipped reports whether the item holds a product.
func (i Item) Equipped() bool {
	return i.ProductID != 0
}

// Painted reports whether the item carries a paint.
func (i Item) Painted() bool {
	return i.PaintIndex != PaintNone
}

// TeamLoadout maps slot indices to items, remembering insertion order.
// Items are encoded in that order. The zero value is an empty loadout.
type TeamLoadout struct {
	items map[uint8]Item
	order []uint8
}

// NewTeamLoadout returns a team loadout holding items, in order.
func NewTeamLoadout(items ...Item) *TeamLoadout {
	t := &TeamLoadout{}
	for _, item := range items {
		t.Set(item)
	}
	return t
}

// Set stores item under its own slot index. Replacing an existing slot keeps
// the slot's original position.
func (t *TeamLoadout) Set(item Item) {
	if t.items == nil {
		t.items = make(map[uint8]Item)
	}
	if _, ok := t.items[item.SlotIndex]; !ok {
		t.order = append(t.order, item.SlotIndex)
	}
	t.items[item.SlotIndex] = item
}

// Get returns the item in slot.
func (t *TeamLoadout) Get(slot uint8) (Item, bool) {
	if t == nil {
		return Item{}, false
	}
	item, ok := t.items[slot]
	return item, ok
}

// Delete removes slot and reports whether it was present.
func (t *TeamLoadout) Delete(slot uint8) bool {
	if t == nil {
		return false
	}
	if _, ok := t.items[slot]; !ok {
		return false
	}
	delete(t.items, slot)
	for i, s := range t.order {
		if s == slot {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of slots, equipped or not.
func (t *TeamLoadout) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Items returns the items in insertion order.
func (t *TeamLoadout) Items() []Item {
	if t == nil {
		return nil
	}
	items := make([]Item, 0, len(t.order))
	for _, slot := range t.order {
		items = append(items, t.items[slot])
	}
	return items
}

// Equipped returns the items that hold a product, in insertion order.
func (t *TeamLoadout) Equipped() []Item {
	var items []Item
	for _, item := range t.Items() {
		if item.Equipped() {
			items = append(items, item)
		}
	}
	return items
}

// Equal reports whether both loadouts hold the same items in the same order.
func (t *TeamLoadout) Equal(other *TeamLoadout) bool {
	a, b := t.Items(), other.Items()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ColorOverride replaces a team's palette colors with explicit RGB values.
// Primary and Secondary are only meaningful when ShouldOverride is set.
type ColorOverride struct {
	ShouldOverride bool
	Primary        RGB
	Secondary      RGB
}

// Header is the fixed 24-bit prefix of every code.
type Header struct {
	Version  uint8  // 6 bits
	CodeSize uint16 // 10 bits, total message length in bytes including the header
	CRC      uint8  // checksum over bytes [3, CodeSize)
}

// Loadout is the full cosmetic setup for both teams.
//
// When BlueIsOrange is set the orange section is not encoded, and Decode
// points Orange at the same TeamLoadout as Blue.
type Loadout struct {
	Header       Header
	BlueIsOrange bool
	Blue         *TeamLoadout
	BlueColor    ColorOverride
	Orange       *TeamLoadout
	OrangeColor  ColorOverride
}

// New returns an empty loadout with separate blue and orange teams.
func New() *Loadout {
	return &Loadout{
		Blue:   NewTeamLoadout(),
		Orange: NewTeamLoadout(),
	}
}
