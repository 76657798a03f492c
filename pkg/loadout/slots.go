package loadout

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Well-known slot indices. The codec treats slots as opaque integers; these
// exist for callers building or printing loadouts.
const (
	SlotBody                 uint8 = 0
	SlotSkin                 uint8 = 1 // decal
	SlotWheels               uint8 = 2
	SlotBoost                uint8 = 3
	SlotAntenna              uint8 = 4
	SlotTopper               uint8 = 5
	SlotPaintFinish          uint8 = 7
	SlotPaintFinishSecondary uint8 = 12
	SlotEngineAudio          uint8 = 13
	SlotSupersonicTrail      uint8 = 14
	SlotGoalExplosion        uint8 = 15
)

// Well-known paint indices.
const (
	PaintNone          uint8 = 0
	PaintCrimson       uint8 = 1
	PaintLime          uint8 = 2
	PaintBlack         uint8 = 3
	PaintSkyBlue       uint8 = 4
	PaintCobalt        uint8 = 5
	PaintBurntSienna   uint8 = 6
	PaintForestGreen   uint8 = 7
	PaintPurple        uint8 = 8
	PaintPink          uint8 = 9
	PaintOrange        uint8 = 10
	PaintGrey          uint8 = 11
	PaintTitaniumWhite uint8 = 12
	PaintSaffron       uint8 = 13
)

var slotNames = map[uint8]string{
	SlotBody:                 "body",
	SlotSkin:                 "skin",
	SlotWheels:               "wheels",
	SlotBoost:                "boost",
	SlotAntenna:              "antenna",
	SlotTopper:               "topper",
	SlotPaintFinish:          "paint finish",
	SlotPaintFinishSecondary: "secondary paint finish",
	SlotEngineAudio:          "engine audio",
	SlotSupersonicTrail:      "supersonic trail",
	SlotGoalExplosion:        "goal explosion",
}

var paintNames = map[uint8]string{
	PaintNone:          "none",
	PaintCrimson:       "crimson",
	PaintLime:          "lime",
	PaintBlack:         "black",
	PaintSkyBlue:       "sky blue",
	PaintCobalt:        "cobalt",
	PaintBurntSienna:   "burnt sienna",
	PaintForestGreen:   "forest green",
	PaintPurple:        "purple",
	PaintPink:          "pink",
	PaintOrange:        "orange",
	PaintGrey:          "grey",
	PaintTitaniumWhite: "titanium white",
	PaintSaffron:       "saffron",
}

var (
	slotsByName  = invert(slotNames)
	paintsByName = invert(paintNames)
	titleCaser   = cases.Title(language.English)
)

// SlotName returns the lowercase name of a well-known slot, or its decimal
// index for any other slot.
func SlotName(slot uint8) string {
	if name, ok := slotNames[slot]; ok {
		return name
	}
	return strconv.Itoa(int(slot))
}

// PaintName returns the lowercase name of a well-known paint, or its decimal
// index for any other paint.
func PaintName(paint uint8) string {
	if name, ok := paintNames[paint]; ok {
		return name
	}
	return strconv.Itoa(int(paint))
}

// DisplayName title-cases a slot or paint name for humans ("Forest Green").
func DisplayName(name string) string {
	return titleCaser.String(name)
}

// ParseSlot accepts a slot name (case-insensitive, spaces, dashes or
// underscores) or a decimal index.
func ParseSlot(s string) (uint8, error) {
	v, err := parseIndex(s, slotsByName, MaxSlotIndex)
	if err != nil {
		return 0, fmt.Errorf("slot %q: %w", s, err)
	}
	return v, nil
}

// ParsePaint accepts a paint name or a decimal index. An empty string is
// PaintNone.
func ParsePaint(s string) (uint8, error) {
	if strings.TrimSpace(s) == "" {
		return PaintNone, nil
	}
	v, err := parseIndex(s, paintsByName, MaxPaintIndex)
	if err != nil {
		return 0, fmt.Errorf("paint %q: %w", s, err)
	}
	return v, nil
}

func parseIndex(s string, byName map[string]uint8, limit int) (uint8, error) {
	key := normalizeName(s)
	if v, ok := byName[key]; ok {
		return v, nil
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, ErrUnknownName
	}
	if n < 0 || n > limit {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrFieldOverflow, n, limit)
	}
	return uint8(n), nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func invert(m map[uint8]string) map[string]uint8 {
	out := make(map[string]uint8, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
