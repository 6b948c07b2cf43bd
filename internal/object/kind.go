package object

import (
	"fmt"
	"maps"

	"github.com/tomz197/qwerfighter/internal/config"
)

// Kind tags every entity the engine reports, so a renderer can pick a sprite
// or shape without type switches.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindGrunt
	KindBoss
	KindPlayerShot
	KindChargedShot
	KindBarrageShot
	KindHomingShot
	KindOrbiter
	KindShield
	KindHeal
	kindCount
)

var kindNames = [kindCount]string{
	KindPlayer:      "player",
	KindGrunt:       "grunt",
	KindBoss:        "boss",
	KindPlayerShot:  "player_shot",
	KindChargedShot: "charged_shot",
	KindBarrageShot: "barrage_shot",
	KindHomingShot:  "homing_shot",
	KindOrbiter:     "orbiter",
	KindShield:      "shield",
	KindHeal:        "heal",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("unknown kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", b)
}

// Size is the display size of an entity. It is only used for bounding boxes.
type Size struct {
	W, H float64
}

// Sizes maps each kind to its display size. Missing kinds fall back to the
// defaults.
type Sizes map[Kind]Size

var defaultSizes = Sizes{
	KindPlayer:      {W: 50, H: 50},
	KindGrunt:       {W: 70, H: 70},
	KindBoss:        {W: 150, H: 150},
	KindPlayerShot:  {W: 10, H: 16},
	KindChargedShot: {W: 50, H: 50},
	KindBarrageShot: {W: 30, H: 30},
	KindHomingShot:  {W: 50, H: 50},
	KindOrbiter:     {W: 30, H: 30},
	KindShield:      {W: 70, H: 70},
	KindHeal:        {W: 160, H: 160},
}

// DefaultSizes returns a fresh copy of the built-in sprite sizes.
func DefaultSizes() Sizes {
	return maps.Clone(defaultSizes)
}

// Of returns the size for k.
func (s Sizes) Of(k Kind) Size {
	if sz, ok := s[k]; ok {
		return sz
	}
	return defaultSizes[k]
}

// Screen is the playfield in logical units.
type Screen struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultScreen returns the standard portrait playfield.
func DefaultScreen() Screen {
	return Screen{Width: config.ScreenWidth, Height: config.ScreenHeight}
}
