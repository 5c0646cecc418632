package shape

import (
	"strings"
	"sync"

	"github.com/astei/schem2mesh/schematic"
)

// Overrides supplies shapes from an external source (a block model database,
// a resource pack). Resolve consults it before the built-in rules; return
// ok=false to fall through.
type Overrides interface {
	ShapeOf(b schematic.Block) (Shape, bool)
}

// Resolver maps blocks to shapes. Lookups are memoized on the block's full
// name, so repeated palettes resolve in a map hit. Safe for concurrent use.
type Resolver struct {
	overrides Overrides

	mu    sync.RWMutex
	cache map[string]Shape
}

// NewResolver returns a resolver using only the built-in rules.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]Shape)}
}

// NewResolverWithOverrides returns a resolver that consults ov first.
func NewResolverWithOverrides(ov Overrides) *Resolver {
	return &Resolver{overrides: ov, cache: make(map[string]Shape)}
}

// Resolve returns the shape for a block. Unrecognized blocks resolve to a
// full cube; a block that renders too large is a far better failure than a
// hole in the mesh.
func (r *Resolver) Resolve(b schematic.Block) Shape {
	key := b.FullName()

	r.mu.RLock()
	s, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return s
	}

	if r.overrides != nil {
		if s, ok := r.overrides.ShapeOf(b); ok {
			r.store(key, s)
			return s
		}
	}

	s = resolveBuiltin(b)
	r.store(key, s)
	return s
}

func (r *Resolver) store(key string, s Shape) {
	r.mu.Lock()
	r.cache[key] = s
	r.mu.Unlock()
}

// Common partial-block boxes, in the voxel's local [0,1]^3 space.
var (
	slabBottom = Box(0, 0, 0, 1, 0.5, 1)
	slabTop    = Box(0, 0.5, 0, 1, 1, 1)

	carpet        = Box(0, 0, 0, 1, 0.0625, 1)
	pressurePlate = Box(0.0625, 0, 0.0625, 0.9375, 0.0625, 0.9375)

	fencePost = Box(0.375, 0, 0.375, 0.625, 1, 0.625)
	wallPost  = Box(0.25, 0, 0.25, 0.75, 1, 0.75)
	paneCore  = Box(0.4375, 0, 0.4375, 0.5625, 1, 0.5625)
	paneNS    = Box(0.4375, 0, 0, 0.5625, 1, 1)
	paneEW    = Box(0, 0, 0.4375, 1, 1, 0.5625)

	ladderNorth = Box(0, 0, 0, 1, 1, 0.1875)
	ladderSouth = Box(0, 0, 0.8125, 1, 1, 1)
	ladderWest  = Box(0, 0, 0, 0.1875, 1, 1)
	ladderEast  = Box(0.8125, 0, 0, 1, 1, 1)

	trapdoorBottom = Box(0, 0, 0, 1, 0.1875, 1)
	trapdoorTop    = Box(0, 0.8125, 0, 1, 1, 1)

	bed             = Box(0, 0, 0, 1, 0.5625, 1)
	chest           = Box(0.0625, 0, 0.0625, 0.9375, 0.875, 0.9375)
	enchantingTable = Box(0, 0, 0, 1, 0.75, 1)
	endPortalFrame  = Box(0, 0, 0, 1, 0.8125, 1)
	brewingStand    = Box(0, 0, 0, 1, 0.875, 1)
	anvil           = Box(0.125, 0, 0, 0.875, 1, 1)
	bell            = Box(0.25, 0.25, 0.25, 0.75, 1, 0.75)
	flowerPot       = Box(0.3125, 0, 0.3125, 0.6875, 0.375, 0.6875)
	headBox         = Box(0.25, 0, 0.25, 0.75, 0.5, 0.75)

	hopperTop    = Box(0, 0.625, 0, 1, 1, 1)
	hopperMiddle = Box(0.25, 0.25, 0.25, 0.75, 0.625, 0.75)
	hopperBottom = Box(0.375, 0, 0.375, 0.625, 0.25, 0.625)

	lecternBase = Box(0, 0, 0, 1, 0.125, 1)
	lecternPost = Box(0.25, 0.125, 0.25, 0.75, 0.875, 0.75)
	lecternTop  = Box(0, 0.875, 0, 1, 1, 1)

	lanternHanging  = Box(0.3125, 0.0625, 0.3125, 0.6875, 0.5, 0.6875)
	lanternStanding = Box(0.3125, 0, 0.3125, 0.6875, 0.4375, 0.6875)
	candle          = Box(0.4375, 0, 0.4375, 0.5625, 0.375, 0.5625)
	torchStanding   = Box(0.4375, 0, 0.4375, 0.5625, 0.625, 0.5625)

	railFlat = Box(0, 0, 0, 1, 0.125, 1)
	repeater = Box(0, 0, 0, 1, 0.125, 1)

	chainY  = Box(0.40625, 0, 0.40625, 0.59375, 1, 0.59375)
	thinRod = Box(0.375, 0, 0.375, 0.625, 1, 0.625)
)

func wallTorch(facing string) AABB {
	switch facing {
	case "north":
		return Box(0.4375, 0.1875, 0.5625, 0.5625, 0.8125, 1)
	case "south":
		return Box(0.4375, 0.1875, 0, 0.5625, 0.8125, 0.4375)
	case "west":
		return Box(0.5625, 0.1875, 0.4375, 1, 0.8125, 0.5625)
	case "east":
		return Box(0, 0.1875, 0.4375, 0.4375, 0.8125, 0.5625)
	default:
		return torchStanding
	}
}

func buttonBox(face, facing string) AABB {
	switch face {
	case "ceiling":
		return Box(0.3125, 0.875, 0.375, 0.6875, 1, 0.625)
	case "wall":
		switch facing {
		case "south":
			return Box(0.3125, 0.375, 0, 0.6875, 0.625, 0.125)
		case "west":
			return Box(0.875, 0.375, 0.3125, 1, 0.625, 0.6875)
		case "east":
			return Box(0, 0.375, 0.3125, 0.125, 0.625, 0.6875)
		default: // north
			return Box(0.3125, 0.375, 0.875, 0.6875, 0.625, 1)
		}
	default: // floor
		return Box(0.3125, 0, 0.375, 0.6875, 0.125, 0.625)
	}
}

func leverBox(face, facing string) AABB {
	switch face {
	case "ceiling":
		return Box(0.3125, 0.375, 0.25, 0.6875, 1, 0.75)
	case "wall":
		switch facing {
		case "south":
			return Box(0.3125, 0.25, 0, 0.6875, 0.75, 0.375)
		case "west":
			return Box(0.625, 0.25, 0.3125, 1, 0.75, 0.6875)
		case "east":
			return Box(0, 0.25, 0.3125, 0.375, 0.75, 0.6875)
		default: // north
			return Box(0.3125, 0.25, 0.625, 0.6875, 0.75, 1)
		}
	default: // floor
		return Box(0.3125, 0, 0.25, 0.6875, 0.625, 0.75)
	}
}

func stairShape(facing, half string) Shape {
	bottom := half != "top"
	base := slabBottom
	if !bottom {
		base = slabTop
	}

	// Corner variants get the straight step of their facing. Good enough
	// for occlusion and for quad output; true L-shaped steps need two boxes
	// per corner.
	var step AABB
	switch facing {
	case "south":
		if bottom {
			step = Box(0, 0.5, 0.5, 1, 1, 1)
		} else {
			step = Box(0, 0, 0.5, 1, 0.5, 1)
		}
	case "west":
		if bottom {
			step = Box(0, 0.5, 0, 0.5, 1, 1)
		} else {
			step = Box(0, 0, 0, 0.5, 0.5, 1)
		}
	case "east":
		if bottom {
			step = Box(0.5, 0.5, 0, 1, 1, 1)
		} else {
			step = Box(0.5, 0, 0, 1, 0.5, 1)
		}
	default: // north
		if bottom {
			step = Box(0, 0.5, 0, 1, 1, 0.5)
		} else {
			step = Box(0, 0, 0, 1, 0.5, 0.5)
		}
	}

	return ManyBoxes(base, step)
}

func doorShape(b schematic.Block) Shape {
	facing := propOr(b, "facing", "north")
	if b.Property("open") == "true" {
		hinge := propOr(b, "hinge", "left")
		switch facing + "/" + hinge {
		case "north/left":
			facing = "west"
		case "north/right":
			facing = "east"
		case "south/left":
			facing = "east"
		case "south/right":
			facing = "west"
		case "west/left":
			facing = "south"
		case "west/right":
			facing = "north"
		case "east/left":
			facing = "north"
		case "east/right":
			facing = "south"
		}
	}

	switch facing {
	case "south":
		return OneBox(ladderSouth)
	case "west":
		return OneBox(ladderWest)
	case "east":
		return OneBox(ladderEast)
	default:
		return OneBox(ladderNorth)
	}
}

func propOr(b schematic.Block, key, fallback string) string {
	if v := b.Property(key); v != "" {
		return v
	}
	return fallback
}

// resolveBuiltin is the ordered rule table. Rules match on name substrings
// and state properties; the first hit wins, so more specific patterns come
// before the general ones they would otherwise shadow (trapdoor before door,
// wall sign before wall).
func resolveBuiltin(b schematic.Block) Shape {
	if b.IsAir() {
		return Empty()
	}
	name := b.DisplayName()

	if strings.Contains(name, "slab") {
		switch b.Property("type") {
		case "top":
			return OneBox(slabTop)
		case "double":
			return Full()
		default:
			return OneBox(slabBottom)
		}
	}

	if strings.Contains(name, "stairs") {
		return stairShape(propOr(b, "facing", "north"), propOr(b, "half", "bottom"))
	}

	if strings.Contains(name, "trapdoor") {
		if b.Property("open") == "true" {
			switch propOr(b, "facing", "north") {
			case "north":
				return OneBox(ladderSouth)
			case "west":
				return OneBox(ladderEast)
			case "east":
				return OneBox(ladderWest)
			default: // south
				return OneBox(ladderNorth)
			}
		}
		if b.Property("half") == "top" {
			return OneBox(trapdoorTop)
		}
		return OneBox(trapdoorBottom)
	}

	if strings.Contains(name, "door") {
		return doorShape(b)
	}

	if strings.Contains(name, "fence_gate") {
		if b.Property("open") == "true" {
			return Empty()
		}
		switch propOr(b, "facing", "north") {
		case "north", "south":
			return OneBox(paneEW)
		default:
			return OneBox(paneNS)
		}
	}

	if strings.Contains(name, "fence") {
		return OneBox(fencePost)
	}

	if strings.Contains(name, "sign") || strings.Contains(name, "banner") {
		return Empty()
	}

	if strings.Contains(name, "wall_torch") {
		return OneBox(wallTorch(propOr(b, "facing", "north")))
	}
	if strings.Contains(name, "torch") {
		return OneBox(torchStanding)
	}

	if strings.Contains(name, "wall") {
		return OneBox(wallPost)
	}

	if strings.Contains(name, "pane") || name == "iron_bars" {
		return OneBox(paneCore)
	}

	if strings.Contains(name, "carpet") {
		return OneBox(carpet)
	}

	if name == "snow" {
		layers := 1
		switch b.Property("layers") {
		case "2":
			layers = 2
		case "3":
			layers = 3
		case "4":
			layers = 4
		case "5":
			layers = 5
		case "6":
			layers = 6
		case "7":
			layers = 7
		case "8":
			layers = 8
		}
		return OneBox(Box(0, 0, 0, 1, float32(layers)/8, 1))
	}

	if strings.Contains(name, "pressure_plate") {
		return OneBox(pressurePlate)
	}

	if strings.Contains(name, "button") {
		return OneBox(buttonBox(propOr(b, "face", "wall"), propOr(b, "facing", "north")))
	}

	if name == "lever" {
		return OneBox(leverBox(propOr(b, "face", "wall"), propOr(b, "facing", "north")))
	}

	if strings.Contains(name, "lantern") {
		if b.Property("hanging") == "true" {
			return OneBox(lanternHanging)
		}
		return OneBox(lanternStanding)
	}

	if strings.Contains(name, "candle") {
		return OneBox(candle)
	}

	if name == "ladder" {
		switch propOr(b, "facing", "north") {
		case "south":
			return OneBox(ladderSouth)
		case "west":
			return OneBox(ladderWest)
		case "east":
			return OneBox(ladderEast)
		default:
			return OneBox(ladderNorth)
		}
	}

	if strings.Contains(name, "rail") {
		return OneBox(railFlat)
	}

	if strings.Contains(name, "repeater") || strings.Contains(name, "comparator") {
		return OneBox(repeater)
	}

	if strings.Contains(name, "bed") && !strings.Contains(name, "bedrock") {
		return OneBox(bed)
	}

	if strings.Contains(name, "chest") {
		return OneBox(chest)
	}

	if name == "enchanting_table" {
		return OneBox(enchantingTable)
	}
	if name == "end_portal_frame" {
		return OneBox(endPortalFrame)
	}
	if name == "hopper" {
		return ManyBoxes(hopperTop, hopperMiddle, hopperBottom)
	}
	if name == "lectern" {
		return ManyBoxes(lecternBase, lecternPost, lecternTop)
	}
	if name == "brewing_stand" {
		return OneBox(brewingStand)
	}
	if strings.Contains(name, "cauldron") {
		return Full()
	}
	if strings.Contains(name, "anvil") {
		return OneBox(anvil)
	}
	if name == "bell" {
		return OneBox(bell)
	}
	if strings.HasPrefix(name, "potted_") || name == "flower_pot" {
		return OneBox(flowerPot)
	}
	if name == "chain" {
		return OneBox(chainY)
	}
	if name == "end_rod" || name == "lightning_rod" {
		return OneBox(thinRod)
	}

	if strings.Contains(name, "head") || strings.Contains(name, "skull") {
		return OneBox(headBox)
	}

	if isPlant(name) {
		return Empty()
	}

	if name == "redstone_wire" {
		return Empty()
	}
	if strings.Contains(name, "tripwire") && !strings.Contains(name, "hook") {
		return Empty()
	}

	return Full()
}

var plantFragments = []string{
	"flower", "tulip", "orchid", "allium", "bluet", "dandelion", "poppy",
	"rose", "lily", "sapling", "fern", "crop", "wheat", "carrot", "potato",
	"beetroot", "melon_stem", "pumpkin_stem", "vine", "kelp", "seagrass",
	"bush", "sugar_cane", "dead_bush",
}

func isPlant(name string) bool {
	for _, frag := range plantFragments {
		if strings.Contains(name, frag) {
			return true
		}
	}
	// grass, coral, bamboo and mushroom have solid "*_block" forms.
	if strings.Contains(name, "block") {
		return false
	}
	return strings.Contains(name, "grass") || strings.Contains(name, "coral") ||
		strings.Contains(name, "bamboo") || strings.Contains(name, "mushroom")
}
