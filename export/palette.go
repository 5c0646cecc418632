// Package export serializes quad lists to interchange formats: Wavefront
// OBJ with MTL materials, and binary glTF (GLB). Serializers write to
// io.Writer; callers own the files.
package export

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is an RGBA material color, components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Palette maps material names to display colors. Lookups fall back from
// exact matches through name-fragment heuristics to a neutral gray, so every
// material always gets a color.
type Palette struct {
	overrides map[string]Color
}

// NewPalette returns the builtin palette with no overrides.
func NewPalette() *Palette {
	return &Palette{overrides: make(map[string]Color)}
}

// paletteFile is the YAML override layout:
//
//	materials:
//	  stone: [0.5, 0.5, 0.5]
//	  glass: [0.85, 0.9, 0.95, 0.6]
type paletteFile struct {
	Materials map[string][]float32 `yaml:"materials"`
}

// Load merges material color overrides from YAML. Entries take [r, g, b] or
// [r, g, b, a]; later loads override earlier ones.
func (p *Palette) Load(r io.Reader) error {
	var file paletteFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return fmt.Errorf("export: parse palette: %w", err)
	}
	for name, c := range file.Materials {
		if len(c) != 3 && len(c) != 4 {
			return fmt.Errorf("export: palette entry %q needs 3 or 4 components, got %d", name, len(c))
		}
		color := Color{R: c[0], G: c[1], B: c[2], A: 1}
		if len(c) == 4 {
			color.A = c[3]
		}
		p.overrides[name] = color
	}
	return nil
}

// Set overrides a single material color.
func (p *Palette) Set(material string, c Color) {
	p.overrides[material] = c
}

// Color returns the display color for a material name.
func (p *Palette) Color(material string) Color {
	if c, ok := p.overrides[material]; ok {
		return c
	}
	name := strings.TrimPrefix(material, "minecraft:")
	if rgb, ok := namedColors[name]; ok {
		return withAlpha(name, rgb)
	}
	return withAlpha(name, fragmentColor(name))
}

func withAlpha(name string, rgb [3]float32) Color {
	a := float32(1)
	if strings.Contains(name, "glass") || strings.Contains(name, "water") || strings.Contains(name, "ice") {
		a = 0.6
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2], A: a}
}

// namedColors holds the exact-name entries of the builtin color table,
// approximating vanilla block appearance.
var namedColors = map[string][3]float32{
	"stone":             {0.5, 0.5, 0.5},
	"cobblestone":       {0.45, 0.45, 0.45},
	"mossy_cobblestone": {0.45, 0.45, 0.45},
	"granite":           {0.6, 0.4, 0.35},
	"diorite":           {0.75, 0.75, 0.75},
	"andesite":          {0.55, 0.55, 0.55},
	"deepslate":         {0.3, 0.3, 0.35},
	"cobbled_deepslate": {0.3, 0.3, 0.35},
	"tuff":              {0.45, 0.47, 0.43},
	"calcite":           {0.9, 0.9, 0.88},
	"dripstone_block":   {0.55, 0.45, 0.4},
	"blackstone":        {0.15, 0.13, 0.15},
	"basalt":            {0.3, 0.3, 0.32},
	"smooth_basalt":     {0.25, 0.25, 0.27},

	"dirt":        {0.55, 0.4, 0.3},
	"coarse_dirt": {0.55, 0.4, 0.3},
	"rooted_dirt": {0.55, 0.4, 0.3},
	"grass_block": {0.4, 0.6, 0.3},
	"podzol":      {0.45, 0.35, 0.25},
	"mycelium":    {0.5, 0.45, 0.5},
	"mud":         {0.35, 0.3, 0.35},
	"packed_mud":  {0.5, 0.4, 0.35},
	"mud_bricks":  {0.55, 0.45, 0.4},

	"sand":     {0.85, 0.8, 0.6},
	"red_sand": {0.75, 0.45, 0.25},
	"gravel":   {0.55, 0.52, 0.5},
	"clay":     {0.6, 0.62, 0.68},

	"sandstone":     {0.85, 0.78, 0.55},
	"red_sandstone": {0.7, 0.4, 0.2},

	"bricks":            {0.6, 0.35, 0.3},
	"stone_bricks":      {0.48, 0.48, 0.48},
	"nether_bricks":     {0.25, 0.15, 0.2},
	"red_nether_bricks": {0.35, 0.12, 0.12},
	"end_stone_bricks":  {0.85, 0.85, 0.7},
	"prismarine_bricks": {0.4, 0.6, 0.55},

	"iron_block":      {0.75, 0.75, 0.75},
	"gold_block":      {0.9, 0.75, 0.2},
	"diamond_block":   {0.4, 0.8, 0.8},
	"emerald_block":   {0.3, 0.7, 0.35},
	"lapis_block":     {0.2, 0.3, 0.7},
	"redstone_block":  {0.7, 0.15, 0.1},
	"coal_block":      {0.15, 0.15, 0.15},
	"copper_block":    {0.7, 0.45, 0.35},
	"netherite_block": {0.25, 0.22, 0.25},

	"glass": {0.85, 0.9, 0.95},

	"netherrack":        {0.5, 0.25, 0.25},
	"soul_sand":         {0.35, 0.28, 0.22},
	"soul_soil":         {0.32, 0.25, 0.2},
	"glowstone":         {0.85, 0.7, 0.4},
	"magma_block":       {0.55, 0.25, 0.1},
	"nether_wart_block": {0.5, 0.15, 0.15},
	"shroomlight":       {0.9, 0.6, 0.4},

	"end_stone":     {0.85, 0.85, 0.7},
	"purpur_block":  {0.6, 0.45, 0.6},
	"purpur_pillar": {0.6, 0.45, 0.6},
	"quartz_block":  {0.9, 0.88, 0.85},
	"smooth_quartz": {0.9, 0.88, 0.85},

	"prismarine":      {0.4, 0.55, 0.5},
	"dark_prismarine": {0.25, 0.4, 0.38},
	"sea_lantern":     {0.7, 0.85, 0.85},

	"obsidian":        {0.15, 0.1, 0.2},
	"crying_obsidian": {0.15, 0.1, 0.2},
	"bedrock":         {0.3, 0.3, 0.3},
	"ice":             {0.6, 0.75, 0.9},
	"packed_ice":      {0.6, 0.75, 0.9},
	"blue_ice":        {0.6, 0.75, 0.9},
	"snow_block":      {0.95, 0.97, 1},
	"hay_block":       {0.75, 0.65, 0.25},
	"bone_block":      {0.85, 0.82, 0.75},
	"slime_block":     {0.45, 0.7, 0.4},
	"honey_block":     {0.85, 0.6, 0.2},
	"bookshelf":       {0.55, 0.45, 0.3},
	"tnt":             {0.7, 0.3, 0.25},
	"sponge":          {0.75, 0.75, 0.35},
	"melon":           {0.5, 0.65, 0.3},
	"pumpkin":         {0.8, 0.5, 0.15},

	"redstone_lamp": {0.55, 0.35, 0.2},
	"observer":      {0.45, 0.45, 0.45},
	"dropper":       {0.45, 0.45, 0.45},
	"dispenser":     {0.45, 0.45, 0.45},
	"hopper":        {0.4, 0.4, 0.45},

	"water": {0.2, 0.4, 0.8},
	"lava":  {0.9, 0.45, 0.1},
}

// fragmentColor handles the name families the exact table leaves out: dyed
// variants, wood species, leaves, ores.
func fragmentColor(name string) [3]float32 {
	has := func(frag string) bool { return strings.Contains(name, frag) }

	switch {
	case has("white"):
		return [3]float32{0.95, 0.95, 0.95}
	case has("orange"):
		return [3]float32{0.85, 0.45, 0.1}
	case has("magenta"):
		return [3]float32{0.7, 0.25, 0.7}
	case has("light_blue"):
		return [3]float32{0.4, 0.6, 0.9}
	case has("yellow"):
		return [3]float32{0.95, 0.9, 0.2}
	case has("lime"):
		return [3]float32{0.5, 0.8, 0.1}
	case has("pink"):
		return [3]float32{0.9, 0.5, 0.65}
	case has("light_gray"):
		return [3]float32{0.6, 0.6, 0.6}
	case has("gray"):
		return [3]float32{0.35, 0.35, 0.4}
	case has("cyan"):
		return [3]float32{0.1, 0.55, 0.55}
	case has("purple"):
		return [3]float32{0.45, 0.2, 0.7}
	case has("blue"):
		return [3]float32{0.2, 0.25, 0.7}
	case has("brown"):
		return [3]float32{0.45, 0.3, 0.15}
	case has("green"):
		return [3]float32{0.3, 0.4, 0.15}
	case has("warped"):
		return [3]float32{0.2, 0.45, 0.45}
	case has("crimson"):
		return [3]float32{0.5, 0.2, 0.25}
	case has("red"):
		return [3]float32{0.7, 0.2, 0.2}
	case has("black"):
		return [3]float32{0.1, 0.1, 0.12}

	case has("spruce"):
		return [3]float32{0.35, 0.25, 0.15}
	case has("birch"):
		return [3]float32{0.8, 0.75, 0.6}
	case has("jungle"):
		return [3]float32{0.55, 0.4, 0.25}
	case has("acacia"):
		return [3]float32{0.7, 0.4, 0.25}
	case has("dark_oak"):
		return [3]float32{0.25, 0.18, 0.1}
	case has("mangrove"):
		return [3]float32{0.45, 0.2, 0.15}
	case has("cherry"):
		return [3]float32{0.75, 0.55, 0.55}
	case has("bamboo"):
		return [3]float32{0.7, 0.65, 0.4}
	case has("leaves"):
		return [3]float32{0.25, 0.5, 0.2}
	case has("log") || has("wood"):
		return [3]float32{0.45, 0.35, 0.2}
	case has("plank") || has("oak"):
		return [3]float32{0.6, 0.5, 0.3}

	case has("ore"):
		return [3]float32{0.5, 0.5, 0.5}
	case has("deepslate"):
		return [3]float32{0.25, 0.25, 0.3}
	case has("stone") || has("cobble"):
		return [3]float32{0.5, 0.5, 0.5}
	case has("dirt"):
		return [3]float32{0.55, 0.4, 0.3}
	case has("grass"):
		return [3]float32{0.4, 0.6, 0.3}
	case has("sand"):
		return [3]float32{0.85, 0.8, 0.6}
	case has("terracotta"):
		return [3]float32{0.6, 0.45, 0.38}
	case has("glass"):
		return [3]float32{0.85, 0.9, 0.95}
	case has("piston"):
		return [3]float32{0.55, 0.45, 0.35}
	}
	return [3]float32{0.6, 0.6, 0.6}
}
