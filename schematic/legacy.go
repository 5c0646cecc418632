package schematic

import "fmt"

var woolColors = [16]string{
	"white", "orange", "magenta", "light_blue",
	"yellow", "lime", "pink", "gray",
	"light_gray", "cyan", "purple", "blue",
	"brown", "green", "red", "black",
}

// LegacyBlock maps a pre-flattening (ID, damage) pair to a modern block name.
// The damage nibble selects the variant for blocks that multiplexed several
// materials onto one ID (stone, planks, wool, ...). Unknown IDs map to a
// stable placeholder name so they survive a round trip without colliding
// with real blocks.
func LegacyBlock(id uint16, damage uint8) string {
	pick := func(variants []string) string {
		if int(damage) < len(variants) {
			return variants[damage]
		}
		return variants[0]
	}

	switch id {
	case 0:
		return "minecraft:air"
	case 1:
		return pick([]string{
			"minecraft:stone", "minecraft:granite", "minecraft:polished_granite",
			"minecraft:diorite", "minecraft:polished_diorite",
			"minecraft:andesite", "minecraft:polished_andesite",
		})
	case 2:
		return "minecraft:grass_block"
	case 3:
		return pick([]string{"minecraft:dirt", "minecraft:coarse_dirt", "minecraft:podzol"})
	case 4:
		return "minecraft:cobblestone"
	case 5:
		return pick([]string{
			"minecraft:oak_planks", "minecraft:spruce_planks", "minecraft:birch_planks",
			"minecraft:jungle_planks", "minecraft:acacia_planks", "minecraft:dark_oak_planks",
		})
	case 7:
		return "minecraft:bedrock"
	case 8, 9:
		return "minecraft:water"
	case 10, 11:
		return "minecraft:lava"
	case 12:
		return pick([]string{"minecraft:sand", "minecraft:red_sand"})
	case 13:
		return "minecraft:gravel"
	case 14:
		return "minecraft:gold_ore"
	case 15:
		return "minecraft:iron_ore"
	case 16:
		return "minecraft:coal_ore"
	case 17:
		switch damage & 0x3 {
		case 1:
			return "minecraft:spruce_log"
		case 2:
			return "minecraft:birch_log"
		case 3:
			return "minecraft:jungle_log"
		}
		return "minecraft:oak_log"
	case 18:
		switch damage & 0x3 {
		case 1:
			return "minecraft:spruce_leaves"
		case 2:
			return "minecraft:birch_leaves"
		case 3:
			return "minecraft:jungle_leaves"
		}
		return "minecraft:oak_leaves"
	case 20:
		return "minecraft:glass"
	case 21:
		return "minecraft:lapis_ore"
	case 22:
		return "minecraft:lapis_block"
	case 23:
		return "minecraft:dispenser"
	case 24:
		return "minecraft:sandstone"
	case 25:
		return "minecraft:note_block"
	case 29:
		return "minecraft:sticky_piston"
	case 33:
		return "minecraft:piston"
	case 35:
		return "minecraft:" + woolColors[damage&0xF] + "_wool"
	case 41:
		return "minecraft:gold_block"
	case 43, 44:
		variants := []string{
			"minecraft:smooth_stone_slab", "minecraft:sandstone_slab", "minecraft:petrified_oak_slab",
			"minecraft:cobblestone_slab", "minecraft:brick_slab", "minecraft:stone_brick_slab",
			"minecraft:nether_brick_slab", "minecraft:quartz_slab",
		}
		return variants[damage&0x7]
	case 42:
		return "minecraft:iron_block"
	case 45:
		return "minecraft:bricks"
	case 46:
		return "minecraft:tnt"
	case 47:
		return "minecraft:bookshelf"
	case 48:
		return "minecraft:mossy_cobblestone"
	case 49:
		return "minecraft:obsidian"
	case 50:
		return "minecraft:torch"
	case 52:
		return "minecraft:spawner"
	case 53:
		return "minecraft:oak_stairs"
	case 54:
		return "minecraft:chest"
	case 55:
		return "minecraft:redstone_wire"
	case 56:
		return "minecraft:diamond_ore"
	case 57:
		return "minecraft:diamond_block"
	case 58:
		return "minecraft:crafting_table"
	case 61, 62:
		return "minecraft:furnace"
	case 63:
		return "minecraft:oak_sign"
	case 64:
		return "minecraft:oak_door"
	case 65:
		return "minecraft:ladder"
	case 66:
		return "minecraft:rail"
	case 67:
		return "minecraft:cobblestone_stairs"
	case 69:
		return "minecraft:lever"
	case 70:
		return "minecraft:stone_pressure_plate"
	case 72:
		return "minecraft:oak_pressure_plate"
	case 73, 74:
		return "minecraft:redstone_ore"
	case 75, 76:
		return "minecraft:redstone_torch"
	case 77:
		return "minecraft:stone_button"
	case 79:
		return "minecraft:ice"
	case 80:
		return "minecraft:snow_block"
	case 81:
		return "minecraft:cactus"
	case 82:
		return "minecraft:clay"
	case 84:
		return "minecraft:jukebox"
	case 85:
		return "minecraft:oak_fence"
	case 86:
		return "minecraft:pumpkin"
	case 87:
		return "minecraft:netherrack"
	case 88:
		return "minecraft:soul_sand"
	case 89:
		return "minecraft:glowstone"
	case 90:
		return "minecraft:nether_portal"
	case 91:
		return "minecraft:jack_o_lantern"
	case 93, 94:
		return "minecraft:repeater"
	case 95:
		return "minecraft:" + woolColors[damage&0xF] + "_stained_glass"
	case 98:
		return pick([]string{
			"minecraft:stone_bricks", "minecraft:mossy_stone_bricks",
			"minecraft:cracked_stone_bricks", "minecraft:chiseled_stone_bricks",
		})
	case 109:
		return "minecraft:stone_brick_stairs"
	case 110:
		return "minecraft:mycelium"
	case 112:
		return "minecraft:nether_bricks"
	case 121:
		return "minecraft:end_stone"
	case 123, 124:
		return "minecraft:redstone_lamp"
	case 125, 126:
		variants := []string{
			"minecraft:oak_slab", "minecraft:spruce_slab", "minecraft:birch_slab",
			"minecraft:jungle_slab", "minecraft:acacia_slab", "minecraft:dark_oak_slab",
		}
		if v := int(damage & 0x7); v < len(variants) {
			return variants[v]
		}
		return variants[0]
	case 129:
		return "minecraft:emerald_ore"
	case 130:
		return "minecraft:ender_chest"
	case 131:
		return "minecraft:tripwire_hook"
	case 133:
		return "minecraft:emerald_block"
	case 134:
		return "minecraft:spruce_stairs"
	case 135:
		return "minecraft:birch_stairs"
	case 136:
		return "minecraft:jungle_stairs"
	case 137:
		return "minecraft:command_block"
	case 138:
		return "minecraft:beacon"
	case 139:
		return "minecraft:cobblestone_wall"
	case 143:
		return "minecraft:oak_button"
	case 145:
		return "minecraft:anvil"
	case 146:
		return "minecraft:trapped_chest"
	case 147:
		return "minecraft:light_weighted_pressure_plate"
	case 148:
		return "minecraft:heavy_weighted_pressure_plate"
	case 149, 150:
		return "minecraft:comparator"
	case 151, 178:
		return "minecraft:daylight_detector"
	case 152:
		return "minecraft:redstone_block"
	case 153:
		return "minecraft:nether_quartz_ore"
	case 154:
		return "minecraft:hopper"
	case 155:
		return "minecraft:quartz_block"
	case 156:
		return "minecraft:quartz_stairs"
	case 157:
		return "minecraft:activator_rail"
	case 158:
		return "minecraft:dropper"
	case 159:
		return "minecraft:" + woolColors[damage&0xF] + "_terracotta"
	case 160:
		return "minecraft:" + woolColors[damage&0xF] + "_stained_glass_pane"
	case 165:
		return "minecraft:slime_block"
	case 166:
		return "minecraft:barrier"
	case 169:
		return "minecraft:sea_lantern"
	case 170:
		return "minecraft:hay_block"
	case 172:
		return "minecraft:terracotta"
	case 173:
		return "minecraft:coal_block"
	case 174:
		return "minecraft:packed_ice"
	case 179:
		return "minecraft:red_sandstone"
	case 180:
		return "minecraft:red_sandstone_stairs"
	case 183:
		return "minecraft:spruce_fence_gate"
	case 184:
		return "minecraft:birch_fence_gate"
	case 185:
		return "minecraft:jungle_fence_gate"
	case 186:
		return "minecraft:dark_oak_fence_gate"
	case 187:
		return "minecraft:acacia_fence_gate"
	case 188:
		return "minecraft:spruce_fence"
	case 189:
		return "minecraft:birch_fence"
	case 190:
		return "minecraft:jungle_fence"
	case 191:
		return "minecraft:dark_oak_fence"
	case 192:
		return "minecraft:acacia_fence"
	case 198:
		return "minecraft:end_rod"
	case 199:
		return "minecraft:chorus_plant"
	case 200:
		return "minecraft:chorus_flower"
	case 201:
		return "minecraft:purpur_block"
	case 202:
		return "minecraft:purpur_pillar"
	case 203:
		return "minecraft:purpur_stairs"
	case 206:
		return "minecraft:end_stone_bricks"
	case 210:
		return "minecraft:repeating_command_block"
	case 211:
		return "minecraft:chain_command_block"
	case 213:
		return "minecraft:magma_block"
	case 214:
		return "minecraft:nether_wart_block"
	case 215:
		return "minecraft:red_nether_bricks"
	case 216:
		return "minecraft:bone_block"
	case 218:
		return "minecraft:observer"
	case 251:
		return "minecraft:" + woolColors[damage&0xF] + "_concrete"
	case 252:
		return "minecraft:" + woolColors[damage&0xF] + "_concrete_powder"
	}

	if id >= 219 && id <= 234 {
		return "minecraft:" + woolColors[id-219] + "_shulker_box"
	}
	if id >= 235 && id <= 250 {
		return "minecraft:" + woolColors[id-235] + "_glazed_terracotta"
	}

	return fmt.Sprintf("minecraft:unknown_block_%d", id)
}

// LegacyState recovers state properties from a pre-flattening damage value.
// Only the properties that affect shape or orientation are mapped; the rest
// of the damage bits carried data the modern format stores elsewhere.
func LegacyState(id uint16, damage uint8) BlockState {
	props := make(BlockState)
	onOff := func(bit uint8) string {
		if damage&bit != 0 {
			return "true"
		}
		return "false"
	}

	switch id {
	case 17, 162: // logs: axis in the upper bits
		switch (damage >> 2) & 0x3 {
		case 1:
			props["axis"] = "x"
		case 2:
			props["axis"] = "z"
		default:
			props["axis"] = "y"
		}

	case 53, 67, 108, 109, 114, 128, 134, 135, 136, 156, 163, 164, 180, 203: // stairs
		switch damage & 0x3 {
		case 0:
			props["facing"] = "east"
		case 1:
			props["facing"] = "west"
		case 2:
			props["facing"] = "south"
		case 3:
			props["facing"] = "north"
		}
		if damage&0x4 != 0 {
			props["half"] = "top"
		} else {
			props["half"] = "bottom"
		}

	case 43, 125, 181: // double slabs
		props["type"] = "double"

	case 44, 126, 182: // slabs: top bit in 0x8
		if damage&0x8 != 0 {
			props["type"] = "top"
		} else {
			props["type"] = "bottom"
		}

	case 50, 75, 76: // torches
		switch damage {
		case 1:
			props["facing"] = "east"
		case 2:
			props["facing"] = "west"
		case 3:
			props["facing"] = "south"
		case 4:
			props["facing"] = "north"
		}

	case 69: // lever
		switch damage & 0x7 {
		case 0, 7:
			props["face"] = "ceiling"
		case 5, 6:
			props["face"] = "floor"
		default:
			props["face"] = "wall"
		}
		props["powered"] = onOff(0x8)

	case 77, 143: // buttons
		switch damage & 0x7 {
		case 0:
			props["face"] = "ceiling"
		case 5:
			props["face"] = "floor"
		default:
			props["face"] = "wall"
		}
		props["powered"] = onOff(0x8)

	case 93, 94: // repeater
		switch damage & 0x3 {
		case 0:
			props["facing"] = "south"
		case 1:
			props["facing"] = "west"
		case 2:
			props["facing"] = "north"
		case 3:
			props["facing"] = "east"
		}
		props["delay"] = fmt.Sprintf("%d", ((damage>>2)&0x3)+1)
		if id == 94 {
			props["powered"] = "true"
		} else {
			props["powered"] = "false"
		}

	case 149, 150: // comparator
		switch damage & 0x3 {
		case 0:
			props["facing"] = "south"
		case 1:
			props["facing"] = "west"
		case 2:
			props["facing"] = "north"
		case 3:
			props["facing"] = "east"
		}
		if damage&0x4 != 0 {
			props["mode"] = "subtract"
		} else {
			props["mode"] = "compare"
		}
		props["powered"] = onOff(0x8)

	case 29, 33: // pistons
		props["facing"] = sixWayFacing(damage & 0x7)
		props["extended"] = onOff(0x8)

	case 23, 158, 218: // dispenser, dropper, observer
		props["facing"] = sixWayFacing(damage & 0x7)
		if id != 218 {
			props["triggered"] = onOff(0x8)
		}

	case 154: // hopper
		switch damage & 0x7 {
		case 2:
			props["facing"] = "north"
		case 3:
			props["facing"] = "south"
		case 4:
			props["facing"] = "west"
		case 5:
			props["facing"] = "east"
		default:
			props["facing"] = "down"
		}
		if damage&0x8 == 0 {
			props["enabled"] = "true"
		} else {
			props["enabled"] = "false"
		}

	case 55: // redstone wire
		props["power"] = fmt.Sprintf("%d", damage&0xF)

	case 66: // rails
		shapes := []string{
			"north_south", "east_west",
			"ascending_east", "ascending_west", "ascending_north", "ascending_south",
			"south_east", "south_west", "north_west", "north_east",
		}
		if int(damage) < len(shapes) {
			props["shape"] = shapes[damage]
		} else {
			props["shape"] = "north_south"
		}
	}

	if len(props) == 0 {
		return nil
	}
	return props
}

func sixWayFacing(v uint8) string {
	switch v {
	case 0:
		return "down"
	case 1:
		return "up"
	case 2:
		return "north"
	case 3:
		return "south"
	case 4:
		return "west"
	case 5:
		return "east"
	}
	return "up"
}
