package models

import "fmt"

// ArmorClasses maps armor class ids to display names
var ArmorClasses = map[int]string{
	0:  "Unused",
	1:  "Infantry",
	2:  "Turtle Ships",
	3:  "Base Pierce",
	4:  "Base Melee",
	5:  "War Elephants",
	8:  "Cavalry",
	11: "All Buildings",
	13: "Stone Defense",
	14: "Predator Animals",
	15: "Archers",
	16: "Ships & Saboteurs",
	17: "Rams",
	18: "Trees",
	19: "Unique Units",
	20: "Siege Weapons",
	21: "Standard Buildings",
	22: "Walls & Gates",
	23: "Gunpowder Units",
	24: "Boars",
	25: "Monks",
	26: "Castles",
	27: "Spearmen",
	28: "Cavalry Archers",
	29: "Eagle Warriors",
	30: "Camels",
	31: "Leitis",
	32: "Condottieri",
	33: "Fishing Ships",
	34: "Mamelukes",
	35: "Heroes & Kings",
	36: "Hussite Wagons",
	38: "Skirmishers",
	39: "Mounted Archers",
}

// Well-known classes used by the damage model
const (
	ClassInfantry   = 1
	ClassBasePierce = 3
	ClassBaseMelee  = 4
	ClassCavalry    = 8
	ClassArchers    = 15
	ClassSpearmen   = 27
)

// ArmorClassName returns the display name for a class id
func ArmorClassName(id int) string {
	if name, ok := ArmorClasses[id]; ok {
		return name
	}
	return fmt.Sprintf("Class %d", id)
}
