package domain

// SeedRecords returns the demo inventory shipped with a fresh deployment.
// The identifiers are fixed so documentation and smoke flows can refer to
// them directly.
func SeedRecords() []ChemicalRecord {
	return []ChemicalRecord{
		{
			Base:     Base{ID: "CHEM001"},
			Name:     "Hydrochloric Acid",
			Symbol:   "HCl",
			Category: CategoryAcid,
			SDS: SafetyDataSheet{
				Handling:      "Wear acid-resistant gloves and eye protection. Use in a fume hood.",
				SpillResponse: "Neutralize with sodium bicarbonate, then flush with water.",
				Hazards:       "Corrosive to skin and eyes. Vapors irritate respiratory tract.",
				FirstAid:      "Flush affected area with water for 15 minutes. Seek medical attention.",
				Storage:       "Store in a ventilated acid cabinet away from bases and metals.",
				SourceURL:     "https://www.fishersci.com/msds/hydrochloric-acid",
			},
		},
		{
			Base:     Base{ID: "CHEM002"},
			Name:     "Sodium Hydroxide",
			Symbol:   "NaOH",
			Category: CategoryBase,
			SDS: SafetyDataSheet{
				Handling:      "Wear alkali-resistant gloves. Avoid generating dust.",
				SpillResponse: "Sweep solid spills into a container; dilute residue with water.",
				Hazards:       "Causes severe burns. Reacts exothermically with water.",
				FirstAid:      "Flush with copious water. Do not neutralize on skin.",
				Storage:       "Keep container tightly closed in a dry area away from acids.",
				SourceURL:     "https://www.fishersci.com/msds/sodium-hydroxide",
			},
		},
		{
			Base:     Base{ID: "CHEM003"},
			Name:     "Acetone",
			Symbol:   "C3H6O",
			Category: CategorySolvent,
			SDS: SafetyDataSheet{
				Handling:      "Keep away from ignition sources. Ground containers when transferring.",
				SpillResponse: "Eliminate ignition sources, absorb with inert material.",
				Hazards:       "Highly flammable liquid and vapor.",
				FirstAid:      "Move to fresh air. Rinse skin with water.",
				Storage:       "Store in a flammables cabinet below 25C.",
				SourceURL:     "https://www.fishersci.com/msds/acetone",
			},
		},
	}
}
