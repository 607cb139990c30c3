package tileindex

// deriveResources fills in the fields spec.md §3 lists for Tile but leaves
// unspecified beyond their [0,1] ranges (fertility, foodPotential, wood,
// stone, metals, habitability, populationCapacity, diseaseRisk) plus
// movementCost (>= 1). All of these formulas are pure functions of already-aggregated tile fields, so they
// stay deterministic without any extra randomness.
func deriveResources(t *Tile) {
	if !t.IsLand {
		t.Fertility = 0
		t.FoodPotential = 0
		t.Wood = 0
		t.Stone = clamp01(t.Roughness)
		t.Metals = 0
		t.Habitability = 0
		t.PopulationCapacity = 0
		t.DiseaseRisk = 0
		t.MovementCost = 1
		return
	}

	t.Fertility = clamp01(t.Rainfall/1.2*0.6 + (1-absf(t.Temperature))*0.4)

	riverBonus := 0.0
	switch t.RiverPresence {
	case RiverMajor:
		riverBonus = 0.25
	case RiverMinor:
		riverBonus = 0.12
	}
	t.FoodPotential = clamp01(t.Fertility*0.7 + riverBonus)

	switch t.Biome {
	case BiomeForest, BiomeJungle:
		t.Wood = clamp01(0.6 + t.Rainfall*0.3)
	case BiomeSavanna, BiomeGrassland:
		t.Wood = clamp01(0.2 + t.Rainfall*0.2)
	default:
		t.Wood = clamp01(0.05 * t.Rainfall)
	}

	t.Stone = clamp01(t.Roughness*1.5 + t.Elevation*0.2)
	t.Metals = clamp01(t.Roughness*1.2)

	switch t.Biome {
	case BiomeJungle:
		t.DiseaseRisk = clamp01(0.3 + t.Rainfall*0.4)
	case BiomeSavanna, BiomeForest:
		t.DiseaseRisk = clamp01(0.15 + t.Rainfall*0.2)
	default:
		t.DiseaseRisk = clamp01(0.05 + t.Rainfall*0.1)
	}

	coastFactor := 1.0
	if t.DistanceToCoast > 0 {
		coastFactor = clamp01(1 - t.DistanceToCoast/20)
	}

	habitability := t.FoodPotential*0.45 + t.Fertility*0.2 + coastFactor*0.15 + (1-t.DiseaseRisk)*0.2
	switch t.Biome {
	case BiomeDesert:
		habitability *= 0.4
	case BiomeTundra:
		habitability *= 0.5
	}
	t.Habitability = clamp01(habitability)

	t.PopulationCapacity = clamp01(t.Habitability*0.8 + t.FoodPotential*0.2)

	t.MovementCost = 1 + t.Roughness*3
	switch t.Biome {
	case BiomeForest, BiomeJungle:
		t.MovementCost += 0.5
	case BiomeDesert:
		t.MovementCost += 0.3
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
