package vicalc

import "log/slog"

const fruitAndVegCeiling = 30

// Nutrition scores servings of fruit and vegetables (individually and as a
// combined bonus), daily drinks, water, caffeine and alcohol.
type Nutrition struct {
	logger *slog.Logger

	fruit         *PointsMap
	vegetables    *PointsMap
	fruitAndVeg   map[string]map[string]int
	drinks        *PointsMap
	water         *PointsMap
	caffeinated   *PointsMap
	alcoholMale   *PointsMap
	alcoholFemale *PointsMap
}

func NewNutrition(logger *slog.Logger) *Nutrition {
	return &Nutrition{
		logger: logger,
		// 0, 1-2, more than 2
		fruit: NewPointsMap(map[string]int{"1": 0, "2": 10, "3": 20}),
		// 0, 1-2, 3-4, 5-6, more than 6
		vegetables: NewPointsMap(map[string]int{"1": 0, "2": 10, "3": 20, "4": 25, "5": 30}),
		// bonus keyed by (fruit answer, vegetable answer)
		fruitAndVeg: map[string]map[string]int{
			"1": {"1": 0, "2": 5, "3": 10, "4": 15, "5": 20},
			"2": {"1": 5, "2": 10, "3": 15, "4": 20, "5": 25},
			"3": {"1": 10, "2": 15, "3": 20, "4": 25, "5": 30},
		},
		// 0-3, 4-5, 6-7, more than 7
		drinks: NewPointsMap(map[string]int{"1": 0, "2": 0, "3": 5, "4": 8, "5": 10}),
		// 0-2, 3-5, 6-8, more than 8
		water: NewPointsMap(map[string]int{"1": 0, "2": 5, "3": 8, "4": 10}),
		// 0-2, 3-5, 6-8, more than 8
		caffeinated: NewPointsMap(map[string]int{"1": 0, "2": -5, "3": -8, "4": -10}),
		// 0-2, 3-4, more than 4
		alcoholMale: NewPointsMap(map[string]int{"1": 0, "2": -8, "3": -10}),
		// 0-1, 2-3, more than 3
		alcoholFemale: NewPointsMap(map[string]int{"1": 0, "2": -8, "3": -10}),
	}
}

func (n *Nutrition) Name() string { return "NUTRITION" }

func (n *Nutrition) Inputs() []string {
	return []string{
		"Gender", "NumberFruitServings", "NumberVegetableServings",
		"NumberDrinks", "NumberCaffeinatedDrinks", "NumberWaterDrinks",
		"NumberAlcoholicDrinks",
	}
}

func (n *Nutrition) Score(answers AnswerSet) *Report {
	r := newReport()

	fruit := answers.Key("NumberFruitServings")
	r.applyMap("NUMFRUITSSERVS", n.fruit, fruit, n.logger)

	veg := answers.Key("NumberVegetableServings")
	r.applyMap("NUMVEGSERVS", n.vegetables, veg, n.logger)

	// The combined bonus only exists when both servings questions were
	// answered; its ceiling is excluded from MaxPoints otherwise.
	combined := &Report{}
	if fruit != nil && veg != nil {
		combined.MaxPoints = fruitAndVegCeiling
		combined.MaxForAnswered = fruitAndVegCeiling
		if pts, ok := n.fruitAndVeg[*fruit][*veg]; ok {
			combined.Points = pts
		} else {
			n.logger.Error("illegal answer value", "component", "NUMFRUITANDVEG",
				"fruit", *fruit, "vegetables", *veg)
		}
	}
	r.attach("NUMFRUITANDVEG", combined)

	r.applyMap("NUMDRINKS", n.drinks, answers.Key("NumberDrinks"), n.logger)
	r.applyMap("NUMWATERDRINKS", n.water, answers.Key("NumberWaterDrinks"), n.logger)
	r.applyMap("NUMCAFDRINKS", n.caffeinated, answers.Key("NumberCaffeinatedDrinks"), n.logger)

	// Alcohol tolerance differs by gender. An unanswered gender falls back
	// to the male table, matching the original behavior.
	alcohol := n.alcoholMale
	if male := IsMale(answers["Gender"]); male != nil && !*male {
		alcohol = n.alcoholFemale
	}
	r.applyMap("NUMALCDRINKS", alcohol, answers.Key("NumberAlcoholicDrinks"), n.logger)

	return r
}
