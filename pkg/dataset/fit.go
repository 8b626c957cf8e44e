package dataset

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fitglue/bodyhighlighter/pkg/domain/muscle"
)

// categoryMuscles maps FIT exercise categories to the muscles they work, primary first
var categoryMuscles = map[typedef.ExerciseCategory][]muscle.ID{
	typedef.ExerciseCategoryBenchPress:        {muscle.Chest, muscle.Triceps, muscle.FrontDeltoids},
	typedef.ExerciseCategoryPushUp:            {muscle.Chest, muscle.Triceps, muscle.FrontDeltoids},
	typedef.ExerciseCategoryFlye:              {muscle.Chest, muscle.FrontDeltoids},
	typedef.ExerciseCategoryShoulderPress:     {muscle.FrontDeltoids, muscle.Triceps, muscle.Trapezius},
	typedef.ExerciseCategoryLateralRaise:      {muscle.FrontDeltoids, muscle.Trapezius},
	typedef.ExerciseCategoryShrug:             {muscle.Trapezius, muscle.Neck},
	typedef.ExerciseCategoryCurl:              {muscle.Biceps, muscle.Forearm},
	typedef.ExerciseCategoryTricepsExtension:  {muscle.Triceps},
	typedef.ExerciseCategoryPullUp:            {muscle.UpperBack, muscle.Biceps, muscle.BackDeltoids},
	typedef.ExerciseCategoryRow:               {muscle.UpperBack, muscle.BackDeltoids, muscle.Biceps},
	typedef.ExerciseCategoryDeadlift:          {muscle.Hamstring, muscle.LowerBack, muscle.Gluteal},
	typedef.ExerciseCategoryHyperextension:    {muscle.LowerBack, muscle.Gluteal},
	typedef.ExerciseCategorySquat:             {muscle.Quadriceps, muscle.Gluteal, muscle.Adductor},
	typedef.ExerciseCategoryLunge:             {muscle.Quadriceps, muscle.Gluteal, muscle.Hamstring},
	typedef.ExerciseCategoryLegCurl:           {muscle.Hamstring},
	typedef.ExerciseCategoryCalfRaise:         {muscle.Calves, muscle.LeftSoleus, muscle.RightSoleus},
	typedef.ExerciseCategoryHipRaise:          {muscle.Gluteal, muscle.Hamstring},
	typedef.ExerciseCategoryHipStability:      {muscle.Abductors, muscle.Adductor},
	typedef.ExerciseCategoryCrunch:            {muscle.Abs},
	typedef.ExerciseCategorySitUp:             {muscle.Abs, muscle.Obliques},
	typedef.ExerciseCategoryLegRaise:          {muscle.Abs},
	typedef.ExerciseCategoryPlank:             {muscle.Abs, muscle.Obliques},
	typedef.ExerciseCategoryCore:              {muscle.Abs, muscle.Obliques, muscle.LowerBack},
	typedef.ExerciseCategoryOlympicLift:       {muscle.Quadriceps, muscle.Gluteal, muscle.Trapezius, muscle.LowerBack},
}

// CategoryMuscles returns the muscles worked by a FIT exercise category
func CategoryMuscles(cat typedef.ExerciseCategory) []muscle.ID {
	return categoryMuscles[cat]
}

// CategoryName turns a FIT category such as bench_press into "Bench Press"
func CategoryName(cat typedef.ExerciseCategory) string {
	return cases.Title(language.English).String(strings.ReplaceAll(cat.String(), "_", " "))
}

// FromFIT converts the active sets of a FIT workout into exercises: one exercise per
// category in order of first appearance, with the number of sets as its frequency.
// Sets without a category and rest sets are ignored.
func FromFIT(data []byte) ([]muscle.Exercise, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty FIT data")
	}

	dec := decoder.New(bytes.NewReader(data))

	var order []typedef.ExerciseCategory
	counts := make(map[typedef.ExerciseCategory]int)
	decoded := 0

	for dec.Next() {
		fitData, err := dec.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIT file: %w", err)
		}
		decoded++

		for _, msg := range fitData.Messages {
			if msg.Num != typedef.MesgNumSet {
				continue
			}
			set := mesgdef.NewSet(&msg)
			if set.SetType != typedef.SetTypeActive || len(set.Category) == 0 {
				continue
			}
			cat := set.Category[0]
			if cat == typedef.ExerciseCategoryInvalid {
				continue
			}
			if counts[cat] == 0 {
				order = append(order, cat)
			}
			counts[cat]++
		}
	}

	if decoded == 0 {
		return nil, fmt.Errorf("no FIT data found")
	}

	exercises := make([]muscle.Exercise, 0, len(order))
	for _, cat := range order {
		exercises = append(exercises, muscle.Exercise{
			Name:      CategoryName(cat),
			Muscles:   muscle.IDs(CategoryMuscles(cat)...),
			Frequency: counts[cat],
		})
	}
	return exercises, nil
}
