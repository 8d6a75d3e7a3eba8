package kidsbmi

import "github.com/charlie0129/healthcalc/pkg/calc"

type ageGroup int

const (
	preschool ageGroup = iota // 2-5
	school                    // 6-11
	teen                      // 12-20
)

func ageGroupOf(ageMonths int) ageGroup {
	switch {
	case ageMonths < 72:
		return preschool
	case ageMonths < 144:
		return school
	default:
		return teen
	}
}

func nutrition(c Category, g ageGroup) []string {
	var tips []string
	switch c {
	case Underweight:
		tips = []string{
			"Offer energy-dense healthy foods such as nut butters, avocado, cheese and whole-grain bread.",
			"Serve three meals and two to three snacks at regular times.",
		}
	case Healthy:
		tips = []string{
			"Keep offering a variety of vegetables, fruit, whole grains and lean protein.",
			"Let your child follow their own hunger and fullness cues.",
		}
	case Overweight, Obese:
		tips = []string{
			"Replace sugary drinks with water or plain milk.",
			"Fill half the plate with vegetables and fruit.",
			"Eat together as a family and avoid eating in front of screens.",
		}
	default:
		calc.UnknownVariant("kids bmi category", c)
	}

	switch g {
	case preschool:
		tips = append(tips, "Young children may need to try a new food 10-15 times before accepting it.")
	case school:
		tips = append(tips, "Involve your child in planning and preparing healthy lunches.")
	case teen:
		tips = append(tips, "Teens need extra calcium and iron during growth spurts; avoid restrictive dieting.")
	}
	return tips
}

func activity(g ageGroup) []string {
	switch g {
	case preschool:
		return []string{
			"Aim for at least 3 hours of active play spread through the day.",
			"Limit screen time to 1 hour per day of high-quality programming.",
		}
	case school:
		return []string{
			"Aim for at least 60 minutes of moderate-to-vigorous activity every day.",
			"Include muscle- and bone-strengthening play such as climbing or jumping 3 days a week.",
		}
	default:
		return []string{
			"Aim for at least 60 minutes of moderate-to-vigorous activity every day.",
			"Team sports, cycling and dance are good ways to stay active.",
			"Keep recreational screen time under 2 hours per day.",
		}
	}
}
