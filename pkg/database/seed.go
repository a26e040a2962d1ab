package database

import (
	"tutor_backend/internal/model"

	"gorm.io/gorm"
)

// SeedCatalog loads the starter question bank when the catalog tables are
// empty. Imported corpora land in the same tables, so seeding is skipped as
// soon as anything else has been loaded.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Question{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, q := range starterQuestions {
		if err := db.Create(&q).Error; err != nil {
			return err
		}
	}

	seen := map[string]bool{}
	for _, q := range starterQuestions {
		key := q.Subject + "/" + string(q.Level) + "/" + q.Topic
		if seen[key] {
			continue
		}
		seen[key] = true
		topic := model.Topic{
			Name:     q.Topic,
			Subject:  q.Subject,
			Level:    q.Level,
			IsActive: true,
		}
		if err := db.Create(&topic).Error; err != nil {
			return err
		}
	}
	return nil
}

var starterQuestions = []model.Question{
	{
		Subject: "Math", Level: model.P3, Topic: "Addition",
		QuestionText:  "What is 15 + 27?",
		Options:       []string{"32", "42", "52", "62"},
		CorrectAnswer: "42",
		Explanation:   "Add the ones: 5 + 7 = 12. Write 2, carry 1. Add the tens: 1 + 2 + 1 = 4. Answer: 42.",
	},
	{
		Subject: "Math", Level: model.P3, Topic: "Addition",
		QuestionText:  "Sarah has 8 apples. She buys 12 more. How many apples does she have now?",
		Options:       []string{"18", "20", "22", "24"},
		CorrectAnswer: "20",
		Explanation:   "8 + 12 = 20. Sarah has 20 apples in total.",
	},
	{
		Subject: "Math", Level: model.P3, Topic: "Subtraction",
		QuestionText:  "What is 45 - 18?",
		Options:       []string{"27", "37", "47", "57"},
		CorrectAnswer: "27",
		Explanation:   "Subtract: 45 - 18 = 27. You can check by adding: 27 + 18 = 45.",
	},
	{
		Subject: "Math", Level: model.P4, Topic: "Fractions",
		QuestionText:  "What is 3/4 + 2/3?",
		Options:       []string{"5/7", "17/12", "13/12", "9/7"},
		CorrectAnswer: "17/12",
		Explanation:   "Find a common denominator (12): 3/4=9/12, 2/3=8/12, total=17/12.",
	},
	{
		Subject: "Math", Level: model.P4, Topic: "Fractions",
		QuestionText:  "Which fraction is larger: 2/3 or 3/4?",
		Options:       []string{"2/3", "3/4", "They are equal", "Cannot compare"},
		CorrectAnswer: "3/4",
		Explanation:   "Convert to common denominator: 2/3=8/12, 3/4=9/12. Since 9>8, 3/4 is larger.",
	},
	{
		Subject: "Math", Level: model.P4, Topic: "Decimals",
		QuestionText:  "What is 0.5 + 0.3?",
		Options:       []string{"0.8", "0.15", "0.53", "0.35"},
		CorrectAnswer: "0.8",
		Explanation:   "Add decimals: 0.5 + 0.3 = 0.8",
	},
	{
		Subject: "Math", Level: model.P5, Topic: "Fractions",
		QuestionText:  "What is 2/3 × 3/4?",
		Options:       []string{"6/12", "5/7", "6/7", "1/2"},
		CorrectAnswer: "6/12",
		Explanation:   "Multiply numerators: 2×3=6. Multiply denominators: 3×4=12. Simplify: 6/12 = 1/2.",
	},
	{
		Subject: "Math", Level: model.P6, Topic: "Fractions",
		QuestionText:  "What is 5/6 ÷ 2/3?",
		Options:       []string{"10/18", "15/12", "5/4", "3/4"},
		CorrectAnswer: "5/4",
		Explanation:   "To divide fractions, multiply by the reciprocal: 5/6 × 3/2 = 15/12 = 5/4.",
	},
}
