package main

import (
	"context"
	"fmt"
	"time"

	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/database"
	"github.com/quizdeck/quizdeck-backend/internal/logger"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/store"
	"github.com/quizdeck/quizdeck-backend/internal/store/postgres"
)

// Seeds the built-in public template library. Safe to run repeatedly: a
// template whose name already exists among pre-made templates is skipped.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.Environment)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	docStore := postgres.New(pool)

	fmt.Println("=== Seeding Pre-Made Templates ===")

	var existing []model.Template
	err = docStore.Query(ctx, store.CollectionTemplates, []store.Filter{
		store.Eq("isPreMade", true),
	}, &existing)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list existing pre-made templates")
	}
	existingNames := make(map[string]bool, len(existing))
	for _, tpl := range existing {
		existingNames[tpl.Name] = true
	}

	created, skipped := 0, 0
	for _, tpl := range preMadeTemplates() {
		if existingNames[tpl.Name] {
			skipped++
			continue
		}
		id, err := docStore.Add(ctx, store.CollectionTemplates, tpl)
		if err != nil {
			log.Fatal().Err(err).Str("name", tpl.Name).Msg("Failed to seed template")
		}
		fmt.Printf("Created %q (%s)\n", tpl.Name, id)
		created++
	}

	fmt.Printf("Done: %d created, %d skipped\n", created, skipped)
}

func preMadeTemplates() []model.Template {
	now := time.Now()

	base := func(name, description, category string, questions []model.Question, tags []string) model.Template {
		return model.Template{
			Name:          name,
			Description:   description,
			Category:      category,
			CreatedBy:     "system",
			CreatedByName: "QuizDeck",
			CreatedAt:     now,
			UpdatedAt:     now,
			Questions:     questions,
			GradingScale:  "traditional",
			PassingGrade:  70,
			TotalPoints:   model.TotalPoints(questions),
			QuestionCount: len(questions),
			IsPublic:      true,
			IsPreMade:     true,
			Tags:          tags,
		}
	}

	mc := func(text string, points int, correct int, options ...string) model.Question {
		return model.Question{
			Text:   text,
			Points: points,
			Variant: model.MultipleChoice{
				Options:      options,
				CorrectIndex: correct,
			},
		}
	}

	enum := func(text string, points int, answer string) model.Question {
		return model.Question{
			Text:    text,
			Points:  points,
			Variant: model.Enumeration{CorrectText: answer},
		}
	}

	return []model.Template{
		base(
			"Basic Arithmetic",
			"Addition, subtraction, multiplication, and division practice.",
			"Mathematics",
			[]model.Question{
				mc("What is 7 + 8?", 1, 2, "13", "14", "15", "16"),
				mc("What is 12 - 5?", 1, 1, "6", "7", "8", "9"),
				mc("What is 6 x 7?", 1, 3, "36", "40", "41", "42"),
				mc("What is 48 / 6?", 1, 0, "8", "7", "9", "6"),
				enum("What is 9 x 9?", 2, "81"),
			},
			[]string{"arithmetic", "practice"},
		),
		base(
			"The Solar System",
			"Planets, moons, and the sun.",
			"Science",
			[]model.Question{
				mc("Which planet is closest to the sun?", 1, 1, "Venus", "Mercury", "Earth", "Mars"),
				mc("How many planets are in the solar system?", 1, 2, "7", "9", "8", "10"),
				enum("Which planet is known as the Red Planet?", 1, "Mars"),
				enum("What is the largest planet?", 1, "Jupiter"),
			},
			[]string{"space", "astronomy"},
		),
		base(
			"World Capitals",
			"Match countries to their capital cities.",
			"Geography",
			[]model.Question{
				enum("What is the capital of France?", 1, "Paris"),
				enum("What is the capital of Japan?", 1, "Tokyo"),
				mc("What is the capital of Australia?", 2, 2, "Sydney", "Melbourne", "Canberra", "Perth"),
				mc("What is the capital of Canada?", 2, 1, "Toronto", "Ottawa", "Vancouver", "Montreal"),
			},
			[]string{"capitals", "countries"},
		),
		base(
			"Parts of Speech",
			"Identify nouns, verbs, adjectives, and adverbs.",
			"English/Language Arts",
			[]model.Question{
				mc("In \"The dog barked loudly\", what part of speech is \"loudly\"?", 1, 3, "Noun", "Verb", "Adjective", "Adverb"),
				mc("Which word is a noun?", 1, 0, "Happiness", "Quickly", "Run", "Bright"),
				enum("What part of speech describes an action?", 1, "verb"),
			},
			[]string{"grammar"},
		),
		base(
			"Programming Fundamentals",
			"Variables, loops, and conditionals.",
			"Computer Science",
			[]model.Question{
				mc("Which structure repeats a block of code?", 1, 1, "Conditional", "Loop", "Variable", "Function"),
				mc("What does a boolean hold?", 1, 2, "Text", "Numbers", "True or false", "Lists"),
				enum("What do you call a named storage location for a value?", 1, "variable"),
				enum("What keyword commonly starts a conditional statement?", 1, "if"),
			},
			[]string{"programming", "basics"},
		),
	}
}
