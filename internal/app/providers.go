package app

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studytrack/internal/adapter/repository"
	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/infrastructure/config"
	"github.com/eslsoft/studytrack/internal/usecase"
	"github.com/eslsoft/studytrack/internal/usecase/backup"
)

func provideFieldLogger(logger *logrus.Logger) logrus.FieldLogger {
	return logger
}

func provideLocation(cfg *config.Config) (*time.Location, error) {
	return cfg.Location()
}

func provideUsageLedger(ctx context.Context, db *sqlx.DB, loc *time.Location) (*repository.UsageLedger, error) {
	return repository.NewUsageLedger(ctx, db, loc)
}

func provideHomeOptions(cfg *config.Config, loc *time.Location) usecase.HomeOptions {
	return usecase.HomeOptions{RecentLimit: cfg.RecentLimit(), Location: loc}
}

func provideProgressUsecase(stores *repository.Stores, logger logrus.FieldLogger) usecase.ProgressUsecase {
	return usecase.NewProgressUsecase(stores.Subjects, stores.Chapters, stores.Flashcards, stores.Quizzes, stores.QuizResults, logger)
}

func provideActivityUsecase(stores *repository.Stores, logger logrus.FieldLogger) usecase.ActivityUsecase {
	return usecase.NewActivityUsecase(stores.Activities, logger)
}

func provideHomeUsecase(
	ledger *repository.UsageLedger,
	stores *repository.Stores,
	progress usecase.ProgressUsecase,
	feed usecase.ActivityUsecase,
	opts usecase.HomeOptions,
	logger logrus.FieldLogger,
) usecase.HomeUsecase {
	return usecase.NewHomeUsecase(ledger, stores.Activities, stores.DailyProgress, progress, feed, opts, logger)
}

func provideCatalogUsecase(stores *repository.Stores, feed usecase.ActivityUsecase, logger logrus.FieldLogger) usecase.CatalogUsecase {
	return usecase.NewCatalogUsecase(usecase.CatalogRepositories{
		Subjects:      stores.Subjects,
		Chapters:      stores.Chapters,
		Summaries:     stores.Summaries,
		Flashcards:    stores.Flashcards,
		ActiveRecalls: stores.ActiveRecalls,
		Quizzes:       stores.Quizzes,
		Questions:     stores.Questions,
		QuizResults:   stores.QuizResults,
	}, feed, logger)
}

// provideBackupService exposes every entity repository as a snapshot table.
func provideBackupService(stores *repository.Stores) (*backup.Service, error) {
	return backup.NewService(
		backup.StoreTable[entity.Subject]("subjects", stores.Subjects),
		backup.StoreTable[entity.Chapter]("chapters", stores.Chapters),
		backup.StoreTable[entity.ChapterSummary]("chapter_summaries", stores.Summaries),
		backup.StoreTable[entity.Flashcard]("flashcards", stores.Flashcards),
		backup.StoreTable[entity.ActiveRecallQuestion]("active_recall_questions", stores.ActiveRecalls),
		backup.StoreTable[entity.Quiz]("quizzes", stores.Quizzes),
		backup.StoreTable[entity.Question]("quiz_questions", stores.Questions),
		backup.StoreTable[entity.QuizResult]("quiz_results", stores.QuizResults),
		backup.StoreTable[entity.Activity]("activities", stores.Activities),
		backup.StoreTable[entity.DailyProgress]("daily_progress", stores.DailyProgress),
	)
}
