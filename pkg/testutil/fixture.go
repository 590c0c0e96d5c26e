package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/repository"
)

var (
	// Users
	User1 = &entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "Alice",
		Role: entity.RoleUser,
	}

	User2 = &entity.User{
		Base:        entity.Base{ID: "user2"},
		Name:        "Bob",
		Role:        entity.RoleUser,
		Points:      80,
		TotalEarned: 80,
	}

	User3 = &entity.User{
		Base:        entity.Base{ID: "user3"},
		Name:        "Carol",
		Role:        entity.RoleUser,
		Points:      150,
		TotalEarned: 200,
	}

	UserQA = &entity.User{
		Base: entity.Base{ID: "user_qa"},
		Name: "Quinn",
		Role: entity.RoleQA,
	}

	UserAdmin = &entity.User{
		Base: entity.Base{ID: "user_admin"},
		Name: "Ada",
		Role: entity.RoleAdmin,
	}

	Users = []*entity.User{User1, User2, User3, UserQA, UserAdmin}

	// Base catalog
	Task1 = &entity.Task{
		Base:         entity.Base{ID: "task1", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Title:        "Watch the launch video",
		Type:         entity.TaskYoutube,
		Description:  "Watch our launch video until the end",
		Instructions: "Paste the secret word shown at the end",
		Points:       50,
		Active:       true,
		EvidenceType: entity.EvidenceText,
	}

	Task2 = &entity.Task{
		Base:         entity.Base{ID: "task2", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		Title:        "Visit the website",
		Type:         entity.TaskWebsiteVisit,
		Description:  "Visit the landing page",
		Points:       30,
		Active:       true,
		EvidenceType: entity.EvidenceURL,
	}

	Task3 = &entity.Task{
		Base:         entity.Base{ID: "task3", CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		Title:        "Old survey",
		Type:         entity.TaskSurvey,
		Description:  "This survey is closed",
		Points:       20,
		Active:       false,
		EvidenceType: entity.EvidenceText,
	}

	BaseTasks = []*entity.Task{Task1, Task2, Task3}

	// Added catalog
	Task4 = &entity.Task{
		Base:         entity.Base{ID: "task4", CreatedAt: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)},
		Title:        "Share our post",
		Type:         entity.TaskSocialMedia,
		Description:  "Share the pinned post",
		Points:       40,
		Active:       true,
		EvidenceType: entity.EvidenceImage,
	}

	AddedTasks = []*entity.Task{Task4}

	// Submissions
	Submission1 = &entity.Submission{
		Base:         entity.Base{ID: "submission1"},
		TaskID:       Task2.ID,
		UserID:       User1.ID,
		UserName:     User1.Name,
		TaskTitle:    Task2.Title,
		Points:       Task2.Points,
		EvidenceLink: "https://example.com/visited",
		Status:       entity.SubmissionPending,
		SubmittedAt:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	Submission2 = &entity.Submission{
		Base:         entity.Base{ID: "submission2"},
		TaskID:       Task1.ID,
		UserID:       User2.ID,
		UserName:     User2.Name,
		TaskTitle:    Task1.Title,
		Points:       Task1.Points,
		EvidenceText: "rocket",
		Status:       entity.SubmissionApproved,
		QAComment:    "ok",
		ReviewerID:   UserQA.ID,
		SubmittedAt:  time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		ReviewedAt:   sql.NullTime{Valid: true, Time: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
	}

	Submission3 = &entity.Submission{
		Base:         entity.Base{ID: "submission3"},
		TaskID:       Task2.ID,
		UserID:       User3.ID,
		UserName:     User3.Name,
		TaskTitle:    Task2.Title,
		Points:       Task2.Points,
		EvidenceLink: "https://example.com/wrong",
		Status:       entity.SubmissionRejected,
		QAComment:    "wrong link",
		ReviewerID:   UserQA.ID,
		SubmittedAt:  time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC),
		ReviewedAt:   sql.NullTime{Valid: true, Time: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)},
	}

	Submissions = []*entity.Submission{Submission1, Submission2, Submission3}
)

// CreateFixtureDb inserts the fixture records into the database of ctx.
func CreateFixtureDb(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, u := range Users {
		user := *u
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}

	taskRepo := repository.NewTaskRepository()
	for _, t := range BaseTasks {
		task := *t
		if err := taskRepo.Create(ctx, entity.BaseCatalog, &task); err != nil {
			panic(err)
		}
	}

	for _, t := range AddedTasks {
		task := *t
		if err := taskRepo.Create(ctx, entity.AddedCatalog, &task); err != nil {
			panic(err)
		}
	}

	submissionRepo := repository.NewSubmissionRepository()
	for _, s := range Submissions {
		submission := *s
		if err := submissionRepo.Create(ctx, &submission); err != nil {
			panic(err)
		}
	}
}
