package entity

import "github.com/questx-lab/taskreward/pkg/enum"

type TaskType string

var (
	TaskYoutube      = enum.New(TaskType("youtube"))
	TaskSocialMedia  = enum.New(TaskType("social_media"))
	TaskWebsiteVisit = enum.New(TaskType("website_visit"))
	TaskSurvey       = enum.New(TaskType("survey"))
)

type EvidenceType string

var (
	EvidenceText  = enum.New(EvidenceType("text"))
	EvidenceURL   = enum.New(EvidenceType("url"))
	EvidenceImage = enum.New(EvidenceType("image"))
)

type TaskSource string

var (
	BaseCatalog  = enum.New(TaskSource("base"))
	AddedCatalog = enum.New(TaskSource("added"))
)

type Task struct {
	Base

	Title           string
	Type            TaskType
	Description     string `gorm:"type:text"`
	Instructions    string `gorm:"type:text"`
	Points          int64
	Active          bool
	EvidenceType    EvidenceType
	CompletedAmount int
}

// AddedTask is a task of the secondary catalog. A record here overrides the
// base catalog record with the same id.
type AddedTask struct {
	Task
}

func (AddedTask) TableName() string {
	return "added_tasks"
}
