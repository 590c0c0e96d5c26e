package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/enum"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/validator"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"gorm.io/gorm"
)

type TaskDomain interface {
	Create(context.Context, *model.CreateTaskRequest) (*model.CreateTaskResponse, error)
	Get(context.Context, *model.GetTaskRequest) (*model.GetTaskResponse, error)
	GetList(context.Context, *model.GetListTaskRequest) (*model.GetListTaskResponse, error)
	GetListActive(context.Context, *model.GetListActiveTaskRequest) (*model.GetListActiveTaskResponse, error)
	Update(context.Context, *model.UpdateTaskRequest) (*model.UpdateTaskResponse, error)
}

type taskDomain struct {
	taskRepo           repository.TaskRepository
	globalRoleVerifier *common.GlobalRoleVerifier
}

func NewTaskDomain(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *taskDomain {
	return &taskDomain{
		taskRepo:           taskRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *taskDomain) Create(
	ctx context.Context, req *model.CreateTaskRequest,
) (*model.CreateTaskResponse, error) {
	if err := verifyRole(ctx, d.globalRoleVerifier, entity.AdminRoles...); err != nil {
		return nil, err
	}

	if err := validator.Struct(req); err != nil {
		return nil, errorx.New(errorx.BadRequest, "%s", err.Error())
	}

	taskType, err := enum.ToEnum[entity.TaskType](req.Type)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid task type: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid task type")
	}

	evidenceType := entity.EvidenceText
	if req.EvidenceType != "" {
		evidenceType, err = enum.ToEnum[entity.EvidenceType](req.EvidenceType)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid evidence type: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid evidence type")
		}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	task := &entity.Task{
		Base:            entity.Base{ID: uuid.NewString()},
		Title:           req.Title,
		Type:            taskType,
		Description:     req.Description,
		Instructions:    req.Instructions,
		Points:          req.Points,
		Active:          active,
		EvidenceType:    evidenceType,
		CompletedAmount: req.CompletedAmount,
	}

	if err := d.taskRepo.Create(ctx, entity.AddedCatalog, task); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create task: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.CreateTaskResponse(model.ConvertTask(task))
	return &resp, nil
}

func (d *taskDomain) Get(ctx context.Context, req *model.GetTaskRequest) (*model.GetTaskResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing task id")
	}

	task, _, err := d.taskRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get task: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetTaskResponse(model.ConvertTask(task))
	return &resp, nil
}

func (d *taskDomain) GetList(
	ctx context.Context, req *model.GetListTaskRequest,
) (*model.GetListTaskResponse, error) {
	if err := verifyRole(ctx, d.globalRoleVerifier, entity.AdminRoles...); err != nil {
		return nil, err
	}

	tasks, err := d.getMergedTasks(ctx, false)
	if err != nil {
		return nil, err
	}

	return &model.GetListTaskResponse{Tasks: tasks}, nil
}

func (d *taskDomain) GetListActive(
	ctx context.Context, req *model.GetListActiveTaskRequest,
) (*model.GetListActiveTaskResponse, error) {
	tasks, err := d.getMergedTasks(ctx, true)
	if err != nil {
		return nil, err
	}

	return &model.GetListActiveTaskResponse{Tasks: tasks}, nil
}

func (d *taskDomain) getMergedTasks(ctx context.Context, onlyActive bool) ([]model.Task, error) {
	tasks, err := d.taskRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of tasks: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Task{}
	for i := range tasks {
		if onlyActive && !tasks[i].Active {
			continue
		}

		result = append(result, model.ConvertTask(&tasks[i]))
	}

	return result, nil
}

func (d *taskDomain) Update(
	ctx context.Context, req *model.UpdateTaskRequest,
) (*model.UpdateTaskResponse, error) {
	if err := verifyRole(ctx, d.globalRoleVerifier, entity.AdminRoles...); err != nil {
		return nil, err
	}

	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing task id")
	}

	_, source, err := d.taskRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get task: %v", err)
		return nil, errorx.Unknown
	}

	changes := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, errorx.New(errorx.BadRequest, "Title cannot be empty")
		}
		changes["title"] = *req.Title
	}

	if req.Type != nil {
		taskType, err := enum.ToEnum[entity.TaskType](*req.Type)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid task type: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid task type")
		}
		changes["type"] = taskType
	}

	if req.Description != nil {
		if *req.Description == "" {
			return nil, errorx.New(errorx.BadRequest, "Description cannot be empty")
		}
		changes["description"] = *req.Description
	}

	if req.Instructions != nil {
		changes["instructions"] = *req.Instructions
	}

	if req.Points != nil {
		if *req.Points <= 0 {
			return nil, errorx.New(errorx.BadRequest, "Points must be positive")
		}
		changes["points"] = *req.Points
	}

	if req.Active != nil {
		changes["active"] = *req.Active
	}

	if req.EvidenceType != nil {
		evidenceType, err := enum.ToEnum[entity.EvidenceType](*req.EvidenceType)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid evidence type: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid evidence type")
		}
		changes["evidence_type"] = evidenceType
	}

	if req.CompletedAmount != nil {
		if *req.CompletedAmount < 0 {
			return nil, errorx.New(errorx.BadRequest, "Completed amount cannot be negative")
		}
		changes["completed_amount"] = *req.CompletedAmount
	}

	if len(changes) > 0 {
		if err := d.taskRepo.UpdateByID(ctx, source, req.ID, changes); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update task: %v", err)
			return nil, errorx.Unknown
		}
	}

	task, _, err := d.taskRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get updated task: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.UpdateTaskResponse(model.ConvertTask(task))
	return &resp, nil
}
