// Package dto provides data transfer objects for the task HTTP layer.
package dto

import (
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/task/domain"
	"github.com/allisson/taskhub/internal/task/usecase"
)

// ToCreateTaskInput converts a CreateTaskRequest DTO to a CreateTaskInput use case input
func ToCreateTaskInput(req CreateTaskRequest) usecase.CreateTaskInput {
	return usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
	}
}

// ToUpdateTaskInput converts an UpdateTaskRequest DTO to an UpdateTaskInput use case input
func ToUpdateTaskInput(req UpdateTaskRequest) usecase.UpdateTaskInput {
	return usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
	}
}

// ToTaskResponse converts a domain Task model to a TaskResponse DTO
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status.String(),
		AssigneeID:  task.AssigneeID.String(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToListTasksResponse converts a page of tasks plus metadata to a ListTasksResponse DTO
func ToListTasksResponse(tasks []*domain.Task, meta pagination.Meta) ListTasksResponse {
	data := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		data = append(data, ToTaskResponse(task))
	}
	return ListTasksResponse{Data: data, Meta: meta}
}
