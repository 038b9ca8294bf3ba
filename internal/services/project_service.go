package services

import (
	"context"

	"timetrack-backend/internal/models"
)

// ProjectService manages projects under a client, including the hourly rate
// used when deriving invoice amounts.
type ProjectService struct {
	projects ProjectStore
	clients  ClientStore
}

func NewProjectService(projects ProjectStore, clients ClientStore) *ProjectService {
	return &ProjectService{projects: projects, clients: clients}
}

func (s *ProjectService) Create(ctx context.Context, userID int, req *models.CreateProjectRequest) (*models.Project, error) {
	if req.Name == "" {
		return nil, validationf("project name is required")
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return nil, validationf("hourly rate must not be negative")
	}
	client, err := s.clients.Get(ctx, req.ClientID)
	if err != nil {
		return nil, mapNotFound(err, "client", req.ClientID)
	}
	if client.UserID != userID {
		return nil, &NotFoundError{Entity: "client", ID: req.ClientID}
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		UserID:      userID,
		HourlyRate:  req.HourlyRate,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, userID, id int) (*models.Project, error) {
	return s.getOwned(ctx, userID, id)
}

func (s *ProjectService) List(ctx context.Context, userID int) ([]models.Project, error) {
	return s.projects.List(ctx, userID)
}

func (s *ProjectService) Update(ctx context.Context, userID, id int, req *models.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, validationf("project name is required")
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, validationf("hourly rate must not be negative")
		}
		project.HourlyRate = req.HourlyRate
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, id int) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}

func (s *ProjectService) getOwned(ctx context.Context, userID, id int) (*models.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "project", id)
	}
	if project.UserID != userID {
		return nil, &NotFoundError{Entity: "project", ID: id}
	}
	return project, nil
}
