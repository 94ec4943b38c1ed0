package memory

import (
	"context"
	"sort"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"
)

type ProjectRepository struct {
	s *Store
}

var _ interfaces.IProjectRepository = (*ProjectRepository)(nil)

func (r *ProjectRepository) Create(_ context.Context, p entities.Project) (entities.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; ok {
		return entities.Project{}, &entities.AlreadyExistsError{Resource: "project", ID: p.ID}
	}
	p.Version = 0
	return cloneProject(r.s.putProject(p)), nil
}

func (r *ProjectRepository) GetByID(_ context.Context, id string) (entities.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneProject(r.s.projects[id]), nil
}

func (r *ProjectRepository) Update(_ context.Context, p entities.Project) (entities.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkProject(p); err != nil {
		return entities.Project{}, err
	}
	return cloneProject(r.s.putProject(p)), nil
}

func (r *ProjectRepository) ListByStatus(_ context.Context, statuses ...entities.ProjectStatus) ([]entities.Project, error) {
	want := make(map[entities.ProjectStatus]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.Project, 0)
	for _, p := range r.s.projects {
		if len(want) == 0 || want[p.Status] {
			out = append(out, cloneProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
