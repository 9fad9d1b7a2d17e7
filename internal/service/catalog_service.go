package service

import (
	"context"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/repository"
	"placement_prep_backend/internal/util"
)

// CatalogAdapter is the injected read-only lookup over the learning catalog.
// Implementations must honor ctx deadlines; a timeout surfaces as
// util.ErrCatalogMiss and the assembler recovers with a placeholder.
type CatalogAdapter interface {
	Lookup(ctx context.Context, skill string, preferred model.ResourceType) (*model.LearningResource, error)
}

// DBCatalog serves catalog lookups from the learning_resources table.
type DBCatalog struct {
	Repo *repository.ResourceRepository
}

func NewDBCatalog(repo *repository.ResourceRepository) *DBCatalog {
	return &DBCatalog{Repo: repo}
}

func (c *DBCatalog) Lookup(ctx context.Context, skill string, preferred model.ResourceType) (*model.LearningResource, error) {
	rs, err := c.Repo.FindBySkill(ctx, model.NormalizeSkill(skill))
	if err != nil || len(rs) == 0 {
		return nil, util.ErrCatalogMiss
	}
	for i := range rs {
		if rs[i].Type == preferred {
			return &rs[i], nil
		}
	}
	return &rs[0], nil
}
