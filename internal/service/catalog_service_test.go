package service

import (
	"context"
	"placement_prep_backend/internal/model"
	"placement_prep_backend/internal/repository"
	"placement_prep_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBCatalogPrefersRequestedType(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewResourceRepository(db)
	for _, res := range []model.LearningResource{
		{Skill: "sql", Type: model.ResourceArticle, Title: "SQL Complete Course", Enabled: true},
		{Skill: "sql", Type: model.ResourcePractice, Title: "SQLZoo", Enabled: true},
	} {
		require.NoError(t, repo.Create(&res))
	}

	catalog := NewDBCatalog(repo)
	res, err := catalog.Lookup(context.Background(), "sql", model.ResourcePractice)
	require.NoError(t, err)
	assert.Equal(t, "SQLZoo", res.Title)

	// No video for sql: fall back to the first entry for the skill.
	res, err = catalog.Lookup(context.Background(), "sql", model.ResourceVideo)
	require.NoError(t, err)
	assert.Equal(t, "SQL Complete Course", res.Title)
}

func TestDBCatalogNormalizesSkill(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewResourceRepository(db)
	for _, res := range []model.LearningResource{
		{Skill: "sql", Type: model.ResourceArticle, Title: "SQL Complete Course", Enabled: true},
		{Skill: "system design", Type: model.ResourceVideo, Title: "System Design Primer", Enabled: true},
	} {
		require.NoError(t, repo.Create(&res))
	}

	catalog := NewDBCatalog(repo)

	// Backlogs arrive with human casing and spacing; the catalog keys are
	// canonical lower-case.
	res, err := catalog.Lookup(context.Background(), "SQL", model.ResourceArticle)
	require.NoError(t, err)
	assert.Equal(t, "SQL Complete Course", res.Title)

	res, err = catalog.Lookup(context.Background(), "  System  Design ", model.ResourceVideo)
	require.NoError(t, err)
	assert.Equal(t, "System Design Primer", res.Title)
}

func TestDBCatalogMissAndDisabled(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewResourceRepository(db)
	catalog := NewDBCatalog(repo)

	_, err := catalog.Lookup(context.Background(), "cobol", model.ResourceVideo)
	assert.ErrorIs(t, err, util.ErrCatalogMiss)

	disabled := model.LearningResource{Skill: "cobol", Type: model.ResourceVideo, Title: "Legacy", Enabled: true}
	require.NoError(t, db.Create(&disabled).Error)
	require.NoError(t, db.Model(&disabled).Update("enabled", false).Error)
	_, err = catalog.Lookup(context.Background(), "cobol", model.ResourceVideo)
	assert.ErrorIs(t, err, util.ErrCatalogMiss)
}
