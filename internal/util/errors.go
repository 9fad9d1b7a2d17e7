package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrUnsupportedDuration = errors.New("duration_weeks is not in the supported set")
	ErrInvalidDailyBudget  = errors.New("daily_budget_minutes must be positive")
	ErrInvalidBacklogEntry = errors.New("malformed skill backlog entry")
	ErrEmptyBacklog        = errors.New("no skill backlog found for student")

	ErrRoadmapNotFound  = errors.New("roadmap not found")
	ErrNoActiveRoadmap  = errors.New("no active roadmap for student")
	ErrTaskNotFound     = errors.New("task not found in roadmap")
	ErrWeekOutOfRange   = errors.New("week number out of range")
	ErrNoDayForDate     = errors.New("date outside roadmap range")
	ErrResourceNotFound = errors.New("learning resource not found")

	ErrCatalogMiss = errors.New("no catalog resource for skill")
)
