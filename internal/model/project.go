package model

import "time"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planejamento"
	ProjectInProgress ProjectStatus = "em_andamento"
	ProjectDone       ProjectStatus = "concluido"
	ProjectCancelled  ProjectStatus = "cancelado"
)

// ProjectStatuses lists every valid status in display order.
var ProjectStatuses = []ProjectStatus{ProjectPlanning, ProjectInProgress, ProjectDone, ProjectCancelled}

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	for _, known := range ProjectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Project represents a row of the projetos table.
type Project struct {
	ID              int64         `json:"id"`
	Nome            string        `json:"nome"`
	Descricao       string        `json:"descricao"`
	Status          ProjectStatus `json:"status"`
	DataInicio      time.Time     `json:"data_inicio"`
	DataFimPrevista *time.Time    `json:"data_fim_prevista,omitempty"`
	Responsavel     string        `json:"responsavel"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ProjectFilter narrows a project listing.
type ProjectFilter struct {
	Status ProjectStatus
	Limit  int
	Offset int
}

// ProjectPage is one page of a project listing.
type ProjectPage struct {
	Items []Project `json:"items"`
	Total int64     `json:"total"`
	Limit int       `json:"limit"`
}
