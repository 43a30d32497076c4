package model

import "time"

// DashboardStats is the summary shown on the home dashboard.
type DashboardStats struct {
	Role               Role             `json:"role"`
	TotalBeneficiarias int64            `json:"total_beneficiarias"`
	TotalProjetos      int64            `json:"total_projetos"`
	ProjetosAtivos     int64            `json:"projetos_ativos"`
	ProjetosPorStatus  map[string]int64 `json:"projetos_por_status,omitempty"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// QuickAccessItem is a dashboard shortcut.
type QuickAccessItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}
