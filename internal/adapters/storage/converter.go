package storage

import (
	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

// toProgramModel converts a domain entity to its database model.
func toProgramModel(p domain.Program) ProgramModel {
	return ProgramModel{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		ContractAddress: p.ContractAddress,
		Blockchain:      p.Blockchain,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProgramDomain(m ProgramModel) *domain.Program {
	return &domain.Program{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		ContractAddress: m.ContractAddress,
		Blockchain:      m.Blockchain,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toTaskModel(t domain.Task) TaskModel {
	return TaskModel{
		ID:            t.ID,
		ProgramID:     t.ProgramID,
		Title:         t.Title,
		Description:   t.Description,
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		DependencyIDs: t.DependencyIDs,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func toTaskDomain(m TaskModel) *domain.Task {
	return &domain.Task{
		ID:            m.ID,
		ProgramID:     m.ProgramID,
		Title:         m.Title,
		Description:   m.Description,
		Priority:      domain.TaskPriority(m.Priority),
		Status:        domain.TaskStatus(m.Status),
		DependencyIDs: m.DependencyIDs,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toFindingModel(f domain.Finding) FindingModel {
	return FindingModel{
		ID:          f.ID,
		ProgramID:   f.ProgramID,
		TaskID:      f.TaskID,
		Title:       f.Title,
		Description: f.Description,
		Severity:    string(f.Severity),
		CVSSScore:   f.CVSSScore,
		CVSSVector:  f.CVSSVector,
		Status:      string(f.Status),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func toFindingDomain(m FindingModel) *domain.Finding {
	return &domain.Finding{
		ID:          m.ID,
		ProgramID:   m.ProgramID,
		TaskID:      m.TaskID,
		Title:       m.Title,
		Description: m.Description,
		Severity:    domain.FindingSeverity(m.Severity),
		CVSSScore:   m.CVSSScore,
		CVSSVector:  m.CVSSVector,
		Status:      domain.FindingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toWhitelistModel(c domain.WhitelistContact) WhitelistModel {
	return WhitelistModel{
		ID:           c.ID,
		Email:        c.Email,
		Name:         c.Name,
		Organization: c.Organization,
		SignupDate:   c.SignupDate,
	}
}

func toWhitelistDomain(m WhitelistModel) *domain.WhitelistContact {
	return &domain.WhitelistContact{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		Organization: m.Organization,
		SignupDate:   m.SignupDate,
	}
}

func toAnalysisModel(a domain.Analysis) AnalysisModel {
	return AnalysisModel{
		ID:           a.ID,
		ProgramID:    a.ProgramID,
		ContractCode: a.ContractCode,
		Result:       a.Result,
		Type:         string(a.Type),
		Model:        a.Model,
		CreatedAt:    a.CreatedAt,
	}
}

func toAnalysisDomain(m AnalysisModel) *domain.Analysis {
	return &domain.Analysis{
		ID:           m.ID,
		ProgramID:    m.ProgramID,
		ContractCode: m.ContractCode,
		Result:       m.Result,
		Type:         domain.AnalysisType(m.Type),
		Model:        m.Model,
		CreatedAt:    m.CreatedAt,
	}
}
