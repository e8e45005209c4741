package domain

import "time"

// AnalysisType selects the prompt template used for an AI analysis run.
type AnalysisType string

const (
	AnalysisSecurity AnalysisType = "security"
	AnalysisGas      AnalysisType = "gas"
	AnalysisLogic    AnalysisType = "logic"
	AnalysisGeneral  AnalysisType = "general"
)

// IsValid reports whether the analysis type is recognized.
func (t AnalysisType) IsValid() bool {
	switch t {
	case AnalysisSecurity, AnalysisGas, AnalysisLogic, AnalysisGeneral:
		return true
	}
	return false
}

// Analysis is a stored AI-assisted analysis result for a program's contract.
type Analysis struct {
	ID           int64        `json:"id"`
	ProgramID    int64        `json:"program_id"`
	ContractCode string       `json:"contract_code"`
	Result       string       `json:"analysis_result"`
	Type         AnalysisType `json:"type"`
	Model        string       `json:"model,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ContractInfo is the structural summary extracted from Solidity source.
type ContractInfo struct {
	License         string     `json:"license,omitempty"`
	SolidityVersion string     `json:"solidity_version,omitempty"`
	Contracts       []Contract `json:"contracts"`
}

// Contract describes one contract declaration.
type Contract struct {
	Name           string          `json:"name"`
	Inheritance    []string        `json:"inheritance,omitempty"`
	Functions      []Function      `json:"functions"`
	StateVariables []StateVariable `json:"state_variables"`
}

// Function describes a function signature found in a contract body.
type Function struct {
	Name       string `json:"name"`
	Parameters string `json:"parameters"`
	Visibility string `json:"visibility"` // external, public, internal, private
	Mutability string `json:"mutability"` // view, pure, or empty
}

// StateVariable describes a state variable declaration.
type StateVariable struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
