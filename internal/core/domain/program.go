package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyProgramName = errors.New("program name cannot be empty")
	ErrInvalidAddress   = errors.New("invalid contract address")
	ErrProgramNotFound  = errors.New("program not found")
)

// Program represents a smart contract audit engagement: one target contract
// (or protocol) with its tasks, findings and analyses attached.
type Program struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	ContractAddress string    `json:"contract_address"`
	Blockchain      string    `json:"blockchain"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewProgram creates a validated audit program.
func NewProgram(name, description, contractAddress, blockchain string) (*Program, error) {
	if name == "" {
		return nil, ErrEmptyProgramName
	}
	if contractAddress != "" && !IsValidContractAddress(contractAddress) {
		return nil, ErrInvalidAddress
	}

	now := time.Now().UTC()
	return &Program{
		Name:            name,
		Description:     description,
		ContractAddress: contractAddress,
		Blockchain:      blockchain,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
