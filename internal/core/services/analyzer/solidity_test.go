package analyzer

import (
	"testing"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContract = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.19;

contract Vault is Ownable, ReentrancyGuard {
    uint256 public totalDeposits;
    address owner;

    function deposit() external payable {
        totalDeposits += msg.value;
    }

    function balanceOf(address who) public view returns (uint256) {
        return deposits[who];
    }
}`

func TestExtractContractInfo(t *testing.T) {
	info := ExtractContractInfo(sampleContract)

	assert.Equal(t, "MIT", info.License)
	assert.Equal(t, "^0.8.19", info.SolidityVersion)
	require.Len(t, info.Contracts, 1)

	c := info.Contracts[0]
	assert.Equal(t, "Vault", c.Name)
	assert.Equal(t, []string{"Ownable", "ReentrancyGuard"}, c.Inheritance)

	require.Len(t, c.Functions, 2)
	assert.Equal(t, "deposit", c.Functions[0].Name)
	assert.Equal(t, "external", c.Functions[0].Visibility)
	assert.Equal(t, "balanceOf", c.Functions[1].Name)
	assert.Equal(t, "public", c.Functions[1].Visibility)
	assert.Equal(t, "view", c.Functions[1].Mutability)

	require.NotEmpty(t, c.StateVariables)
	assert.Equal(t, "totalDeposits", c.StateVariables[0].Name)
	assert.Equal(t, "uint256", c.StateVariables[0].Type)
}

func TestExtractContractInfoEmptySource(t *testing.T) {
	info := ExtractContractInfo("not solidity at all")
	assert.Empty(t, info.Contracts)
	assert.Empty(t, info.License)
}

func findByTitle(findings []domain.Finding, title string) *domain.Finding {
	for i := range findings {
		if findings[i].Title == title {
			return &findings[i]
		}
	}
	return nil
}

func TestCheckTxOrigin(t *testing.T) {
	findings := CheckCommonVulnerabilities(`
		function withdraw() public {
			require(tx.origin == owner);
		}`)

	f := findByTitle(findings, "Use of tx.origin for Authentication")
	require.NotNil(t, f)
	assert.Equal(t, domain.SeverityMedium, f.Severity)
}

func TestCheckReentrancy(t *testing.T) {
	vulnerable := `
		function withdraw(uint amount) public {
			require(address(this).balance >= amount);
			msg.sender.call{value: amount}("");
		}`

	f := findByTitle(CheckCommonVulnerabilities(vulnerable), "Potential Reentrancy Vulnerability")
	require.NotNil(t, f)
	assert.Equal(t, domain.SeverityHigh, f.Severity)

	// A guard suppresses the detector.
	guarded := vulnerable + "\n// uses nonReentrant modifier"
	assert.Nil(t, findByTitle(CheckCommonVulnerabilities(guarded), "Potential Reentrancy Vulnerability"))
}

func TestCheckSelfdestruct(t *testing.T) {
	findings := CheckCommonVulnerabilities(`function kill() public { selfdestruct(payable(owner)); }`)
	assert.NotNil(t, findByTitle(findings, "Use of selfdestruct"))
}

func TestCheckWeakRandomness(t *testing.T) {
	findings := CheckCommonVulnerabilities(`uint seed = block.timestamp;`)
	assert.NotNil(t, findByTitle(findings, "Weak Randomness Source"))
}

func TestCheckCleanSourceIsQuiet(t *testing.T) {
	findings := CheckCommonVulnerabilities(`
		function add(uint a, uint b) public pure returns (uint) {
			return a + b;
		}`)
	assert.Empty(t, findings)
}
