package triage

import (
	"fmt"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

const securityAuditPrompt = `You are an expert smart contract security auditor. Please analyze the following Solidity smart contract code for security vulnerabilities.

For each vulnerability found, please:
1. Describe the vulnerability
2. Rate its severity (Critical, High, Medium, Low, or Informational)
3. Explain the potential impact
4. Suggest a remediation approach with a code example

Also, provide a summary of the contract's overall security posture and identify any high-risk areas that require special attention.

Here is the smart contract code:

` + "```solidity\n%s\n```\n"

const gasOptimizationPrompt = `You are an expert smart contract gas optimization specialist. Please analyze the following Solidity smart contract code for gas inefficiencies.

For each gas inefficiency found, please:
1. Describe the inefficiency
2. Estimate the potential gas savings
3. Explain why it's inefficient
4. Suggest an optimized implementation with a code example

Also, provide a summary of the contract's overall gas efficiency and identify any particularly expensive operations that could be optimized.

Here is the smart contract code:

` + "```solidity\n%s\n```\n"

const logicReviewPrompt = `You are an expert smart contract logic reviewer. Please analyze the following Solidity smart contract code for logical issues or bugs.

For each logical issue found, please:
1. Describe the issue
2. Rate its severity (Critical, High, Medium, Low, or Informational)
3. Explain the potential impact on business operations
4. Suggest a fix with a code example

Also, provide a summary of the contract's overall logical correctness and identify any areas where the implementation might not match the likely intended behavior.

Here is the smart contract code:

` + "```solidity\n%s\n```\n"

const generalAnalysisPrompt = `You are an expert smart contract auditor. Please analyze the following Solidity smart contract code comprehensively, covering:

1. Security vulnerabilities
2. Gas optimization opportunities
3. Code quality and maintainability issues
4. Logical correctness
5. Compliance with best practices

For each issue found, please:
1. Describe the issue
2. Rate its severity or importance
3. Explain the potential impact
4. Suggest improvements with code examples where applicable

Also, provide a summary of the contract's overall quality and identify strengths and weaknesses.

Here is the smart contract code:

` + "```solidity\n%s\n```\n"

const triagePrompt = `You are an expert smart contract security auditor. Please analyze the following vulnerability description and help triage it:

1. Summarize the vulnerability in your own words
2. Classify it according to known vulnerability types (e.g., reentrancy, integer overflow)
3. Estimate its severity (Critical, High, Medium, Low, or Informational)
4. Suggest a CVSS v3.1 vector string and score
5. Recommend next steps for verification and remediation

Here is the vulnerability description:

%s
`

// analysisPrompt builds the prompt for a contract analysis run. Unknown
// types fall back to the general template.
func analysisPrompt(t domain.AnalysisType, contractCode string) string {
	switch t {
	case domain.AnalysisSecurity:
		return fmt.Sprintf(securityAuditPrompt, contractCode)
	case domain.AnalysisGas:
		return fmt.Sprintf(gasOptimizationPrompt, contractCode)
	case domain.AnalysisLogic:
		return fmt.Sprintf(logicReviewPrompt, contractCode)
	default:
		return fmt.Sprintf(generalAnalysisPrompt, contractCode)
	}
}

func triagePromptFor(description string) string {
	return fmt.Sprintf(triagePrompt, description)
}
