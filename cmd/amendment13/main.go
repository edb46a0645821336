// Command amendment13 converts privacy self-assessment results into OCSF
// 1.6.0 findings.
//
// Usage:
//
//	# Export compliance findings (class 2003)
//	amendment13 compliance --results results.json --answers answers.json
//
//	# Export data security findings (class 2006)
//	amendment13 data-security --results results.json --answers answers.json
//
//	# Export the combined report with a custom configuration
//	amendment13 combined --results results.json --answers answers.json --config export.yaml --pretty
//
//	# Serve the exporter as MCP tools over stdio
//	amendment13 serve
package main

func main() {
	Execute()
}
