package prompts

import "fmt"

// FixErrorInstructions is the system prompt for crash-to-patch requests.
const FixErrorInstructions = `You are an expert software engineer fixing a program that just crashed.

You will receive the operating system, the full source of the file where the
error surfaced and the complete error message with its traceback.

Respond with:
- problem: a short description of what went wrong and why
- solution: a short description of the change you made
- corrected_code: the COMPLETE corrected content of the file, not a diff and
  not an excerpt. Keep everything that does not need to change exactly as it
  was. Do not wrap the code in markdown code fences.`

// BuildFixContent renders the user message of a crash-to-patch request.
func BuildFixContent(platformBanner, originalCode, errorText string) string {
	return fmt.Sprintf("%s# Original Code:\n```\n%s\n```\n\n# Error Message:\n%s", platformBanner, originalCode, errorText)
}
