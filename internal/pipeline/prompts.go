package pipeline

import "fmt"

// buildExtractionPrompt constructs the fixed instruction prompt for the
// extraction model. currentYear fills in dates whose year the statement
// omits.
func buildExtractionPrompt(currentYear int) string {
	return fmt.Sprintf(
		"Act as an expert Data Entry specialist. You are provided with a bank statement "+
			"that contains multiple transactions. Extract, parse, and format each transaction "+
			"according to the instructions below.\n\n"+
			"Instructions:\n\n"+
			"1. Transaction Date:\n"+
			"   - Extract the date of each transaction.\n"+
			"   - Format the date as MM/DD/YYYY.\n"+
			"   - If the year is missing, assume it is the current year, which is %d.\n\n"+
			"2. Transaction Description:\n"+
			"   - Extract the description exactly as it appears.\n"+
			"   - If the description is truncated, include only the visible text.\n\n"+
			"3. Transaction Value:\n"+
			"   - Remove the \"$\" symbol and any cents.\n"+
			"   - Convert the remaining value into an integer (without any punctuation).\n\n"+
			"Output format:\n"+
			"- Output STRICT JSON only (no comments, no extra text).\n"+
			"- Output a single JSON object: {\"transactions\": [...]}.\n"+
			"- Each transaction is an array of exactly three strings, in this order:\n"+
			"  [\"Transaction Date\", \"Transaction Description\", \"Transaction Value\"].\n"+
			"- Only put the parsed transactions, not the original ones.\n"+
			"- Do NOT wrap the response in code fences.\n"+
			"- Do NOT use ```json or any Markdown.\n",
		currentYear,
	)
}
