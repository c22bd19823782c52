package services

import (
	"fmt"
	"strings"
	"time"
)

const (
	summaryOpenTag  = "<summary>"
	summaryCloseTag = "</summary>"
)

var summaryPromptTemplate = `
You are a Slack bot summarizing {{window}} of Slack messages for **{{company}}**, {{description}}. Your goal is to generate a clear and concise summary of the discussions that occurred over the past {{window}}, focusing on the company's business and operations.

You have been provided with the complete message history in:

<slack_messages>
{{messages}}
</slack_messages>

**Important Notes About the Slack Message Structure**:
- Each line is one message in the form "(timestamp) user: text".
- Threaded replies are merged into the log in chronological order, next to the messages they answer.
- You must **incorporate replies in context** with the discussion they belong to and reflect that context in your summary.

**Instructions:**

1. **Review the messages** in ` + "`<slack_messages>`" + ` and identify the main discussion topics:
   - Project updates
   - Technical challenges
   - Client interactions
   - Team collaboration
   - Product development
   - Machine learning optimization techniques
   - Other non-work-related (e.g., personal, hobbies)

2. **Extract key points** and note any decisions, next steps, or action items.

3. **Focus on metrics and quantifications** If specific metrics or other quantitative measures are discussed, they must be referenced in the output.

4. **Format the summary** in Slack's mrkdwn using:
   - ` + "`*bold*`" + ` for primary topics
   - ` + "`_italic_`" + ` for subtopics or emphasis
   - ` + "`-`" + ` for bullet points
   - ` + "`>`" + ` for quotes or key highlights
   - ` + "```" + ` for code blocks, if necessary

5. **Organize your output** clearly. Include:
   - **Main topics** with bullet points for each key discussion or decision
   - Make reference to the specific users driving the topics
   - A brief **conclusion or outlook** summarizing next steps or future plans

6. **Wrap your finished summary** in ` + "`" + summaryOpenTag + "`" + ` tags.

**Final Output Example (for illustration only, do not copy verbatim):**
` + summaryOpenTag + `
*Main Topic One*
- Key point or action item
- Next steps

*Main Topic Two*
- Key point or action item
- Next steps

*Conclusion*
Overall outlook or final remarks
` + summaryCloseTag + `

Remember: **keep it concise, relevant, and well-structured.**
`

// BuildSummaryPrompt interpolates the transcript and company details into the
// system prompt. The transcript is inserted verbatim.
func BuildSummaryPrompt(company, description string, window time.Duration, transcript string) string {
	r := strings.NewReplacer(
		"{{window}}", DescribeWindow(window),
		"{{company}}", company,
		"{{description}}", description,
		"{{messages}}", transcript,
	)
	return r.Replace(summaryPromptTemplate)
}

// DescribeWindow renders a lookback as "7 days" or "36 hours".
func DescribeWindow(d time.Duration) string {
	hours := int(d.Hours())
	if hours%24 == 0 && hours >= 24 {
		days := hours / 24
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

// ExtractSummary returns the text between the first opening and the last
// closing summary marker, trimmed. Without a well-formed pair, stray markers
// are removed and the rest is kept.
func ExtractSummary(text string) string {
	start := strings.Index(text, summaryOpenTag)
	end := strings.LastIndex(text, summaryCloseTag)
	if start >= 0 && end >= start+len(summaryOpenTag) {
		return strings.TrimSpace(text[start+len(summaryOpenTag) : end])
	}
	text = strings.ReplaceAll(text, summaryOpenTag, "")
	text = strings.ReplaceAll(text, summaryCloseTag, "")
	return strings.TrimSpace(text)
}
