package prompts

import (
	"fmt"
	"strings"

	"github.com/notewell/minutes/internal/transcript"
)

// Transcription is the fixed prompt sent with every audio transcription call.
const Transcription = `You are a professional transcriptionist. Create a VERBATIM transcript of this audio.

STRICT RULES:
1. Transcribe EXACTLY what is said - do not paraphrase or summarize
2. Include all filler words (um, uh, like, you know)
3. Mark unclear audio as [inaudible]
4. Identify speakers as [Speaker A], [Speaker B], etc.
5. Use consistent speaker labels throughout
6. Include timestamps every 2-3 minutes in format [MM:SS]
7. Note any non-verbal audio cues in brackets [laughter], [pause], [crosstalk]

OUTPUT FORMAT:
[Speaker A] [00:00]: Text of what they said...
[Speaker B] [00:15]: Their response...

Begin transcription now:`

const refinementTemplate = `You are a transcript editor. Your ONLY task is to replace speaker placeholders with real names and fix resulting grammar.

SPEAKER MAPPING:
%[1]s

ADDITIONAL FEEDBACK:
%[2]s

STRICT RULES:
1. Replace speaker placeholders with mapped names ONLY
2. Fix pronouns to match the gender of the named person
3. Fix verb agreements if needed
4. DO NOT change any other words
5. DO NOT add or remove content
6. DO NOT fix perceived errors in what was said
7. Preserve all timestamps and formatting
8. Preserve all [inaudible] markers

ORIGINAL TRANSCRIPT:
%[3]s

Output the refined transcript only, no explanations.`

const summaryTemplate = `Create a comprehensive meeting summary in Markdown format.

MEETING DATE: %[1]s
MEETING TITLE: %[2]s

TRANSCRIPT:
%[3]s

OUTPUT FORMAT (use exactly this structure):

# Meeting Notes: %[2]s

**Date:** %[1]s
**Attendees:** [List all speakers mentioned]

## Executive Summary

[3-5 bullet points capturing the most important points]

## Action Items

| Item | Owner | Due Date |
|------|-------|----------|
[Extract any commitments or tasks assigned]

## Key Decisions

- [List any decisions that were made]

## Discussion Topics

### Topic 1: [Topic Name]
[Summary of discussion]

### Topic 2: [Topic Name]
[Summary of discussion]

---

## Full Transcript

[Include the complete transcript below]`

// Refinement renders the speaker-replacement prompt. The mapping is listed one
// entry per line in supplied order; empty feedback renders as "None provided".
func Refinement(mapping transcript.SpeakerMapping, feedback, text string) string {
	lines := make([]string, 0, len(mapping))
	for _, e := range mapping {
		lines = append(lines, fmt.Sprintf("  - %s → %s", e.Placeholder, e.Name))
	}
	if feedback == "" {
		feedback = "None provided"
	}
	return fmt.Sprintf(refinementTemplate, strings.Join(lines, "\n"), feedback, text)
}

// Summary renders the summarization prompt with the meeting date and title
// embedded in both the instructions and the output skeleton.
func Summary(date, title, text string) string {
	return fmt.Sprintf(summaryTemplate, date, title, text)
}
