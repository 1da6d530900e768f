package llm

const summarizePrompt = `You are an assistant specialized in summarizing meeting transcriptions.
Create a concise, well-structured summary that captures key discussion points,
decisions made, and important topics covered. Focus on actionable insights.
Use markdown: headings, bullet points, bold for important keywords.

Meeting transcription:
---
%s
---`

const extractTasksPrompt = `You extract actionable tasks from meeting transcriptions and summaries.
Extract tasks that are specific, have clear deliverables, can be assigned to
team members, and have implied or explicit deadlines.

Return a JSON array with this exact structure and nothing else:
[
  {
    "title": "Task title (max 100 characters)",
    "description": "Detailed description",
    "priority": 2,
    "assigned_to": "Person mentioned or empty string",
    "due_date": "2006-01-02 or null",
    "labels": ["relevant", "labels"],
    "milestone_title": "Related milestone or empty string"
  }
]
priority is 1=Low, 2=Medium, 3=High, 4=Critical.

Meeting summary:
%s

Full transcription:
%s

Extract all actionable tasks from this meeting content:`

const issueTitlePrompt = `Write a short, imperative issue title (at most 100 characters) for the
following task. Return only the title, no quotes, no markdown.

Task description:
%s`

const issueBodyPrompt = `Write a well-structured GitHub issue body in markdown for the following
task. Include a short context section, acceptance criteria as a checklist,
and any relevant details. Return only the body.

Context: %s

Task description:
%s`
