package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/meetpilot/meetpilot/internal/models"
)

const (
	fontName = "Calibri"
	fontSize = 11
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumberd = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// Write renders the record as a meeting report: summary, extracted
// tasks, then the raw transcript.
func (w *implWriter) Write(ctx context.Context, rec *models.Transcription, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), rec.Title, true, 16)
	addStyledRun(doc.AddParagraph(""), rec.StartTime.Format("2006-01-02 15:04")+" — "+rec.AudioFileName, false, 9)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Summary", true, 14)
	writeMarkdown(doc, rec.Summary)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Extracted Tasks", true, 14)
	if len(rec.ExtractedTasks) == 0 {
		addRichText(doc.AddParagraph(""), "No actionable tasks were identified.")
	}
	for _, task := range rec.ExtractedTasks {
		line := fmt.Sprintf("• [%s] %s", task.Priority, task.Title)
		if task.AssignedTo != "" {
			line += " — " + task.AssignedTo
		}
		if task.DueDate != nil {
			line += " (due " + task.DueDate.Format("2006-01-02") + ")"
		}
		addRichText(doc.AddParagraph(""), line)
	}
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Transcript", true, 14)
	for _, line := range strings.Split(rec.TranscriptionText, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		p := doc.AddParagraph("")
		p.AddText(line).Font(fontName).Size(fontSize).Color("000000")
	}

	outPath := filepath.Join(destDir, reportFileName(rec))
	if err := doc.SaveTo(outPath); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}

	w.logger.Info(ctx, "Report written: %s", outPath)
	return outPath, nil
}

func reportFileName(rec *models.Transcription) string {
	base := strings.TrimSuffix(rec.AudioFileName, filepath.Ext(rec.AudioFileName))
	if base == "" {
		base = rec.ID
	}
	return filepath.Base(base) + "_" + rec.StartTime.Format(time.DateOnly) + ".docx"
}

// writeMarkdown renders a small markdown subset: headings, bullets,
// numbered lists, bold runs. Everything else is plain text.
func writeMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if m := reNumberd.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 14
	case 2:
		return 13
	case 3:
		return 12
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
