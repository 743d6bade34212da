package summarizer

import (
	"fmt"
	"strings"
)

// Translator converts a label to the display language.
type Translator func(key string) string

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion sets the version shown in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Detection Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|------|-------|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Model"), summary.Settings.ModelPath)
	fmt.Fprintf(&b, "| %s | %g |\n", t("Threshold"), summary.Settings.Threshold)
	fmt.Fprintf(&b, "| %s | %d (%s %d, %s %d) |\n",
		t("Window Length"), summary.Settings.WindowLen,
		t("stride"), summary.Settings.Stride,
		t("context"), summary.Settings.Context)
	fmt.Fprintf(&b, "| %s | %s |\n\n", t("Transport"), f.transport(summary.Settings))

	fmt.Fprintf(&b, "## %s\n\n", t("Videos"))
	for _, video := range summary.Videos {
		fmt.Fprintf(&b, "### %s\n\n", video.Path)
		fmt.Fprintf(&b, "| %s | %s |\n|------|-------|\n", t("Item"), t("Value"))
		fmt.Fprintf(&b, "| %s | %d |\n", t("Frame Count"), video.FrameCount)
		fmt.Fprintf(&b, "| %s | %d |\n", t("Windows"), video.Windows)
		fmt.Fprintf(&b, "| %s | %d |\n", t("Events"), video.Events)
		fmt.Fprintf(&b, "| %s | %d |\n\n", t("Scenes"), len(video.Scenes))

		if len(video.Scenes) > 0 {
			fmt.Fprintf(&b, "| %s | %s | %s |\n|------|-------|-----|\n",
				t("Scene"), t("Start Frame"), t("End Frame"))
			for i, scene := range video.Scenes {
				fmt.Fprintf(&b, "| %d | %d | %d |\n", i+1, scene.Start, scene.End)
			}
			b.WriteString("\n")
		}
	}

	if f.version != "" {
		fmt.Fprintf(&b, "---\n\n%s sceneshot %s\n", t("Generated by"), f.version)
	}

	return b.String()
}

func (f *MarkdownFormatter) transport(settings Settings) string {
	if settings.Broker == "" {
		return "stdout"
	}
	return fmt.Sprintf("mqtt %s (%s %s)", settings.Broker, f.translate("topic"), settings.Topic)
}

var _ Formatter = (*MarkdownFormatter)(nil)
