package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Résumé page geometry, in millimetres.
const (
	resumeMargin = 20.0

	// A new page starts before the projects section once the cursor is
	// within this distance of the bottom edge.
	resumeProjectsBreak = 60.0

	// Same, checked after each project.
	resumeProjectBreak = 30.0
)

var (
	resumePrimary = [3]int{0, 240, 255}
	resumeText    = [3]int{40, 40, 50}
	resumeMuted   = [3]int{120, 120, 130}
)

var resumeHeadings = map[string]Text{
	"about":      {EN: "ABOUT", PTBR: "SOBRE"},
	"skills":     {EN: "SKILLS", PTBR: "HABILIDADES"},
	"experience": {EN: "EXPERIENCE", PTBR: "EXPERIÊNCIA"},
	"projects":   {EN: "FEATURED PROJECTS", PTBR: "PROJETOS EM DESTAQUE"},
	"private":    {EN: "Private", PTBR: "Privado"},
	"footer":     {EN: "Generated from davidassef.me", PTBR: "Gerado em davidassef.me"},
}

// resumeFilename is the download name for locale.
func resumeFilename(locale string) string {
	if normalizeLocale(locale) == LocalePTBR {
		return "David_Assef_Curriculo.pdf"
	}
	return "David_Assef_Resume.pdf"
}

// resumeLayout walks the content top to bottom, advancing a single cursor.
type resumeLayout struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	locale string

	pageW, pageH float64
	contentW     float64
	y            float64
}

func newResumeLayout(locale string) *resumeLayout {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(resumeMargin, resumeMargin, resumeMargin)
	pdf.SetAutoPageBreak(false, resumeMargin)
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	return &resumeLayout{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		locale:   normalizeLocale(locale),
		pageW:    w,
		pageH:    h,
		contentW: w - resumeMargin*2,
		y:        resumeMargin,
	}
}

func (l *resumeLayout) heading(key string) string {
	return resumeHeadings[key].In(l.locale)
}

func (l *resumeLayout) font(style string, size float64, color [3]int) {
	l.pdf.SetFont("Helvetica", style, size)
	l.pdf.SetTextColor(color[0], color[1], color[2])
}

func (l *resumeLayout) text(x, y float64, s string) {
	l.pdf.Text(x, y, l.tr(s))
}

func (l *resumeLayout) width(s string) float64 {
	return l.pdf.GetStringWidth(l.tr(s))
}

// wrap breaks s into lines no wider than the content width in the current
// font. Widths are measured on the translated text, which is what gets drawn.
func (l *resumeLayout) wrap(s string) []string {
	var (
		out  []string
		line string
	)
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if line != "" && l.width(candidate) > l.contentW {
			out = append(out, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}

// lines writes s wrapped to the content width and returns the line count.
func (l *resumeLayout) lines(s string, lineHeight float64) int {
	wrapped := l.wrap(s)
	for i, line := range wrapped {
		l.text(resumeMargin, l.y+float64(i)*lineHeight, line)
	}
	return len(wrapped)
}

// breakIfPast starts a new page when the cursor is below pageH-threshold.
func (l *resumeLayout) breakIfPast(threshold float64) {
	if l.y > l.pageH-threshold {
		l.pdf.AddPage()
		l.y = resumeMargin
	}
}

func (l *resumeLayout) section(key string) {
	l.font("B", 12, resumePrimary)
	l.text(resumeMargin, l.y, l.heading(key))
	l.y += 6
}

func (l *resumeLayout) header(info PersonalInfo) {
	l.font("B", 28, resumeText)
	l.text(resumeMargin, l.y+10, info.Name)
	l.y += 15

	l.font("", 14, resumePrimary)
	l.text(resumeMargin, l.y+5, info.Title.In(l.locale))
	l.y += 12

	l.pdf.SetDrawColor(resumePrimary[0], resumePrimary[1], resumePrimary[2])
	l.pdf.SetLineWidth(0.5)
	l.pdf.Line(resumeMargin, l.y, l.pageW-resumeMargin, l.y)
	l.y += 8

	l.font("", 9, resumeMuted)
	l.text(resumeMargin, l.y, strings.Join([]string{info.Email, info.GitHub, info.Location}, "  •  "))
	l.y += 12
}

func (l *resumeLayout) about(info PersonalInfo) {
	l.section("about")
	l.font("", 10, resumeText)
	n := l.lines(info.Bio.In(l.locale), 5)
	l.y += float64(n)*5 + 8
}

func (l *resumeLayout) skills(c Content) {
	l.section("skills")
	for _, group := range c.SkillsByCategory(l.locale) {
		label := group.Label + ": "
		l.font("B", 9, resumeText)
		l.text(resumeMargin, l.y, label)
		labelW := l.width(label)

		l.font("", 9, resumeText)
		l.text(resumeMargin+labelW, l.y, strings.Join(group.Skills, ", "))
		l.y += 5
	}
	l.y += 6
}

func (l *resumeLayout) experience(c Content) {
	l.section("experience")
	for _, exp := range c.Experiences {
		end := exp.EndDate
		if end == "" {
			end = presentLabel(l.locale)
		}

		l.font("B", 10, resumeText)
		l.text(resumeMargin, l.y, exp.Role.In(l.locale))
		l.y += 4

		l.font("", 9, resumeMuted)
		l.text(resumeMargin, l.y, fmt.Sprintf("%s | %s - %s", exp.Company, exp.StartDate, end))
		l.y += 5

		l.font("", 9, resumeText)
		n := l.lines(exp.Description.In(l.locale), 4)
		l.y += float64(n)*4 + 4

		l.font("", 8, resumeMuted)
		l.text(resumeMargin, l.y, strings.Join(exp.Technologies, " • "))
		l.y += 8
	}
}

func (l *resumeLayout) projects(c Content) {
	l.breakIfPast(resumeProjectsBreak)
	l.section("projects")

	for _, p := range c.FeaturedProjects() {
		l.font("B", 10, resumeText)
		l.text(resumeMargin, l.y, p.Name)
		if p.IsPrivate {
			nameW := l.width(p.Name)
			l.font("", 8, resumeMuted)
			l.text(resumeMargin+nameW, l.y, fmt.Sprintf(" (%s)", l.heading("private")))
		}
		l.y += 4

		l.font("", 9, resumeText)
		n := l.lines(p.Description.In(l.locale), 4)
		l.y += float64(n)*4 + 2

		l.font("", 8, resumeMuted)
		l.text(resumeMargin, l.y, strings.Join(p.Technologies, " • "))
		l.y += 7

		l.breakIfPast(resumeProjectBreak)
	}
}

func (l *resumeLayout) footer() {
	l.font("", 8, resumeMuted)
	footer := l.heading("footer")
	l.text((l.pageW-l.width(footer))/2, l.pageH-10, footer)
}

// buildResume lays c out for locale.
func buildResume(c Content, locale string) (*fpdf.Fpdf, error) {
	l := newResumeLayout(locale)
	l.header(c.Info)
	l.about(c.Info)
	l.skills(c)
	l.experience(c)
	l.projects(c)
	l.footer()

	if err := l.pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout resume: %w", err)
	}
	return l.pdf, nil
}

// WriteResume renders the résumé for locale as PDF into w.
func WriteResume(w io.Writer, c Content, locale string) error {
	pdf, err := buildResume(c, locale)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write resume: %w", err)
	}
	return nil
}
