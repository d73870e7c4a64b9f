package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestWriteResume(t *testing.T) {
	for _, locale := range []string{LocaleEN, LocalePTBR} {
		var buf bytes.Buffer
		if err := WriteResume(&buf, siteContent, locale); err != nil {
			t.Fatalf("%s: %v", locale, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Errorf("%s: missing PDF header", locale)
		}
	}
}

func TestResumePaginatesProjects(t *testing.T) {
	c := siteContent
	c.Projects = nil
	for i := 0; i < 40; i++ {
		c.Projects = append(c.Projects, Project{
			ID:           fmt.Sprintf("p%d", i),
			Name:         fmt.Sprintf("Project %d", i),
			Description:  Text{EN: strings.Repeat("A project description that wraps. ", 8), PTBR: "Descrição"},
			Technologies: []string{"Go", "SQLite"},
			Featured:     true,
		})
	}

	pdf, err := buildResume(c, LocaleEN)
	if err != nil {
		t.Fatal(err)
	}
	if n := pdf.PageCount(); n < 2 {
		t.Errorf("page count = %d, want at least 2", n)
	}
}

func TestResumeSinglePageForShortContent(t *testing.T) {
	c := Content{Info: siteContent.Info}

	pdf, err := buildResume(c, LocaleEN)
	if err != nil {
		t.Fatal(err)
	}
	if n := pdf.PageCount(); n != 1 {
		t.Errorf("page count = %d, want 1", n)
	}
}

func TestResumeWrap(t *testing.T) {
	l := newResumeLayout(LocaleEN)
	l.font("", 10, resumeText)

	long := strings.Repeat("word ", 200)
	lines := l.wrap(long)
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want wrapping", len(lines))
	}
	for i, line := range lines {
		if l.width(line) > l.contentW {
			t.Errorf("line %d is %.1fmm wide, limit %.1fmm", i, l.width(line), l.contentW)
		}
	}
	if got := strings.Join(lines, " "); got != strings.TrimSpace(long) {
		t.Error("wrapping lost words")
	}

	if got := l.wrap("   "); len(got) != 0 {
		t.Errorf("blank input gave %q", got)
	}
}

func TestResumeFilename(t *testing.T) {
	tests := map[string]string{
		"en":    "David_Assef_Resume.pdf",
		"pt-BR": "David_Assef_Curriculo.pdf",
		"pt":    "David_Assef_Curriculo.pdf",
		"fr":    "David_Assef_Resume.pdf",
		"":      "David_Assef_Resume.pdf",
	}
	for locale, want := range tests {
		if got := resumeFilename(locale); got != want {
			t.Errorf("resumeFilename(%q) = %q, want %q", locale, got, want)
		}
	}
}
